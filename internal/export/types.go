package export

// DocumentVersion is written into every exported document.
const DocumentVersion = "1"

// ConfigurationList is the export of all configurations of a model.
type ConfigurationList struct {
	Version        string               `yaml:"version"`
	Source         string               `yaml:"source,omitempty"`
	Configurations []ConfigurationEntry `yaml:"configurations"`
}

// ConfigurationEntry is a configuration addressed by its relative path.
type ConfigurationEntry struct {
	Path       string         `yaml:"path"`
	Properties map[string]any `yaml:"properties"`
}

// ModelDocument is the structural export of a model.
type ModelDocument struct {
	Version  string            `yaml:"version"`
	Source   string            `yaml:"source,omitempty"`
	Features []FeatureDocument `yaml:"features"`
}

// FeatureDocument describes a feature.
type FeatureDocument struct {
	Name      string            `yaml:"name"`
	Type      string            `yaml:"type,omitempty"`
	Version   string            `yaml:"version,omitempty"`
	Variables map[string]string `yaml:"variables,omitempty"`
	RunModes  []RunModeDocument `yaml:"runModes,omitempty"`
	Sections  []SectionDocument `yaml:"sections,omitempty"`
}

// RunModeDocument describes a run mode. Names is empty for the default run
// mode.
type RunModeDocument struct {
	Names          []string                `yaml:"names,omitempty"`
	Settings       map[string]string       `yaml:"settings,omitempty"`
	Artifacts      []ArtifactGroupDocument `yaml:"artifacts,omitempty"`
	Configurations []ConfigurationDocument `yaml:"configurations,omitempty"`
}

// ArtifactGroupDocument lists artifact URLs of one start level.
type ArtifactGroupDocument struct {
	StartLevel int      `yaml:"startLevel"`
	Artifacts  []string `yaml:"artifacts"`
}

// ConfigurationDocument describes a configuration.
type ConfigurationDocument struct {
	PID        string         `yaml:"pid"`
	FactoryPID string         `yaml:"factoryPid,omitempty"`
	Path       string         `yaml:"path"`
	Properties map[string]any `yaml:"properties,omitempty"`
}

// SectionDocument is an additional section kept verbatim.
type SectionDocument struct {
	Name       string            `yaml:"name"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	Contents   string            `yaml:"contents,omitempty"`
}
