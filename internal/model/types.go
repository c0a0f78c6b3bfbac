package model

import (
	"maps"
	"slices"
	"strings"
)

// Well-known run mode names.
const (
	// RunModeRemove marks artifacts and configurations to be removed from
	// the other run modes of the same feature.
	RunModeRemove = ":remove"

	specialPrefix = ":"
)

// Configuration modes.
const (
	ModeOverwrite = "overwrite"
	ModeMerge     = "merge"
)

// Configuration property formats.
const (
	FormatFelixConfig = "felixconfig"
	FormatProperties  = "properties"
)

// DefaultArtifactType is used when an artifact does not name its type.
const DefaultArtifactType = "jar"

// Model is a collection of features read from one or more provisioning documents.
type Model struct {
	// Location identifies the source (usually a file path).
	Location string
	Features []*Feature
}

// NewModel creates an empty model.
func NewModel(location string) *Model {
	return &Model{Location: location}
}

// GetFeature returns the first feature with the given name or nil.
func (m *Model) GetFeature(name string) *Feature {
	for _, f := range m.Features {
		if f.Name == name {
			return f
		}
	}

	return nil
}

// Feature is a named grouping of run modes.
type Feature struct {
	Name    string
	Type    string
	Version string
	// Location identifies where the feature was read from.
	Location string

	Variables          *KeyValueMap
	RunModes           []*RunMode
	AdditionalSections []*Section
}

// NewFeature creates an empty feature.
func NewFeature(name string) *Feature {
	return &Feature{
		Name:      name,
		Variables: NewKeyValueMap(),
	}
}

// GetRunMode returns the run mode matching the given names (order-insensitive)
// or nil.
func (f *Feature) GetRunMode(names []string) *RunMode {
	for _, rm := range f.RunModes {
		if rm.Matches(names) {
			return rm
		}
	}

	return nil
}

// GetOrCreateRunMode returns the run mode matching names, appending a new one
// when it does not exist yet.
func (f *Feature) GetOrCreateRunMode(names []string) *RunMode {
	if rm := f.GetRunMode(names); rm != nil {
		return rm
	}

	rm := NewRunMode(names)
	f.RunModes = append(f.RunModes, rm)

	return rm
}

// RunMode is an activation scope. A nil or empty name list denotes the default
// run mode.
type RunMode struct {
	// Names are kept in the order they were written.
	Names          []string
	ArtifactGroups []*ArtifactGroup
	Configurations []*Configuration
	Settings       *KeyValueMap
}

// NewRunMode creates an empty run mode for the given names.
func NewRunMode(names []string) *RunMode {
	var n []string
	if len(names) > 0 {
		n = slices.Clone(names)
	}

	return &RunMode{
		Names:    n,
		Settings: NewKeyValueMap(),
	}
}

// IsDefault reports whether the run mode has no names.
func (rm *RunMode) IsDefault() bool {
	return len(rm.Names) == 0
}

// IsSpecial reports whether the run mode consists of a single name starting
// with ":".
func (rm *RunMode) IsSpecial() bool {
	return len(rm.Names) == 1 && strings.HasPrefix(rm.Names[0], specialPrefix)
}

// Matches reports whether the run mode has exactly the given set of names.
func (rm *RunMode) Matches(names []string) bool {
	if len(rm.Names) != len(names) {
		return false
	}

	a := slices.Clone(rm.Names)
	b := slices.Clone(names)
	slices.Sort(a)
	slices.Sort(b)

	return slices.Equal(a, b)
}

// IsActive reports whether every name of the run mode is contained in the
// given active set. Default and special run modes are always active.
func (rm *RunMode) IsActive(active []string) bool {
	if rm.IsDefault() || rm.IsSpecial() {
		return true
	}

	for _, n := range rm.Names {
		if !slices.Contains(active, n) {
			return false
		}
	}

	return true
}

// GetArtifactGroup returns the group with the given start level or nil.
func (rm *RunMode) GetArtifactGroup(startLevel int) *ArtifactGroup {
	for _, g := range rm.ArtifactGroups {
		if g.StartLevel == startLevel {
			return g
		}
	}

	return nil
}

// GetOrCreateArtifactGroup returns the group with the given start level,
// appending a new one when it does not exist yet.
func (rm *RunMode) GetOrCreateArtifactGroup(startLevel int) *ArtifactGroup {
	if g := rm.GetArtifactGroup(startLevel); g != nil {
		return g
	}

	g := &ArtifactGroup{StartLevel: startLevel}
	rm.ArtifactGroups = append(rm.ArtifactGroups, g)

	return g
}

// GetConfiguration returns the configuration with the given identity or nil.
func (rm *RunMode) GetConfiguration(pid, factoryPID string) *Configuration {
	for _, c := range rm.Configurations {
		if c.PID == pid && c.FactoryPID == factoryPID {
			return c
		}
	}

	return nil
}

// ArtifactGroup groups artifacts sharing a start level.
type ArtifactGroup struct {
	StartLevel int
	Artifacts  []*Artifact
}

// Artifact is a maven artifact reference.
type Artifact struct {
	GroupID    string
	ArtifactID string
	Version    string
	Type       string
	Classifier string
	Metadata   map[string]string
}

// SameCoordinates compares group, artifact, type and classifier.
func (a *Artifact) SameCoordinates(o *Artifact) bool {
	return a.GroupID == o.GroupID &&
		a.ArtifactID == o.ArtifactID &&
		a.artifactType() == o.artifactType() &&
		a.Classifier == o.Classifier
}

// ToMvnURL renders the artifact as mvn:group/artifact/version/type[/classifier].
func (a *Artifact) ToMvnURL() string {
	var sb strings.Builder

	sb.WriteString("mvn:")
	sb.WriteString(a.GroupID)
	sb.WriteString("/")
	sb.WriteString(a.ArtifactID)
	sb.WriteString("/")
	sb.WriteString(a.Version)
	sb.WriteString("/")
	sb.WriteString(a.artifactType())

	if a.Classifier != "" {
		sb.WriteString("/")
		sb.WriteString(a.Classifier)
	}

	return sb.String()
}

func (a *Artifact) artifactType() string {
	if a.Type == "" {
		return DefaultArtifactType
	}

	return a.Type
}

// Configuration is an OSGi configuration addressed by pid and optional factory pid.
type Configuration struct {
	PID string
	// FactoryPID is empty for singleton configurations.
	FactoryPID string
	Properties map[string]any
	// Mode is ModeOverwrite or ModeMerge.
	Mode string
	// Format is FormatFelixConfig or FormatProperties.
	Format string
}

// NewConfiguration creates a configuration with an empty property map.
func NewConfiguration(pid, factoryPID string) *Configuration {
	return &Configuration{
		PID:        pid,
		FactoryPID: factoryPID,
		Properties: make(map[string]any),
		Mode:       ModeOverwrite,
		Format:     FormatFelixConfig,
	}
}

// IsFactory reports whether the configuration has a factory pid.
func (c *Configuration) IsFactory() bool {
	return c.FactoryPID != ""
}

// Section is an additional free-form section such as [:repoinit].
type Section struct {
	// Name is stored without the leading ":".
	Name       string
	Attributes map[string]string
	Contents   string
}

// KeyValueMap is a string map that remembers insertion order.
type KeyValueMap struct {
	keys   []string
	values map[string]string
}

// NewKeyValueMap creates an empty map.
func NewKeyValueMap() *KeyValueMap {
	return &KeyValueMap{values: make(map[string]string)}
}

// Put sets key to value. Existing keys keep their position.
func (kv *KeyValueMap) Put(key, value string) {
	if _, ok := kv.values[key]; !ok {
		kv.keys = append(kv.keys, key)
	}

	kv.values[key] = value
}

// Get returns the value for key.
func (kv *KeyValueMap) Get(key string) (string, bool) {
	v, ok := kv.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (kv *KeyValueMap) Keys() []string {
	return slices.Clone(kv.keys)
}

// Len returns the number of entries.
func (kv *KeyValueMap) Len() int {
	return len(kv.keys)
}

// PutAll copies all entries of other into kv.
func (kv *KeyValueMap) PutAll(other *KeyValueMap) {
	for _, k := range other.keys {
		kv.Put(k, other.values[k])
	}
}

// ToMap returns a plain map copy.
func (kv *KeyValueMap) ToMap() map[string]string {
	return maps.Clone(kv.values)
}
