package export

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"provisioning-mapper/internal/model"
	"provisioning-mapper/internal/provisioning"
)

// Configurations collects every configuration of m with its relative path,
// in visit order.
func Configurations(m *model.Model) (*ConfigurationList, error) {
	list := &ConfigurationList{
		Version:        DocumentVersion,
		Source:         m.Location,
		Configurations: []ConfigurationEntry{},
	}

	err := provisioning.VisitOSGiConfigurations(m, func(path string, properties map[string]any) error {
		list.Configurations = append(list.Configurations, ConfigurationEntry{
			Path:       path,
			Properties: properties,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return list, nil
}

// Model builds the structural document of m.
func Model(m *model.Model) *ModelDocument {
	doc := &ModelDocument{
		Version:  DocumentVersion,
		Source:   m.Location,
		Features: []FeatureDocument{},
	}

	for _, f := range m.Features {
		doc.Features = append(doc.Features, exportFeature(f))
	}

	return doc
}

// YAML marshals an export document.
func YAML(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}

	return data, nil
}

func exportFeature(f *model.Feature) FeatureDocument {
	fd := FeatureDocument{
		Name:    f.Name,
		Type:    f.Type,
		Version: f.Version,
	}

	if f.Variables != nil && f.Variables.Len() > 0 {
		fd.Variables = f.Variables.ToMap()
	}

	for _, rm := range f.RunModes {
		fd.RunModes = append(fd.RunModes, exportRunMode(rm))
	}

	for _, s := range f.AdditionalSections {
		fd.Sections = append(fd.Sections, SectionDocument{
			Name:       s.Name,
			Attributes: s.Attributes,
			Contents:   s.Contents,
		})
	}

	return fd
}

func exportRunMode(rm *model.RunMode) RunModeDocument {
	rd := RunModeDocument{Names: rm.Names}

	if rm.Settings != nil && rm.Settings.Len() > 0 {
		rd.Settings = rm.Settings.ToMap()
	}

	for _, g := range rm.ArtifactGroups {
		gd := ArtifactGroupDocument{StartLevel: g.StartLevel, Artifacts: []string{}}
		for _, a := range g.Artifacts {
			gd.Artifacts = append(gd.Artifacts, a.ToMvnURL())
		}

		rd.Artifacts = append(rd.Artifacts, gd)
	}

	for _, c := range rm.Configurations {
		rd.Configurations = append(rd.Configurations, ConfigurationDocument{
			PID:        c.PID,
			FactoryPID: c.FactoryPID,
			Path:       provisioning.ConfigurationPath(rm, c),
			Properties: c.Properties,
		})
	}

	return rd
}
