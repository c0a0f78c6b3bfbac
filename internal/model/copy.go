package model

import (
	"maps"
	"reflect"
	"slices"
)

// DeepCopy returns an independent copy of the model.
func (m *Model) DeepCopy() *Model {
	out := &Model{Location: m.Location}
	for _, f := range m.Features {
		out.Features = append(out.Features, f.DeepCopy())
	}

	return out
}

// DeepCopy returns an independent copy of the feature.
func (f *Feature) DeepCopy() *Feature {
	out := &Feature{
		Name:      f.Name,
		Type:      f.Type,
		Version:   f.Version,
		Location:  f.Location,
		Variables: NewKeyValueMap(),
	}
	if f.Variables != nil {
		out.Variables.PutAll(f.Variables)
	}

	for _, rm := range f.RunModes {
		out.RunModes = append(out.RunModes, rm.DeepCopy())
	}

	for _, s := range f.AdditionalSections {
		out.AdditionalSections = append(out.AdditionalSections, &Section{
			Name:       s.Name,
			Attributes: maps.Clone(s.Attributes),
			Contents:   s.Contents,
		})
	}

	return out
}

// DeepCopy returns an independent copy of the run mode.
func (rm *RunMode) DeepCopy() *RunMode {
	out := NewRunMode(rm.Names)
	if rm.Settings != nil {
		out.Settings.PutAll(rm.Settings)
	}

	for _, g := range rm.ArtifactGroups {
		ng := &ArtifactGroup{StartLevel: g.StartLevel}
		for _, a := range g.Artifacts {
			ng.Artifacts = append(ng.Artifacts, a.DeepCopy())
		}

		out.ArtifactGroups = append(out.ArtifactGroups, ng)
	}

	for _, c := range rm.Configurations {
		out.Configurations = append(out.Configurations, c.DeepCopy())
	}

	return out
}

// DeepCopy returns an independent copy of the artifact.
func (a *Artifact) DeepCopy() *Artifact {
	c := *a
	c.Metadata = maps.Clone(a.Metadata)

	return &c
}

// DeepCopy returns an independent copy of the configuration. Slice values are
// copied as well.
func (c *Configuration) DeepCopy() *Configuration {
	out := *c
	out.Properties = make(map[string]any, len(c.Properties))

	for k, v := range c.Properties {
		out.Properties[k] = CopyValue(v)
	}

	return &out
}

// CopyValue copies slice values; scalars are returned as is.
func CopyValue(v any) any {
	switch t := v.(type) {
	case []string:
		return slices.Clone(t)
	case nil:
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.IsNil() {
		return v
	}

	cp := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	reflect.Copy(cp, rv)

	return cp.Interface()
}
