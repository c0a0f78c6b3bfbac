package effective

import (
	"errors"
	"slices"

	"provisioning-mapper/internal/model"
)

// Resolve computes the effective model. A nil filter keeps every run mode;
// otherwise only default, special and fully active run modes remain.
func Resolve(m *model.Model, filter []string) (*model.Model, error) {
	if m == nil {
		return nil, errors.New("model is nil")
	}

	out := model.NewModel(m.Location)

	for _, f := range m.Features {
		if target := out.GetFeature(f.Name); target != nil {
			mergeFeature(target, f.DeepCopy())
			continue
		}

		out.Features = append(out.Features, f.DeepCopy())
	}

	for _, f := range out.Features {
		applyRemovals(f)

		if err := substitute(f); err != nil {
			return nil, err
		}

		if filter != nil {
			filterRunModes(f, filter)
		}
	}

	return out, nil
}

// Filter returns a copy of an effective model that keeps only the run modes
// active for the given run modes. Unlike Resolve it performs no merging or
// substitution, so it can be applied to an already resolved model.
func Filter(m *model.Model, active []string) *model.Model {
	out := m.DeepCopy()

	for _, f := range out.Features {
		filterRunModes(f, active)
	}

	return out
}

func filterRunModes(f *model.Feature, active []string) {
	f.RunModes = slices.DeleteFunc(f.RunModes, func(rm *model.RunMode) bool {
		return !rm.IsActive(active)
	})
}

func mergeFeature(target, src *model.Feature) {
	if src.Type != "" {
		target.Type = src.Type
	}

	if src.Version != "" {
		target.Version = src.Version
	}

	target.Variables.PutAll(src.Variables)
	target.AdditionalSections = append(target.AdditionalSections, src.AdditionalSections...)

	for _, rm := range src.RunModes {
		existing := target.GetRunMode(rm.Names)
		if existing == nil {
			target.RunModes = append(target.RunModes, rm)
			continue
		}

		mergeRunMode(existing, rm)
	}
}

func mergeRunMode(target, src *model.RunMode) {
	target.Settings.PutAll(src.Settings)

	for _, g := range src.ArtifactGroups {
		for _, a := range g.Artifacts {
			removeArtifact(target, a)

			tg := target.GetOrCreateArtifactGroup(g.StartLevel)
			tg.Artifacts = append(tg.Artifacts, a)
		}
	}

	for _, c := range src.Configurations {
		existing := target.GetConfiguration(c.PID, c.FactoryPID)

		switch {
		case existing == nil:
			target.Configurations = append(target.Configurations, c)
		case c.Mode == model.ModeMerge:
			for k, v := range c.Properties {
				existing.Properties[k] = v
			}
		default:
			existing.Properties = c.Properties
			existing.Format = c.Format
		}
	}

	dropEmptyGroups(target)
}

// applyRemovals processes every run mode that contains ":remove".
func applyRemovals(f *model.Feature) {
	for _, rm := range f.RunModes {
		if !slices.Contains(rm.Names, model.RunModeRemove) {
			continue
		}

		names := slices.DeleteFunc(slices.Clone(rm.Names), func(n string) bool {
			return n == model.RunModeRemove
		})

		target := f.GetRunMode(names)
		if target == nil {
			continue
		}

		for _, g := range rm.ArtifactGroups {
			for _, a := range g.Artifacts {
				removeArtifact(target, a)
			}
		}

		for _, c := range rm.Configurations {
			target.Configurations = slices.DeleteFunc(target.Configurations, func(tc *model.Configuration) bool {
				return tc.PID == c.PID && tc.FactoryPID == c.FactoryPID
			})
		}

		dropEmptyGroups(target)
	}

	f.RunModes = slices.DeleteFunc(f.RunModes, func(rm *model.RunMode) bool {
		return slices.Contains(rm.Names, model.RunModeRemove)
	})
}

// removeArtifact removes artifacts with a's coordinates from every group of rm.
func removeArtifact(rm *model.RunMode, a *model.Artifact) {
	for _, g := range rm.ArtifactGroups {
		g.Artifacts = slices.DeleteFunc(g.Artifacts, a.SameCoordinates)
	}
}

func dropEmptyGroups(rm *model.RunMode) {
	rm.ArtifactGroups = slices.DeleteFunc(rm.ArtifactGroups, func(g *model.ArtifactGroup) bool {
		return len(g.Artifacts) == 0
	})
}
