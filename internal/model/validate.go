package model

import (
	"fmt"
	"strings"

	"provisioning-mapper/internal/diagnostic"
)

// Validate checks the structural consistency of a model.
func Validate(m *Model) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if m == nil {
		res.AddError("model_is_nil", "model is nil", "", "")
		return res
	}

	for i, f := range m.Features {
		name := f.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
			res.AddError("feature_without_name", "feature has no name", name, "")
		}

		validateFeature(res, name, f)
	}

	return res
}

func validateFeature(res *diagnostic.Diagnostics, name string, f *Feature) {
	if len(f.RunModes) == 0 && len(f.AdditionalSections) == 0 {
		res.AddWarning("empty_feature", "feature has no run modes", name, "")
	}

	for i, rm := range f.RunModes {
		rmName := RunModeLabel(rm)

		for _, prev := range f.RunModes[:i] {
			if prev.Matches(rm.Names) {
				res.AddError("duplicate_run_mode", fmt.Sprintf("run mode %q is declared twice", rmName), name, rmName)
				break
			}
		}

		for _, g := range rm.ArtifactGroups {
			if g.StartLevel < 0 {
				res.AddError("negative_start_level",
					fmt.Sprintf("start level %d is negative", g.StartLevel), name, rmName)
			}

			for _, a := range g.Artifacts {
				if a.GroupID == "" || a.ArtifactID == "" || a.Version == "" {
					res.AddError("incomplete_artifact",
						fmt.Sprintf("artifact %q needs group id, artifact id and version", a.ToMvnURL()), name, rmName)
				}
			}
		}

		for _, n := range rm.Names {
			if err := CheckPathElement("run mode", n); err != nil {
				res.AddError("unsafe_path_element", err.Error(), name, rmName)
			}
		}

		for _, c := range rm.Configurations {
			for _, id := range []string{c.FactoryPID, c.PID} {
				if err := CheckPathElement("configuration pid", id); err != nil {
					res.AddError("unsafe_path_element", err.Error(), name, rmName)
				}
			}

			if c.PID == "" {
				res.AddError("configuration_without_pid", "configuration has no pid", name, rmName)
			}

			if c.Mode != ModeOverwrite && c.Mode != ModeMerge {
				res.AddError("invalid_configuration_mode",
					fmt.Sprintf("configuration %q has unknown mode %q", c.PID, c.Mode), name, rmName)
			}
		}
	}
}

// CheckPathElement rejects run mode names and pids that would leave or nest
// the directory of a configuration path.
func CheckPathElement(kind, value string) error {
	if strings.ContainsAny(value, `/\`) || strings.Contains(value, "..") {
		return fmt.Errorf(`invalid %s %q, must not contain "/", "\" or ".."`, kind, value)
	}

	return nil
}

// RunModeLabel renders the run mode names for messages, "<default>" for the
// default run mode.
func RunModeLabel(rm *RunMode) string {
	if rm.IsDefault() {
		return "<default>"
	}

	return strings.Join(rm.Names, ",")
}
