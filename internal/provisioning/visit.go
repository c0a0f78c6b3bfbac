package provisioning

import (
	"slices"
	"strings"

	"provisioning-mapper/internal/model"
)

// ConfigFileExtension is appended to every configuration path.
const ConfigFileExtension = ".config"

// ConfigConsumer receives a configuration's relative path and properties.
// Returning an error stops the visit.
type ConfigConsumer func(path string, properties map[string]any) error

// VisitOSGiConfigurations calls consumer once for every configuration of every
// run mode of every feature, in stored order. The first consumer error aborts
// the visit and is returned unchanged.
func VisitOSGiConfigurations(m *model.Model, consumer ConfigConsumer) error {
	for _, feature := range m.Features {
		for _, runMode := range feature.RunModes {
			for _, cfg := range runMode.Configurations {
				if err := consumer(ConfigurationPath(runMode, cfg), cfg.Properties); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// ConfigurationPath returns the relative path of a configuration: the sorted,
// distinct run mode names joined with "." as directory (skipped for default
// and special run modes), then "<factoryPid>-" if set, the pid and ".config".
func ConfigurationPath(runMode *model.RunMode, cfg *model.Configuration) string {
	var path strings.Builder

	if len(runMode.Names) > 0 && !runMode.IsSpecial() {
		names := slices.Clone(runMode.Names)
		slices.Sort(names)
		names = slices.Compact(names)

		path.WriteString(strings.Join(names, "."))
		path.WriteString("/")
	}

	if cfg.FactoryPID != "" {
		path.WriteString(cfg.FactoryPID)
		path.WriteString("-")
	}

	path.WriteString(cfg.PID)
	path.WriteString(ConfigFileExtension)

	return path.String()
}
