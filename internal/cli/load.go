package cli

import (
	"github.com/go-logr/logr"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"provisioning-mapper/internal/effective"
	"provisioning-mapper/internal/model"
	"provisioning-mapper/internal/provisioning"
)

// loadModel loads the effective model of file and applies the configured
// run mode filter.
func loadModel(log logr.Logger, fs vfs.FileSystem, file string, cfg *GlobalOptions) (*model.Model, error) {
	m, err := provisioning.GetModel(fs, file, cfg.Config.Charset)
	if err != nil {
		return nil, err
	}

	log.V(1).Info("loaded model", "file", file, "features", len(m.Features))

	if len(cfg.Config.RunModes) > 0 {
		m = effective.Filter(m, cfg.Config.RunModes)
		log.V(2).Info("filtered run modes", "runModes", cfg.Config.RunModes)
	}

	return m, nil
}
