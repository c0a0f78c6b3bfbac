package export

import (
	"fmt"
	"path"

	"github.com/mandelsoft/vfs/pkg/vfs"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile writes data to filePath, creating parent directories.
func WriteFile(fs vfs.FileSystem, filePath string, data []byte) error {
	if err := fs.MkdirAll(path.Dir(filePath), dirPerm); err != nil {
		return fmt.Errorf("creating directory for %s: %w", filePath, err)
	}

	if err := vfs.WriteFile(fs, filePath, data, filePerm); err != nil {
		return fmt.Errorf("writing file %s: %w", filePath, err)
	}

	return nil
}
