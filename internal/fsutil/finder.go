// Package fsutil provides file system utility functions on top of vfs.
package fsutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mandelsoft/vfs/pkg/vfs"
)

// MatchesExtension reports whether the file name's extension equals extension,
// ignoring case. extension is given without the leading dot.
func MatchesExtension(path, extension string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")

	return ext != "" && strings.EqualFold(ext, extension)
}

// FindFilesByExtension recursively searches the given root path for all files
// whose extension matches (see MatchesExtension). Paths are returned in
// lexical walk order.
func FindFilesByExtension(fs vfs.FileSystem, rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := vfs.Walk(fs, rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && MatchesExtension(info.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}
