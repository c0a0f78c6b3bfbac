package provisioning

import (
	"io"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"provisioning-mapper/internal/effective"
	"provisioning-mapper/internal/model"
	"provisioning-mapper/internal/reader"
)

// ParseFunc reads a raw model from decoded text.
type ParseFunc func(r io.Reader, location string) (*model.Model, error)

// ResolveFunc computes the effective model. A nil filter selects all run modes.
type ResolveFunc func(m *model.Model, filter []string) (*model.Model, error)

// Loader loads provisioning files with injectable parse and resolve steps.
type Loader struct {
	Parse   ParseFunc
	Resolve ResolveFunc
}

// NewLoader returns a Loader using reader.Read and effective.Resolve.
func NewLoader() *Loader {
	return &Loader{
		Parse:   reader.Read,
		Resolve: effective.Resolve,
	}
}

// GetModel loads the effective model of a provisioning file with the default
// collaborators.
func GetModel(fs vfs.FileSystem, path, charset string) (*model.Model, error) {
	return NewLoader().Load(fs, path, charset)
}

// Load opens the file, decodes it with charset, parses it and resolves the
// effective model for all run modes. Errors of the parse and resolve steps
// are returned unchanged.
func (l *Loader) Load(fs vfs.FileSystem, path, charset string) (*model.Model, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	enc, err := LookupEncoding(charset)
	if err != nil {
		return nil, err
	}

	m, err := l.Parse(enc.NewDecoder().Reader(f), path)
	if err != nil {
		return nil, err
	}

	return l.Resolve(m, nil)
}
