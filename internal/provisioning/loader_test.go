package provisioning

import (
	"errors"
	"io"
	"testing"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"provisioning-mapper/internal/model"
	"provisioning-mapper/internal/reader"
)

// trackingFS counts open file handles.
type trackingFS struct {
	vfs.FileSystem
	open int
}

func (t *trackingFS) Open(name string) (vfs.File, error) {
	f, err := t.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}

	t.open++

	return &trackingFile{File: f, fs: t}, nil
}

type trackingFile struct {
	vfs.File
	fs *trackingFS
}

func (f *trackingFile) Close() error {
	f.fs.open--
	return f.File.Close()
}

func newTrackingFS(t *testing.T, files map[string]string) *trackingFS {
	t.Helper()

	mem := memoryfs.New()
	for path, content := range files {
		require.NoError(t, vfs.WriteFile(mem, path, []byte(content), 0o644))
	}

	return &trackingFS{FileSystem: mem}
}

func TestLoaderPassesContentAndNilFilter(t *testing.T) {
	tfs := newTrackingFS(t, map[string]string{"/model.txt": "[feature name=app]\n"})

	raw := model.NewModel("raw")
	eff := model.NewModel("effective")

	var (
		gotText     string
		gotLocation string
		gotModel    *model.Model
		gotFilter   = []string{"sentinel"}
	)

	l := &Loader{
		Parse: func(r io.Reader, location string) (*model.Model, error) {
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, err
			}

			gotText = string(data)
			gotLocation = location

			return raw, nil
		},
		Resolve: func(m *model.Model, filter []string) (*model.Model, error) {
			gotModel = m
			gotFilter = filter

			return eff, nil
		},
	}

	m, err := l.Load(tfs, "/model.txt", DefaultCharset)
	require.NoError(t, err)

	assert.Same(t, eff, m)
	assert.Same(t, raw, gotModel)
	assert.Nil(t, gotFilter)
	assert.Equal(t, "/model.txt", gotLocation)
	assert.Equal(t, "[feature name=app]\n", gotText)
	assert.Equal(t, 0, tfs.open)
}

func TestLoaderReturnsErrorsUnchanged(t *testing.T) {
	parseErr := errors.New("parse failed")
	resolveErr := errors.New("resolve failed")

	okParse := func(io.Reader, string) (*model.Model, error) { return model.NewModel(""), nil }
	okResolve := func(m *model.Model, _ []string) (*model.Model, error) { return m, nil }

	tests := []struct {
		name   string
		loader *Loader
		want   error
	}{
		{
			name: "parse",
			loader: &Loader{
				Parse: func(io.Reader, string) (*model.Model, error) { return nil, parseErr },
				Resolve: func(*model.Model, []string) (*model.Model, error) {
					return nil, errors.New("resolve must not run after a parse failure")
				},
			},
			want: parseErr,
		},
		{
			name:   "resolve",
			loader: &Loader{Parse: okParse, Resolve: func(*model.Model, []string) (*model.Model, error) { return nil, resolveErr }},
			want:   resolveErr,
		},
		{
			name:   "success",
			loader: &Loader{Parse: okParse, Resolve: okResolve},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tfs := newTrackingFS(t, map[string]string{"/model.txt": "[feature name=app]\n"})

			m, err := tt.loader.Load(tfs, "/model.txt", DefaultCharset)
			if tt.want != nil {
				assert.Nil(t, m)
				assert.Equal(t, tt.want, err, "errors are not wrapped")
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, 0, tfs.open, "file handle released")
		})
	}
}

func TestLoaderMissingFile(t *testing.T) {
	called := false
	l := &Loader{
		Parse: func(io.Reader, string) (*model.Model, error) {
			called = true
			return nil, nil
		},
	}

	_, err := l.Load(memoryfs.New(), "/missing.txt", DefaultCharset)
	require.Error(t, err)
	assert.False(t, called)
}

func TestLoaderUnknownCharset(t *testing.T) {
	tfs := newTrackingFS(t, map[string]string{"/model.txt": "[feature name=app]\n"})

	_, err := NewLoader().Load(tfs, "/model.txt", "no-such-charset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-charset")
	assert.Equal(t, 0, tfs.open)
}

func TestGetModel(t *testing.T) {
	doc := `[feature name=app]
[variables]
  host=bücher.example

[configurations]
  org.example.Service
    url="https://${host}"

[configurations runModes=prod]
  org.example.Factory-main
    enabled=B"true"
`

	latin1, err := charmap.ISO8859_1.NewEncoder().String(doc)
	require.NoError(t, err)

	mem := memoryfs.New()
	require.NoError(t, mem.MkdirAll("/app", 0o755))
	require.NoError(t, vfs.WriteFile(mem, "/app/model.txt", []byte(latin1), 0o644))

	m, err := GetModel(mem, "/app/model.txt", "ISO-8859-1")
	require.NoError(t, err)
	require.Len(t, m.Features, 1)

	f := m.Features[0]
	assert.Equal(t, "/app/model.txt", f.Location)
	require.Len(t, f.RunModes, 2)
	assert.Equal(t, "https://bücher.example", f.RunModes[0].Configurations[0].Properties["url"])
	assert.Equal(t, true, f.RunModes[1].Configurations[0].Properties["enabled"])
}

func TestGetModelParseError(t *testing.T) {
	mem := memoryfs.New()
	require.NoError(t, vfs.WriteFile(mem, "/bad.txt", []byte("[feature name=a]\n[artifact]\n"), 0o644))

	_, err := GetModel(mem, "/bad.txt", DefaultCharset)
	require.Error(t, err)

	var pe *reader.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "/bad.txt", pe.Location)
	assert.Equal(t, 2, pe.Line)
}
