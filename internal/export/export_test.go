package export

import (
	"strings"
	"testing"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"provisioning-mapper/internal/effective"
	"provisioning-mapper/internal/model"
	"provisioning-mapper/internal/reader"
)

const document = `[feature name=app version=2.0]
[variables]
  host=example.com

[settings runModes=prod]
  mode=fast

[artifacts startLevel=10]
  com.example/core/1.0

[configurations]
  org.example.Service
    url="https://${host}"
    port=I"8080"

[configurations runModes=web,prod]
  org.example.Factory-main
    hosts=["a", "b"]

[:repoinit]
  create path /content/app
`

func effectiveModel(t *testing.T) *model.Model {
	t.Helper()

	raw, err := reader.Read(strings.NewReader(document), "app.txt")
	require.NoError(t, err)

	m, err := effective.Resolve(raw, nil)
	require.NoError(t, err)

	return m
}

func TestConfigurations(t *testing.T) {
	list, err := Configurations(effectiveModel(t))
	require.NoError(t, err)

	assert.Equal(t, DocumentVersion, list.Version)
	assert.Equal(t, "app.txt", list.Source)
	require.Len(t, list.Configurations, 2)

	assert.Equal(t, "org.example.Service.config", list.Configurations[0].Path)
	assert.Equal(t, "https://example.com", list.Configurations[0].Properties["url"])
	assert.Equal(t, "prod.web/org.example.Factory-main.config", list.Configurations[1].Path)

	data, err := YAML(list)
	require.NoError(t, err)

	var decoded ConfigurationList
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Len(t, decoded.Configurations, 2)
	assert.Equal(t, "prod.web/org.example.Factory-main.config", decoded.Configurations[1].Path)
	assert.Equal(t, 8080, decoded.Configurations[0].Properties["port"])
	assert.Equal(t, []any{"a", "b"}, decoded.Configurations[1].Properties["hosts"])
}

func TestConfigurationsEmptyModel(t *testing.T) {
	list, err := Configurations(model.NewModel(""))
	require.NoError(t, err)

	data, err := YAML(list)
	require.NoError(t, err)
	assert.Equal(t, "version: \"1\"\nconfigurations: []\n", string(data))
}

func TestModel(t *testing.T) {
	doc := Model(effectiveModel(t))
	require.Len(t, doc.Features, 1)

	f := doc.Features[0]
	assert.Equal(t, "app", f.Name)
	assert.Equal(t, "2.0", f.Version)
	assert.Equal(t, map[string]string{"host": "example.com"}, f.Variables)
	require.Len(t, f.Sections, 1)
	assert.Equal(t, "repoinit", f.Sections[0].Name)

	require.Len(t, f.RunModes, 3)

	prod := f.RunModes[0]
	assert.Equal(t, []string{"prod"}, prod.Names)
	assert.Equal(t, map[string]string{"mode": "fast"}, prod.Settings)

	def := f.RunModes[1]
	assert.Empty(t, def.Names)
	assert.Equal(t, []ArtifactGroupDocument{{StartLevel: 10, Artifacts: []string{"mvn:com.example/core/1.0/jar"}}}, def.Artifacts)
	require.Len(t, def.Configurations, 1)
	assert.Equal(t, "org.example.Service.config", def.Configurations[0].Path)

	web := f.RunModes[2]
	require.Len(t, web.Configurations, 1)
	assert.Equal(t, "org.example.Factory", web.Configurations[0].FactoryPID)
	assert.Equal(t, "main", web.Configurations[0].PID)

	data, err := YAML(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "factoryPid: org.example.Factory")
	assert.Contains(t, string(data), "startLevel: 10")
}

func TestWriteFile(t *testing.T) {
	fs := memoryfs.New()

	require.NoError(t, WriteFile(fs, "/out/nested/dir/export.yaml", []byte("x: 1\n")))

	data, err := vfs.ReadFile(fs, "/out/nested/dir/export.yaml")
	require.NoError(t, err)
	assert.Equal(t, "x: 1\n", string(data))

	// overwrite
	require.NoError(t, WriteFile(fs, "/out/nested/dir/export.yaml", []byte("x: 2\n")))

	data, err = vfs.ReadFile(fs, "/out/nested/dir/export.yaml")
	require.NoError(t, err)
	assert.Equal(t, "x: 2\n", string(data))
}
