package effective

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provisioning-mapper/internal/model"
	"provisioning-mapper/internal/reader"
)

func read(t *testing.T, doc string) *model.Model {
	t.Helper()

	m, err := reader.Read(strings.NewReader(doc), "test.txt")
	require.NoError(t, err)

	return m
}

func TestResolveSubstitutesVariables(t *testing.T) {
	m := read(t, `
[feature name=app]
[variables]
  version=1.2.3
  host=example.com

[settings]
  url=https://${host}/path

[artifacts]
  mvn:com.example/core/${version}

[configurations]
  org.example.Service
    url="https://${host}"
    hosts=["${host}", "other"]
    literal="\\${not.a.variable}"
    port=I"80"
`)

	eff, err := Resolve(m, nil)
	require.NoError(t, err)

	rm := eff.Features[0].RunModes[0]

	url, _ := rm.Settings.Get("url")
	assert.Equal(t, "https://example.com/path", url)
	assert.Equal(t, "1.2.3", rm.ArtifactGroups[0].Artifacts[0].Version)

	props := rm.Configurations[0].Properties
	assert.Equal(t, "https://example.com", props["url"])
	assert.Equal(t, []string{"example.com", "other"}, props["hosts"])
	assert.Equal(t, "${not.a.variable}", props["literal"])
	assert.Equal(t, int32(80), props["port"])

	// the input is untouched
	assert.Equal(t, "${version}", m.Features[0].RunModes[0].ArtifactGroups[0].Artifacts[0].Version)
	assert.Equal(t, "https://${host}", m.Features[0].RunModes[0].Configurations[0].Properties["url"])
}

func TestResolveEscapedReferences(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		property string
		setting  string
		value    string
	}{
		{
			name:     "single backslash is consumed by the string unescape",
			settings: `url=${host}`,
			property: `url="\${host}"`,
			setting:  "example.com",
			value:    "example.com",
		},
		{
			name:     "double backslash keeps the reference",
			settings: `url=\${host}`,
			property: `url="\\${host}"`,
			setting:  "${host}",
			value:    "${host}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := read(t, "[feature name=app]\n[variables]\n  host=example.com\n[settings]\n  "+
				tt.settings+"\n[configurations]\n  org.example.Service\n    "+tt.property+"\n")

			eff, err := Resolve(m, nil)
			require.NoError(t, err)

			rm := eff.Features[0].RunModes[0]

			setting, _ := rm.Settings.Get("url")
			assert.Equal(t, tt.setting, setting)
			assert.Equal(t, tt.value, rm.Configurations[0].Properties["url"])
		})
	}
}

func TestResolveUndefinedVariable(t *testing.T) {
	m := read(t, `
[feature name=app]
[configurations]
  org.example.Service
    url="${missing}"
`)

	_, err := Resolve(m, nil)
	require.Error(t, err)

	var uv *UndefinedVariableError
	require.True(t, errors.As(err, &uv))
	assert.Equal(t, "app", uv.Feature)
	assert.Equal(t, "missing", uv.Variable)
	assert.Contains(t, err.Error(), "org.example.Service")
}

func TestResolveMergesFeatures(t *testing.T) {
	m := read(t, `
[feature name=app version=1]
[variables]
  v=1
[artifacts]
  g/a/1.0
  g/b/1.0
[configurations]
  pid.overwrite
    a="1"
    b="1"
  pid.merge
    a="1"
    b="1"
  pid.untouched
    a="1"

[feature name=other]
[configurations]
  pid.other

[feature name=app version=2]
[variables]
  v=2
[artifacts]
  g/a/2.0
[configurations]
  pid.overwrite
    a="2"
  pid.merge [mode=merge]
    a="2"
  pid.new
`)

	eff, err := Resolve(m, nil)
	require.NoError(t, err)
	require.Len(t, eff.Features, 2)

	app := eff.Features[0]
	assert.Equal(t, "app", app.Name)
	assert.Equal(t, "2", app.Version)

	v, _ := app.Variables.Get("v")
	assert.Equal(t, "2", v)

	require.Len(t, app.RunModes, 1)
	rm := app.RunModes[0]

	require.Len(t, rm.ArtifactGroups, 1)
	arts := rm.ArtifactGroups[0].Artifacts
	require.Len(t, arts, 2)
	assert.Equal(t, "b", arts[0].ArtifactID)
	assert.Equal(t, "a", arts[1].ArtifactID)
	assert.Equal(t, "2.0", arts[1].Version)

	pids := make([]string, 0, len(rm.Configurations))
	for _, c := range rm.Configurations {
		pids = append(pids, c.PID)
	}

	assert.Equal(t, []string{"pid.overwrite", "pid.merge", "pid.untouched", "pid.new"}, pids)
	assert.Equal(t, map[string]any{"a": "2"}, rm.GetConfiguration("pid.overwrite", "").Properties)
	assert.Equal(t, map[string]any{"a": "2", "b": "1"}, rm.GetConfiguration("pid.merge", "").Properties)

	assert.Equal(t, "other", eff.Features[1].Name)
}

func TestResolveRemoveRunMode(t *testing.T) {
	m := read(t, `
[feature name=app]
[artifacts]
  g/a/1.0
  g/b/1.0
[artifacts runModes=prod]
  g/c/1.0
[configurations]
  pid.keep
  pid.drop
[configurations runModes=prod]
  pid.prod

[artifacts runModes=:remove]
  g/a/0.0
[configurations runModes=:remove]
  pid.drop
[configurations runModes=:remove,prod]
  pid.prod
`)

	eff, err := Resolve(m, nil)
	require.NoError(t, err)

	f := eff.Features[0]
	require.Len(t, f.RunModes, 2, "remove run modes disappear")

	def := f.GetRunMode(nil)
	require.NotNil(t, def)
	require.Len(t, def.ArtifactGroups[0].Artifacts, 1)
	assert.Equal(t, "b", def.ArtifactGroups[0].Artifacts[0].ArtifactID)
	require.Len(t, def.Configurations, 1)
	assert.Equal(t, "pid.keep", def.Configurations[0].PID)

	prod := f.GetRunMode([]string{"prod"})
	require.NotNil(t, prod)
	assert.Empty(t, prod.Configurations)
	assert.Len(t, prod.ArtifactGroups, 1)
}

func TestResolveFilter(t *testing.T) {
	m := read(t, `
[feature name=app]
[configurations]
  pid.default
[configurations runModes=prod]
  pid.prod
[configurations runModes=prod,web]
  pid.prodweb
[configurations runModes=dev]
  pid.dev
[configurations runModes=:standby]
  pid.standby
`)

	all, err := Resolve(m, nil)
	require.NoError(t, err)
	assert.Len(t, all.Features[0].RunModes, 5)

	prod, err := Resolve(m, []string{"prod"})
	require.NoError(t, err)

	var labels []string
	for _, rm := range prod.Features[0].RunModes {
		labels = append(labels, model.RunModeLabel(rm))
	}

	assert.Equal(t, []string{"<default>", "prod", ":standby"}, labels)

	empty, err := Resolve(m, []string{})
	require.NoError(t, err)
	assert.Len(t, empty.Features[0].RunModes, 2, "an empty filter keeps only default and special run modes")
}

func TestResolveNil(t *testing.T) {
	_, err := Resolve(nil, nil)
	require.Error(t, err)
}

func TestFilterResolvedModel(t *testing.T) {
	m := read(t, `
[feature name=app]
[configurations]
  pid.default
    literal="\\${kept}"
[configurations runModes=prod]
  pid.prod
[configurations runModes=dev]
  pid.dev
`)

	eff, err := Resolve(m, nil)
	require.NoError(t, err)

	prod := Filter(eff, []string{"prod"})
	require.Len(t, prod.Features[0].RunModes, 2)
	assert.Equal(t, "pid.prod", prod.Features[0].RunModes[1].Configurations[0].PID)
	assert.Equal(t, "${kept}", prod.Features[0].RunModes[0].Configurations[0].Properties["literal"])

	assert.Len(t, eff.Features[0].RunModes, 3, "the input is untouched")
}
