package provisioning

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provisioning-mapper/internal/model"
)

func configuration(factoryPID, pid string) *model.Configuration {
	c := model.NewConfiguration(pid, factoryPID)
	c.Properties["pid"] = pid

	return c
}

func runMode(names ...string) *model.RunMode {
	return model.NewRunMode(names)
}

func TestConfigurationPath(t *testing.T) {
	tests := []struct {
		name       string
		runMode    *model.RunMode
		factoryPID string
		pid        string
		want       string
	}{
		{
			name:    "sorted run modes",
			runMode: runMode("prod", "web"),
			pid:     "org.example.Foo",
			want:    "prod.web/org.example.Foo.config",
		},
		{
			name:    "run modes are sorted regardless of stored order",
			runMode: runMode("web", "prod"),
			pid:     "org.example.Foo",
			want:    "prod.web/org.example.Foo.config",
		},
		{
			name:       "default run mode with factory",
			runMode:    runMode(),
			factoryPID: "com.example.Factory",
			pid:        "bar",
			want:       "com.example.Factory-bar.config",
		},
		{
			name:       "empty names",
			runMode:    &model.RunMode{Names: []string{}},
			factoryPID: "com.example.Factory",
			pid:        "bar",
			want:       "com.example.Factory-bar.config",
		},
		{
			name:       "special run mode has no prefix",
			runMode:    runMode(":standby"),
			factoryPID: "com.example.Factory",
			pid:        "bar",
			want:       "com.example.Factory-bar.config",
		},
		{
			name:    "special name among others is a prefix",
			runMode: runMode("prod", ":standby"),
			pid:     "p",
			want:    ":standby.prod/p.config",
		},
		{
			name:    "single run mode",
			runMode: runMode("author"),
			pid:     "p",
			want:    "author/p.config",
		},
		{
			name:    "duplicate names collapse",
			runMode: runMode("b", "a", "b"),
			pid:     "p",
			want:    "a.b/p.config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := slices.Clone(tt.runMode.Names)

			got := ConfigurationPath(tt.runMode, model.NewConfiguration(tt.pid, tt.factoryPID))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, stored, tt.runMode.Names, "stored order is untouched")
		})
	}
}

// grid builds a model with n features, m run modes per feature and k
// configurations per run mode.
func grid(n, m, k int) *model.Model {
	out := model.NewModel("grid")

	for fi := range n {
		f := model.NewFeature(fmt.Sprintf("f%d", fi))

		for ri := range m {
			var rm *model.RunMode
			if ri == 0 {
				rm = runMode()
			} else {
				rm = runMode(fmt.Sprintf("rm%d", ri), "a")
			}

			for ci := range k {
				rm.Configurations = append(rm.Configurations, configuration("", fmt.Sprintf("pid%d", ci)))
			}

			f.RunModes = append(f.RunModes, rm)
		}

		out.Features = append(out.Features, f)
	}

	return out
}

func TestVisitOSGiConfigurationsVisitsEveryConfiguration(t *testing.T) {
	for _, dims := range [][3]int{{0, 0, 0}, {1, 1, 1}, {2, 3, 4}, {3, 1, 0}} {
		t.Run(fmt.Sprint(dims), func(t *testing.T) {
			m := grid(dims[0], dims[1], dims[2])

			var paths []string
			err := VisitOSGiConfigurations(m, func(path string, props map[string]any) error {
				paths = append(paths, path)
				return nil
			})
			require.NoError(t, err)
			assert.Len(t, paths, dims[0]*dims[1]*dims[2])
		})
	}
}

func TestVisitOSGiConfigurationsOrderAndProperties(t *testing.T) {
	m := grid(1, 2, 2)

	type visit struct {
		path string
		pid  any
	}

	var visits []visit
	err := VisitOSGiConfigurations(m, func(path string, props map[string]any) error {
		visits = append(visits, visit{path: path, pid: props["pid"]})
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []visit{
		{path: "pid0.config", pid: "pid0"},
		{path: "pid1.config", pid: "pid1"},
		{path: "a.rm1/pid0.config", pid: "pid0"},
		{path: "a.rm1/pid1.config", pid: "pid1"},
	}, visits)
}

func TestVisitOSGiConfigurationsAbortsOnError(t *testing.T) {
	consumerErr := errors.New("disk full")

	for _, failAt := range []int{1, 3, 24} {
		t.Run(fmt.Sprint(failAt), func(t *testing.T) {
			calls := 0
			err := VisitOSGiConfigurations(grid(2, 3, 4), func(string, map[string]any) error {
				calls++
				if calls == failAt {
					return consumerErr
				}

				return nil
			})

			assert.Equal(t, consumerErr, err)
			assert.Equal(t, failAt, calls)
		})
	}
}
