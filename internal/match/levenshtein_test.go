package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"feature", "feature", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character operations
		{"a", "b", 1},
		{"artifact", "artifacts", 1},
		{"settings", "setting", 1},

		// Multiple operations
		{"kitten", "sitting", 3},
		{"configuration", "configurations", 1},
		{"variabels", "variables", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "distance must be symmetric")
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "runmodes", Normalize("runModes"))
	assert.Equal(t, "runmodes", Normalize("run_modes"))
	assert.Equal(t, "repoinit", Normalize(":repoinit"))
}

func TestClosest(t *testing.T) {
	candidates := []string{"feature", "variables", "settings", "artifacts", "configurations"}

	got, ok := Closest("artifact", candidates, 3)
	assert.True(t, ok)
	assert.Equal(t, "artifacts", got)

	got, ok = Closest("Configuration", candidates, 3)
	assert.True(t, ok)
	assert.Equal(t, "configurations", got)

	_, ok = Closest("completely-unrelated", candidates, 3)
	assert.False(t, ok)
}

func BenchmarkLevenshtein(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Levenshtein("configurations", "configuration")
	}
}
