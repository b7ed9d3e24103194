package patterns

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	set := &Set{
		Name:       "smoke",
		IgnoreCase: true,
		Patterns: []Entry{
			{Key: "he", Value: 1},
			{Key: "she", Value: 2},
		},
	}

	path := filepath.Join(t.TempDir(), "set.yaml")
	require.NoError(t, Save(path, set))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, set.Name, loaded.Name)
	require.Equal(t, set.IgnoreCase, loaded.IgnoreCase)
	require.Equal(t, set.Patterns, loaded.Patterns)
}

func TestSet_Builder(t *testing.T) {
	set := &Set{
		Patterns: []Entry{
			{Key: "needle", Value: 42},
		},
	}

	b, err := set.Builder()
	require.NoError(t, err)

	a, err := b.Build()
	require.NoError(t, err)

	v, ok := a.ValueOf("needle")
	require.True(t, ok)
	require.EqualValues(t, 42, v)
}

func TestSet_BuilderRejectsEmptyKey(t *testing.T) {
	set := &Set{
		Patterns: []Entry{{Key: "", Value: 1}},
	}
	_, err := set.Builder()
	require.Error(t, err)
}
