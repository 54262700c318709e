package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenwise/di/internal/registry"
)

func TestTable_AppendPreservesInsertionOrder(t *testing.T) {
	tbl := registry.New[string, int]()

	require.NoError(t, tbl.Append("k", 1))
	require.NoError(t, tbl.Append("k", 2))
	require.NoError(t, tbl.Append("k", 3))

	assert.Equal(t, []int{1, 2, 3}, tbl.Get("k"))
}

func TestTable_GetReturnsDefensiveCopy(t *testing.T) {
	tbl := registry.New[string, int]()
	require.NoError(t, tbl.Append("k", 1))

	got := tbl.Get("k")
	got[0] = 99

	assert.Equal(t, []int{1}, tbl.Get("k"))
}

func TestTable_HasAndKeys(t *testing.T) {
	tbl := registry.New[string, int]()
	assert.False(t, tbl.Has("k"))

	require.NoError(t, tbl.Append("k", 1))
	assert.True(t, tbl.Has("k"))
	assert.ElementsMatch(t, []string{"k"}, tbl.Keys())
}

func TestTable_RemoveAll(t *testing.T) {
	tbl := registry.New[string, int]()
	require.NoError(t, tbl.Append("k", 1))
	require.NoError(t, tbl.Append("k", 2))

	removed := tbl.RemoveAll("k")
	assert.Equal(t, 2, removed)
	assert.False(t, tbl.Has("k"))
}

func TestTable_RemoveMatch(t *testing.T) {
	tbl := registry.New[string, int]()
	require.NoError(t, tbl.Append("k", 1))
	require.NoError(t, tbl.Append("k", 2))
	require.NoError(t, tbl.Append("k", 3))

	removed := tbl.RemoveMatch("k", func(v int) bool { return v == 2 })
	assert.Equal(t, 1, removed)
	assert.Equal(t, []int{1, 3}, tbl.Get("k"))
}

func TestTable_DisposeRejectsAppend(t *testing.T) {
	tbl := registry.New[string, int]()
	tbl.Dispose()

	err := tbl.Append("k", 1)
	assert.ErrorIs(t, err, registry.ErrDisposed)
}
