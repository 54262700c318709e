package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenwise/di/internal/record"
)

func TestTree_AddNodeMovesCurrent(t *testing.T) {
	tree := record.New("root")
	a := tree.AddNode("a")
	assert.Same(t, a, tree.Current())
	assert.Same(t, tree.Root(), a.Parent)

	b := tree.AddNode("b")
	assert.Same(t, b, tree.Current())
	assert.Same(t, a, b.Parent)
}

func TestTree_StashRestoreRoundTrips(t *testing.T) {
	tree := record.New("root")
	a := tree.AddNode("a")

	tree.Stash()
	tree.AddNode("sibling-of-nothing")

	require.NoError(t, tree.Restore())
	assert.Same(t, a, tree.Current())
}

func TestTree_RestoreWithEmptyStashFails(t *testing.T) {
	tree := record.New("root")
	err := tree.Restore()
	assert.ErrorIs(t, err, record.ErrUnbalanced)
}

func TestTree_AncestorsExcludesRootAndCurrent(t *testing.T) {
	tree := record.New("root")
	a := tree.AddNode("a")
	b := tree.AddNode("b")

	ancestors := tree.Ancestors()
	require.Len(t, ancestors, 1)
	assert.Same(t, a, ancestors[0])
	assert.NotContains(t, ancestors, b)
}

func TestTree_PathsIncludesCurrentExcludesRoot(t *testing.T) {
	tree := record.New("root")
	a := tree.AddNode("a")
	b := tree.AddNode("b")

	paths := tree.Paths()
	require.Len(t, paths, 2)
	assert.Same(t, b, paths[0])
	assert.Same(t, a, paths[1])
}

func TestTree_FindEqualAncestorDetectsCycle(t *testing.T) {
	tree := record.New("root")
	tree.AddNode("A")
	tree.AddNode("B")
	tree.AddNode("A") // cycle back to the first "A"

	found := tree.FindEqualAncestor(func(candidate, current any) bool {
		return candidate == current
	})
	require.NotNil(t, found)
	assert.Equal(t, "A", found.Payload)
}

func TestTree_FindEqualAncestorNoCycle(t *testing.T) {
	tree := record.New("root")
	tree.AddNode("A")
	tree.AddNode("B")

	found := tree.FindEqualAncestor(func(candidate, current any) bool {
		return candidate == current
	})
	assert.Nil(t, found)
}
