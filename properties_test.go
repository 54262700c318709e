package di_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenwise/di"
)

// Properties that should hold regardless of which specific registration
// or container shape is exercising them.

func TestProperty_ResolveIsDeterministicForSingleton(t *testing.T) {
	c := di.NewContainer("root", nil)
	_, _ = c.Register(di.Name("x"), di.UseValue(1))

	for i := 0; i < 5; i++ {
		v, err := di.Resolve[int](c, di.Name("x"), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	}
}

func TestProperty_DisposeIsIdempotent(t *testing.T) {
	c := di.NewContainer("root", nil)
	require.NoError(t, c.Dispose())
	require.NoError(t, c.Dispose())
	require.NoError(t, c.Dispose())
}

func TestProperty_UnregisteredOptionalNeverErrors(t *testing.T) {
	c := di.NewContainer("root", nil)
	for i := 0; i < 3; i++ {
		v, err := c.Resolve(di.Name("nope"), &di.ResolveOptions{Optional: true})
		require.NoError(t, err)
		assert.Nil(t, v)
	}
}

func TestProperty_ChildDisposalDoesNotAffectParent(t *testing.T) {
	parent := di.NewContainer("parent", nil)
	_, _ = parent.Register(di.Name("x"), di.UseValue(1))
	child := di.NewContainer("child", parent)

	require.NoError(t, child.Dispose())

	v, err := di.Resolve[int](parent, di.Name("x"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestProperty_DisposedContainerRejectsResolve(t *testing.T) {
	c := di.NewContainer("root", nil)
	_, _ = c.Register(di.Name("x"), di.UseValue(1))
	require.NoError(t, c.Dispose())

	_, err := c.Resolve(di.Name("x"), nil)
	require.Error(t, err)
	assert.True(t, di.IsDisposed(err))
}

func TestProperty_MultipleReturnsEmptySliceWhenOptionalAndMissing(t *testing.T) {
	c := di.NewContainer("root", nil)
	v, err := c.Resolve(di.Name("nope"), &di.ResolveOptions{Multiple: true, Optional: true})
	require.NoError(t, err)
	assert.Equal(t, []any{}, v)
}
