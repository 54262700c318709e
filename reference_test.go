package di_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenwise/di"
)

func TestRef_MemoizesAfterFirstCurrent(t *testing.T) {
	c := di.NewContainer("root", nil)
	calls := 0
	_, _ = c.Register(di.Name("count"), di.UseClass(func(_ *di.Container, _ *di.ResolveOptions) (any, error) {
		calls++
		return calls, nil
	}))

	v, err := c.Resolve(di.Name("count"), &di.ResolveOptions{Ref: true})
	require.NoError(t, err)
	ref := v.(*di.Ref)

	assert.False(t, ref.Resolved())

	first, err := di.RefOf[int](ref)
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.True(t, ref.Resolved())

	second, err := di.RefOf[int](ref)
	require.NoError(t, err)
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, calls)
}

func TestDynamic_ReevaluatesEveryCall(t *testing.T) {
	c := di.NewContainer("root", nil)
	calls := 0
	_, _ = c.Register(di.Name("count"), di.UseClass(func(_ *di.Container, _ *di.ResolveOptions) (any, error) {
		calls++
		return calls, nil
	}))

	v, err := c.Resolve(di.Name("count"), &di.ResolveOptions{Dynamic: true})
	require.NoError(t, err)
	dyn := v.(*di.Dynamic)

	assert.False(t, dyn.Resolved())

	first, err := di.DynamicOf[int](dyn)
	require.NoError(t, err)
	assert.True(t, dyn.Resolved())

	second, err := di.DynamicOf[int](dyn)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 2, calls)
	assert.True(t, dyn.Resolved())
}

func TestResolveOptions_RefAndDynamicMutuallyExclusive(t *testing.T) {
	c := di.NewContainer("root", nil)
	_, err := c.Resolve(di.Name("x"), &di.ResolveOptions{Ref: true, Dynamic: true})
	require.Error(t, err)
	assert.True(t, di.IsInvalidOptions(err))
}
