package di_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenwise/di"
)

func TestContainer_MiddlewareCanShortCircuit(t *testing.T) {
	c := di.NewContainer("root", nil)
	_, _ = c.Register(di.Name("greeting"), di.UseValue("hello"))

	c.Use(func(p di.Params, next di.Next) (any, error) {
		if p.Ident == di.Name("greeting") {
			return "intercepted", nil
		}
		return next(p)
	})

	v, err := di.Resolve[string](c, di.Name("greeting"), nil)
	require.NoError(t, err)
	assert.Equal(t, "intercepted", v)
}

func TestContainer_MiddlewareCanRewriteResult(t *testing.T) {
	c := di.NewContainer("root", nil)
	_, _ = c.Register(di.Name("greeting"), di.UseValue("hello"))

	c.Use(func(p di.Params, next di.Next) (any, error) {
		v, err := next(p)
		if err != nil {
			return v, err
		}
		return v.(string) + "!", nil
	})

	v, err := di.Resolve[string](c, di.Name("greeting"), nil)
	require.NoError(t, err)
	assert.Equal(t, "hello!", v)
}

func TestContainer_UnusedRemovesMiddleware(t *testing.T) {
	c := di.NewContainer("root", nil)
	_, _ = c.Register(di.Name("greeting"), di.UseValue("hello"))

	id := c.Use(func(p di.Params, next di.Next) (any, error) {
		return "intercepted", nil
	})
	c.Unused(id)

	v, err := di.Resolve[string](c, di.Name("greeting"), nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestManager_OnBeforeAfterError(t *testing.T) {
	c := di.NewContainer("root", nil)
	_, _ = c.Register(di.Name("ok"), di.UseValue(1))

	var beforeCount, afterCount, errCount int
	m := di.NewManager()
	remove := m.OnBefore(func(di.Params) { beforeCount++ })
	defer remove()
	m.OnAfter(func(di.Params, any) { afterCount++ })
	m.OnError(func(di.Params, error) { errCount++ })

	// Exercise the manager directly against a terminal executor, since
	// before/after/error are a Manager concern independent of any one
	// container.
	terminal := di.Next(func(p di.Params) (any, error) {
		return c.Resolve(p.Ident, p.Opts)
	})
	chain := m.Wrap(terminal)

	_, err := chain(di.Params{Container: c, Ident: di.Name("ok"), Opts: &di.ResolveOptions{}})
	require.NoError(t, err)
	assert.Equal(t, 1, beforeCount)
	assert.Equal(t, 1, afterCount)
	assert.Equal(t, 0, errCount)
}

func TestManager_WrapEmitsOnePairPerMiddlewareFrame(t *testing.T) {
	c := di.NewContainer("root", nil)
	_, _ = c.Register(di.Name("ok"), di.UseValue(1))

	m := di.NewManager()
	var events []string
	m.OnBefore(func(di.Params) { events = append(events, "before") })
	m.OnAfter(func(di.Params, any) { events = append(events, "after") })

	m.Use(func(p di.Params, next di.Next) (any, error) { return next(p) })
	m.Use(func(p di.Params, next di.Next) (any, error) { return next(p) })

	terminal := di.Next(func(p di.Params) (any, error) {
		return c.Resolve(p.Ident, p.Opts)
	})
	chain := m.Wrap(terminal)

	_, err := chain(di.Params{Container: c, Ident: di.Name("ok"), Opts: &di.ResolveOptions{}})
	require.NoError(t, err)

	// Two middlewares plus the terminal: three nested before/after pairs,
	// innermost (terminal) finishing first.
	assert.Equal(t, []string{"before", "before", "before", "after", "after", "after"}, events)
}

func TestManager_OnChangeFiresOnUseAndUnused(t *testing.T) {
	m := di.NewManager()
	changes := 0
	m.OnChange(func() { changes++ })

	id := m.Use(func(p di.Params, next di.Next) (any, error) { return next(p) })
	m.Unused(id)

	assert.Equal(t, 2, changes)
}
