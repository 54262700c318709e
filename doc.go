// Package di provides a hierarchical, middleware-extensible dependency
// injection container.
//
// A container maps opaque service identifiers to providers and resolves
// identifiers into concrete instances while tracking a full resolution
// tree, detecting circular dependencies, supporting multiple lifecycles,
// lazy/deferred references, and cross-container aliasing.
//
// # Overview
//
// Unlike reflection-driven auto-wiring containers, di never inspects a
// constructor's parameters: every dependency a factory needs, it asks for
// explicitly by calling Resolve on the container it was handed. Services
// are registered under an Identifier - a type, a name, or a symbol - not
// discovered by scanning struct fields.
//
//	root := di.NewContainer("root", nil)
//	root.Register(di.Name("logger"), di.UseFactory(func(c *di.Container, _ *di.ResolveOptions) (any, error) {
//	    return &Logger{}, nil
//	}, di.Singleton))
//
//	logger, err := di.Resolve[*Logger](root, di.Name("logger"), nil)
//
// # Lifecycles
//
// Every registration carries a Lifecycle:
//
//   - Transient (default): a fresh instance on every resolution.
//   - Singleton: one instance per registration, cached for the life of the
//     container that owns it.
//   - Resolution: one instance per registration per top-level Resolve call
//     tree - useful for sharing a value across a single request's worth of
//     dependencies without promoting it to a container-wide singleton.
//
// # References
//
// Resolve can return the instance eagerly (the default), or wrap it:
//
//	ref, _ := root.Resolve(id, &di.ResolveOptions{Ref: true})      // *Ref, lazy, memoized
//	dyn, _ := root.Resolve(id, &di.ResolveOptions{Dynamic: true})  // *Dynamic, re-evaluated every read
//
// Ref and Dynamic exist to break constructor-time cycles: an edge that
// passes through either is exempt from cycle detection.
//
// # Hierarchy
//
// Containers form a tree. A Resolve call that misses in its own container
// walks up to its parent unless ResolveOptions.Local is set. Parents are
// never mutated by a child's resolution.
//
// # Middleware
//
// Every resolution passes through a chain: the process-wide global
// middleware manager, then the container's own local manager, then the
// container's default executor. Middleware can inspect or rewrite the
// resolve parameters, short-circuit without calling next, or transform the
// result - this is the extension point the (out-of-scope) decorator and
// module layers plug into.
//
// # Errors
//
// Failures are synchronous errors: NotRegistered, CircularDependency,
// FactoryThrew, Disposed, InvalidOptions, NoActiveContext,
// NoContainerInContext, UnbalancedRecordStack, and ReentrantResolve. The
// first three carry the resolution path that led to them; the others
// carry no path. IsNotRegistered, IsCircularDependency, and
// friends classify an error without needing errors.As boilerplate at every
// call site.
package di
