package di

// Provider is the closed set of ways a registration can produce a
// service instance. The only implementations are ClassProvider,
// ValueProvider, FactoryProvider, and AliasProvider; the unexported
// marker method keeps the set closed to this package.
type Provider interface {
	provider()
}

// Constructor builds a new instance of a service, given the container it
// was registered on and the options the triggering Resolve call was made
// with. Constructors call c.Resolve (or the generic Resolve[T]) for any
// dependency they need - di never inspects a constructor's signature.
type Constructor func(c *Container, opts *ResolveOptions) (any, error)

// ClassProvider builds an instance by calling New on every resolution
// (subject to the registration's Lifecycle caching the result).
type ClassProvider struct {
	New Constructor
}

func (ClassProvider) provider() {}

// ValueProvider wraps an already-constructed value. ValueProvider
// registrations are always treated as Singleton, regardless of the
// Lifecycle given at registration time - there is nothing to re-create.
type ValueProvider struct {
	Value any
}

func (ValueProvider) provider() {}

// FactoryProvider is identical in shape to ClassProvider; it exists so
// UseClass and UseFactory read distinctly at call sites while sharing
// resolution behavior, mirroring a class constructor versus a plain
// factory function.
type FactoryProvider struct {
	New Constructor
}

func (FactoryProvider) provider() {}

// AliasProvider redirects resolution of its own Identifier to another
// Identifier, optionally in a specific container. Resolving an alias
// re-enters the resolver against the target identifier rather than
// producing a value of its own.
type AliasProvider struct {
	Target Identifier
	// GetContainer, if non-nil, is called at resolve time - not
	// registration time - to get the container the alias target should
	// be resolved from instead of the container the alias itself lives
	// in. Reading it lazily lets late-bound wiring (a container swapped
	// in after the alias was registered) still be targeted.
	GetContainer func() *Container
}

func (AliasProvider) provider() {}

// registerKind discriminates which constructor built a RegisterOptions,
// so UseValue(nil) is never mistaken for an unset provider.
type registerKind int

const (
	kindUnset registerKind = iota
	kindClass
	kindValue
	kindFactory
	kindAlias
)

// RegisterOptions describes how an Identifier should be provided. Build
// one with UseClass, UseValue, UseFactory, or UseAlias - the zero value
// is intentionally invalid and Register rejects it.
type RegisterOptions struct {
	kind      registerKind
	lifecycle Lifecycle

	class     Constructor
	value     any
	factory   Constructor
	aliasTo   Identifier
	aliasIn   func() *Container
}

// Lifecycle returns the lifecycle the registration will use. ValueProvider
// registrations always report Singleton, regardless of what was passed to
// UseValue.
func (o RegisterOptions) Lifecycle() Lifecycle {
	if o.kind == kindValue {
		return Singleton
	}
	return o.lifecycle
}

// provider builds the concrete Provider this RegisterOptions describes.
func (o RegisterOptions) provider() (Provider, error) {
	switch o.kind {
	case kindClass:
		return ClassProvider{New: o.class}, nil
	case kindValue:
		return ValueProvider{Value: o.value}, nil
	case kindFactory:
		return FactoryProvider{New: o.factory}, nil
	case kindAlias:
		return AliasProvider{Target: o.aliasTo, GetContainer: o.aliasIn}, nil
	default:
		return nil, &InvalidOptionsError{Reason: "RegisterOptions must be built with UseClass, UseValue, UseFactory, or UseAlias"}
	}
}

// UseClass registers a constructor function invoked to build a new
// instance, defaulting to Transient unless lifecycle is given.
func UseClass(new Constructor, lifecycle ...Lifecycle) RegisterOptions {
	return RegisterOptions{
		kind:      kindClass,
		lifecycle: firstLifecycle(lifecycle),
		class:     new,
	}
}

// UseValue registers an already-constructed value. It always resolves as
// Singleton.
func UseValue(value any) RegisterOptions {
	return RegisterOptions{
		kind:  kindValue,
		value: value,
	}
}

// UseFactory registers a constructor function, identical in behavior to
// UseClass - the separate name exists for readability at call sites.
func UseFactory(new Constructor, lifecycle ...Lifecycle) RegisterOptions {
	return RegisterOptions{
		kind:      kindFactory,
		lifecycle: firstLifecycle(lifecycle),
		factory:   new,
	}
}

// UseAlias registers target as an alias: resolving the alias's own
// Identifier re-enters the resolver against target instead. If
// getContainer is non-nil, it is called at resolve time to get the
// container target is resolved against, instead of the alias's own
// container - passing a closure rather than a bare *Container lets the
// target container be swapped out after UseAlias is called.
func UseAlias(target Identifier, getContainer func() *Container) RegisterOptions {
	return RegisterOptions{
		kind:    kindAlias,
		aliasTo: target,
		aliasIn: getContainer,
	}
}

func firstLifecycle(lifecycle []Lifecycle) Lifecycle {
	if len(lifecycle) == 0 {
		return Transient
	}
	return lifecycle[0]
}
