package di

// ResolveOptions controls how a single Resolve call behaves. The zero
// value (or a nil *ResolveOptions) resolves eagerly, walking up to parent
// containers on a local miss, and returns exactly one instance.
type ResolveOptions struct {
	// Local, if true, restricts the lookup to the container Resolve was
	// called on - a miss does not walk up to the parent.
	Local bool

	// Multiple, if true, resolves every registration for the identifier
	// into a []any, in registration order, instead of only the most recent
	// one. The registrations come from the first container in the chain
	// (self first, then ancestors unless Local) that has any; lists from
	// further up the chain are not merged in.
	Multiple bool

	// Ref, if true, returns a *Ref instead of resolving eagerly.
	Ref bool

	// Dynamic, if true, returns a *Dynamic instead of resolving eagerly.
	// Ref and Dynamic are mutually exclusive.
	Dynamic bool

	// Optional, if true, a miss returns (DefaultValue, nil) instead of a
	// NotRegistered error.
	Optional bool

	// DefaultValue is returned on an Optional single-value miss, in place
	// of nil. An Optional Multiple miss returns an empty []any instead.
	DefaultValue any
}

func (o *ResolveOptions) orDefault() *ResolveOptions {
	if o == nil {
		return &ResolveOptions{}
	}
	return o
}

func (o *ResolveOptions) validate() error {
	if o == nil {
		return nil
	}
	if o.Ref && o.Dynamic {
		return &InvalidOptionsError{Reason: "ResolveOptions.Ref and ResolveOptions.Dynamic are mutually exclusive"}
	}
	if o.Multiple && (o.Ref || o.Dynamic) {
		return &InvalidOptionsError{Reason: "ResolveOptions.Multiple cannot be combined with Ref or Dynamic"}
	}
	return nil
}

// IsRegisteredOptions controls an IsRegistered lookup.
type IsRegisteredOptions struct {
	// Local, if true, restricts the check to the container it was called
	// on, without walking up to ancestors.
	Local bool
}
