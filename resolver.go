package di

import (
	"fmt"

	"github.com/havenwise/di/internal/record"
)

// framePayload is what the resolution record tree actually stores at
// each node: which container a call was made against, which identifier
// it was resolving, and the options that call was made with (rendered
// as the path entry's bracketed flags on failure). Ref and Dynamic
// edges never reach the tree at all, which is exactly what exempts them
// from cycle detection - so opts.Ref/opts.Dynamic are never true on any
// node actually stored here.
type framePayload struct {
	container *Container
	ident     Identifier
	opts      *ResolveOptions
}

func equalPayload(candidate, current any) bool {
	cp, ok := candidate.(framePayload)
	if !ok {
		return false
	}
	cur, ok := current.(framePayload)
	if !ok {
		return false
	}
	return cp.container == cur.container && sameIdentifier(cp.ident, cur.ident)
}

func containerName(c *Container) string {
	if c == nil {
		return ""
	}
	return c.Name
}

// frameFlags renders opts as a fixed-order bracketed flag list: Ref,
// Dynamic, Optional, Multiple, DefaultValue.
func frameFlags(opts *ResolveOptions) []string {
	if opts == nil {
		return nil
	}
	var flags []string
	if opts.Ref {
		flags = append(flags, "Ref")
	}
	if opts.Dynamic {
		flags = append(flags, "Dynamic")
	}
	if opts.Optional {
		flags = append(flags, "Optional")
	}
	if opts.Multiple {
		flags = append(flags, "Multiple")
	}
	if opts.DefaultValue != nil {
		flags = append(flags, "DefaultValue")
	}
	return flags
}

// pathEntries renders the tree's current chain (outermost first), marking
// cycleNode - if it's on the chain - as the point the cycle closed.
func pathEntries(tree *record.Tree, cycleNode *record.Node) []PathEntry {
	nodes := tree.Paths()
	entries := make([]PathEntry, len(nodes))
	for i, n := range nodes {
		fp, _ := n.Payload.(framePayload)
		entries[len(nodes)-1-i] = PathEntry{
			Container: containerName(fp.container),
			Ident:     fp.ident,
			Flags:     frameFlags(fp.opts),
			Cycle:     n == cycleNode,
		}
	}
	return entries
}

// Resolve looks up id, building (or returning a cached) instance per its
// registration's Lifecycle, and passes the call through the global and
// this container's local middleware chains before the default executor
// runs the actual algorithm. A nil opts behaves like &ResolveOptions{}.
func (c *Container) Resolve(id Identifier, opts *ResolveOptions) (any, error) {
	opts = opts.orDefault()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if c.isDisposed() {
		return nil, &DisposedError{Container: c.Name}
	}

	if opts.Ref {
		plain := *opts
		plain.Ref = false
		return newRef(c, id, &plain), nil
	}
	if opts.Dynamic {
		plain := *opts
		plain.Dynamic = false
		return newDynamic(c, id, &plain), nil
	}

	params := Params{Container: c, Ident: id, Opts: opts}
	chain := globalMiddleware.Wrap(c.middleware.Wrap(c.execute))
	return chain(params)
}

// Resolve resolves id against c and type-asserts the result to T. It is a
// free function, not a method, because Go methods cannot carry their own
// type parameters.
func Resolve[T any](c *Container, id Identifier, opts *ResolveOptions) (T, error) {
	var zero T

	v, err := c.Resolve(id, opts)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}

	t, ok := v.(T)
	if !ok {
		return zero, &InvalidOptionsError{Reason: fmt.Sprintf("resolved value for %s is not assignable to the requested type", id)}
	}
	return t, nil
}

// execute is the container's default Executor: the terminal link of the
// middleware chain, and where the actual resolution algorithm lives. It
// updates c.resolved/c.failed, the counters Statistics reports.
func (c *Container) execute(p Params) (any, error) {
	ctx, leave := ambient.join(nil)
	defer leave()

	var (
		v   any
		err error
	)
	if p.Opts.Multiple {
		v, err = c.resolveMultiple(p.Ident, p.Opts, ctx)
	} else {
		v, err = c.resolveOne(p.Ident, p.Opts, ctx)
	}

	if err != nil {
		c.failed.Add(1)
	} else {
		c.resolved.Add(1)
	}
	return v, err
}

// findRegistration walks c and (unless opts.Local) its ancestors, for the
// first container with at least one registration under id, returning its
// most recently registered provider - later registrations shadow earlier
// ones for single-value resolution.
func (c *Container) findRegistration(id Identifier, opts *ResolveOptions) (*Container, *Registration) {
	for cur := c; cur != nil; cur = cur.Parent {
		if list := cur.regs.Get(id); len(list) > 0 {
			return cur, list[len(list)-1]
		}
		if opts.Local {
			break
		}
	}
	return nil, nil
}

func (c *Container) resolveOne(id Identifier, opts *ResolveOptions, ctx *resolutionContext) (any, error) {
	owner, reg := c.findRegistration(id, opts)
	if owner == nil {
		if opts.Optional {
			return opts.DefaultValue, nil
		}
		return nil, &NotRegisteredError{Ident: id, Path: pathEntries(ctx.tree, nil)}
	}

	ctx.tree.Stash()
	node := ctx.tree.AddNode(framePayload{container: owner, ident: id, opts: opts})
	defer restoreOrPanic(ctx.tree)

	if anc := ctx.tree.FindEqualAncestor(equalPayload); anc != nil {
		return nil, &CircularDependencyError{Ident: id, Path: pathEntries(ctx.tree, node)}
	}

	return c.buildFromRegistration(owner, reg, opts, ctx, node)
}

// resolveMultiple collects every registration under id, but - mirroring
// findRegistration's single-value walk - only from the first container in
// the chain (starting at c, then ancestors unless opts.Local) that has
// any. A container with its own registrations shadows its ancestors'
// entirely; their lists are never merged into the local one.
func (c *Container) resolveMultiple(id Identifier, opts *ResolveOptions, ctx *resolutionContext) (any, error) {
	var owner *Container
	for cur := c; cur != nil; cur = cur.Parent {
		if cur.regs.Has(id) {
			owner = cur
			break
		}
		if opts.Local {
			break
		}
	}

	if owner == nil {
		if opts.Optional {
			return []any{}, nil
		}
		return nil, &NotRegisteredError{Ident: id, Path: pathEntries(ctx.tree, nil)}
	}

	results := make([]any, 0)
	for _, reg := range owner.regs.Get(id) {
		v, err := c.resolveRegistrationAsFrame(owner, id, reg, opts, ctx)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

// resolveRegistrationAsFrame pushes a tree frame for (owner, id), checks
// for a cycle, and builds from reg - used by resolveMultiple, where every
// registration under id gets its own sibling frame instead of picking
// just one winner.
func (c *Container) resolveRegistrationAsFrame(owner *Container, id Identifier, reg *Registration, opts *ResolveOptions, ctx *resolutionContext) (any, error) {
	ctx.tree.Stash()
	node := ctx.tree.AddNode(framePayload{container: owner, ident: id, opts: opts})
	defer restoreOrPanic(ctx.tree)

	if anc := ctx.tree.FindEqualAncestor(equalPayload); anc != nil {
		return nil, &CircularDependencyError{Ident: id, Path: pathEntries(ctx.tree, node)}
	}

	return c.buildFromRegistration(owner, reg, opts, ctx, node)
}

// restoreOrPanic restores tree's Current to its Stash-ed value. A Restore
// with no matching Stash can only mean resolveOne/resolveRegistrationAsFrame
// mismatched their own push, not anything a caller did - that is an
// invariant violation worth failing loudly on rather than returning
// silently to a caller not expecting it.
func restoreOrPanic(tree *record.Tree) {
	if err := tree.Restore(); err != nil {
		panic(&UnbalancedRecordStackError{})
	}
}

func (c *Container) buildFromRegistration(owner *Container, reg *Registration, opts *ResolveOptions, ctx *resolutionContext, node *record.Node) (any, error) {
	switch reg.Life {
	case Singleton:
		if v, ok := reg.cached(); ok {
			return v, nil
		}
	case Resolution:
		if v, ok := ctx.cached(reg); ok {
			return v, nil
		}
	}

	instance, err := c.invokeProvider(owner, reg, opts, ctx)
	if err != nil {
		return nil, err
	}

	switch reg.Life {
	case Singleton:
		kept, first := reg.store(instance)
		if first {
			trackDisposable(owner.disposal, kept)
		}
		return kept, nil
	case Resolution:
		ctx.store(reg, instance)
		trackDisposable(ctx.disposal, instance)
		return instance, nil
	default:
		return instance, nil
	}
}

func (c *Container) invokeProvider(owner *Container, reg *Registration, opts *ResolveOptions, ctx *resolutionContext) (any, error) {
	switch p := reg.Prov.(type) {
	case ValueProvider:
		return p.Value, nil

	case ClassProvider:
		v, err := p.New(owner, opts)
		if err != nil {
			return nil, &FactoryError{Ident: reg.Ident, Path: pathEntries(ctx.tree, nil), Cause: err}
		}
		return v, nil

	case FactoryProvider:
		v, err := p.New(owner, opts)
		if err != nil {
			return nil, &FactoryError{Ident: reg.Ident, Path: pathEntries(ctx.tree, nil), Cause: err}
		}
		return v, nil

	case AliasProvider:
		target := owner
		if p.GetContainer != nil {
			if gc := p.GetContainer(); gc != nil {
				target = gc
			}
		}
		return target.resolveOne(p.Target, opts, ctx)

	default:
		return nil, &InvalidOptionsError{Reason: "registration has no recognized provider"}
	}
}
