package di

// CurrentContainer returns the container whose frame is nearest on the
// ambient resolution record's current path - the container a running
// factory was actually resolved against, for factory code that was not
// written to take its own *Container parameter. It returns
// NoActiveContextError if called with no Resolve in flight anywhere in
// the process, or NoContainerInContextError if a resolution is in
// flight but the current path carries no container frame (record
// corruption).
func CurrentContainer() (*Container, error) {
	ambient.mu.Lock()
	ctx := ambient.ctx
	ambient.mu.Unlock()

	if ctx == nil {
		return nil, &NoActiveContextError{}
	}

	for n := ctx.tree.Current(); n != nil; n = n.Parent {
		if fp, ok := n.Payload.(framePayload); ok && fp.container != nil {
			return fp.container, nil
		}
	}
	return nil, &NoContainerInContextError{}
}

// AmbientResolve resolves id against CurrentContainer(), for factory code
// that wants to pull an additional dependency without threading its own
// *Container parameter through. Prefer taking a *Container parameter
// directly (every ClassProvider and FactoryProvider constructor already
// receives one) - this exists for the cases the corpus itself has, where
// a constructor built for direct use also needs to behave as a plain
// function callable outside any container at all, which AmbientResolve
// must then reject with NoActiveContextError rather than panic.
func AmbientResolve(id Identifier, opts *ResolveOptions) (any, error) {
	c, err := CurrentContainer()
	if err != nil {
		return nil, err
	}
	return c.Resolve(id, opts)
}
