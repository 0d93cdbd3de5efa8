package pgmap

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// ChainResolver tries resolvers in order until one handles the lookup.
// It is immutable and safe for concurrent use when its resolvers are.
type ChainResolver struct {
	resolvers []Resolver
}

// Chain returns a resolver trying the given resolvers in order.
// Nil resolvers are ignored.
func Chain(resolvers ...Resolver) *ChainResolver {
	out := make([]Resolver, 0, len(resolvers))
	for _, r := range resolvers {
		if r != nil {
			out = append(out, r)
		}
	}
	return &ChainResolver{resolvers: out}
}

// NewChain chains the resolvers f creates for the families enabled in cfg.
// With cfg.Validate every registry is built before returning.
func NewChain(f ResolverFactory, cfg Config) (*ChainResolver, error) {
	families, err := cfg.ParseFamilies()
	if err != nil {
		return nil, err
	}
	resolvers := make([]Resolver, 0, len(families))
	for _, family := range families {
		r, err := ResolverFor(f, family)
		if err != nil {
			return nil, err
		}
		resolvers = append(resolvers, r)
	}
	c := Chain(resolvers...)
	if cfg.Validate {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// GetTypeInfo returns the first non-nil result, or (nil, nil) when every
// resolver declines. The first error stops the chain.
func (c *ChainResolver) GetTypeInfo(t reflect.Type, name DataTypeName, p Provider) (*TypeInfo, error) {
	for _, r := range c.resolvers {
		info, err := r.GetTypeInfo(t, name, p)
		if err != nil {
			return nil, err
		}
		if info != nil {
			return info, nil
		}
	}
	return nil, nil
}

// Resolve is GetTypeInfo for the serialization boundary: a lookup no
// resolver handles is reported as an *UnsupportedTypeError.
func (c *ChainResolver) Resolve(t reflect.Type, name DataTypeName, p Provider) (*TypeInfo, error) {
	info, err := c.GetTypeInfo(t, name, p)
	if err != nil {
		return nil, err
	}
	if info == nil {
		emitResolveUnsupported(context.Background(), t, name)
		return nil, &UnsupportedTypeError{Type: t, DataTypeName: name}
	}
	return info, nil
}

// Validate builds the registry of every chained resolver that has one
// and joins the errors.
func (c *ChainResolver) Validate() error {
	var errs []error
	for _, r := range c.resolvers {
		if v, ok := r.(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of chained resolvers.
func (c *ChainResolver) Len() int {
	return len(c.resolvers)
}

// ValidateFactory builds the registries of every family f produces, so
// registration bugs surface at startup instead of on first lookup.
func ValidateFactory(f ResolverFactory) error {
	var errs []error
	for _, family := range Families() {
		r, err := ResolverFor(f, family)
		if err != nil {
			return err
		}
		v, ok := r.(interface{ Validate() error })
		if !ok {
			continue
		}
		if err := v.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", family, err))
		}
	}
	return errors.Join(errs...)
}
