package pgmap

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"time"
)

// MappingResolver resolves lookups against a registry built on first use.
//
// The registry is built exactly once, even under concurrent first calls,
// and is read-only afterwards. A failed build is memoized as well: every
// later call reports the same error.
type MappingResolver struct {
	family         Family
	accept         reflect.Type
	requireDefault bool
	build          func() (*Mappings, error)

	buildOnce sync.Once
	mappings  *Mappings
	buildErr  error
}

// ResolverOption configures a MappingResolver.
type ResolverOption func(*MappingResolver)

// RequireDefault makes the build fail unless the registry has a default
// MatchAny mapping.
func RequireDefault() ResolverOption {
	return func(r *MappingResolver) { r.requireDefault = true }
}

// Accept replaces the runtime type the resolver engages for (Object).
func Accept(t reflect.Type) ResolverOption {
	return func(r *MappingResolver) { r.accept = t }
}

// NewResolver returns a resolver whose registry is a fresh collection
// populated by add.
func NewResolver(family Family, add func(*Mappings), opts ...ResolverOption) *MappingResolver {
	r := newMappingResolver(family, opts)
	r.build = func() (*Mappings, error) {
		ms := NewMappings()
		add(ms)
		return ms, nil
	}
	return r
}

// NewDerivedResolver returns a resolver whose registry is a copy of
// parent's built registry with the mappings from add appended.
func NewDerivedResolver(family Family, parent *MappingResolver, add func(*Mappings), opts ...ResolverOption) *MappingResolver {
	r := newMappingResolver(family, opts)
	r.build = func() (*Mappings, error) {
		base, err := parent.Mappings()
		if err != nil {
			return nil, err
		}
		ms := base.Clone()
		add(ms)
		return ms, nil
	}
	return r
}

func newMappingResolver(family Family, opts []ResolverOption) *MappingResolver {
	r := &MappingResolver{family: family, accept: Object}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Family returns the shape family the resolver serves.
func (r *MappingResolver) Family() Family {
	return r.family
}

// Mappings returns the built registry, building it on first call.
// The build event is emitted by the building caller after the registry is
// published, so listeners may resolve through r.
func (r *MappingResolver) Mappings() (*Mappings, error) {
	var (
		built    bool
		duration time.Duration
	)
	r.buildOnce.Do(func() {
		built = true
		start := time.Now()
		ms, err := r.runBuild()
		if err == nil {
			err = ms.Validate(r.requireDefault)
		}
		duration = time.Since(start)
		if err != nil {
			var be *BuildError
			if !errors.As(err, &be) {
				err = &BuildError{Family: r.family, Err: err}
			}
			r.buildErr = err
			return
		}
		r.mappings = ms
	})
	if built {
		emitMappingsBuilt(context.Background(), r.family, r.mappings.Len(), duration, r.buildErr)
	}
	return r.mappings, r.buildErr
}

// runBuild converts registration panics into errors.
func (r *MappingResolver) runBuild() (ms *Mappings, err error) {
	defer func() {
		if p := recover(); p != nil {
			perr, ok := p.(error)
			if !ok || !isRegistrationError(perr) {
				panic(p)
			}
			ms, err = nil, perr
		}
	}()
	return r.build()
}

// Validate forces the registry build and reports its error.
func (r *MappingResolver) Validate() error {
	_, err := r.Mappings()
	return err
}

// Lookup returns the mapping a GetTypeInfo call would build, without
// building it.
func (r *MappingResolver) Lookup(t reflect.Type, name DataTypeName) (Mapping, bool, error) {
	if t != r.accept {
		return Mapping{}, false, nil
	}
	ms, err := r.Mappings()
	if err != nil {
		return Mapping{}, false, err
	}
	return ms.Find(t, name)
}

// GetTypeInfo resolves t and name. Lookups with a runtime type other than
// the accepted one are declined with (nil, nil).
func (r *MappingResolver) GetTypeInfo(t reflect.Type, name DataTypeName, p Provider) (*TypeInfo, error) {
	m, ok, err := r.Lookup(t, name)
	if err != nil || !ok {
		return nil, err
	}
	return m.Build(p, t)
}
