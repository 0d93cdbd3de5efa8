package pgmap

import (
	"fmt"
	"reflect"
)

// MatchRequirement controls whether a runtime type match alone selects a
// mapping.
type MatchRequirement uint8

const (
	// MatchAny selects the mapping on a runtime type match.
	MatchAny MatchRequirement = iota

	// MatchDataTypeName also requires the data type name to be supplied
	// and equal.
	MatchDataTypeName
)

func (r MatchRequirement) String() string {
	switch r {
	case MatchAny:
		return "any"
	case MatchDataTypeName:
		return "datatypename"
	default:
		return fmt.Sprintf("MatchRequirement(%d)", uint8(r))
	}
}

// TypeInfoFactory builds type info for a matched mapping. The mapping
// carries the data type name actually bound, so one factory can serve
// several names. requested is the runtime type of the lookup.
type TypeInfoFactory func(p Provider, m Mapping, requested reflect.Type) (*TypeInfo, error)

// Mapping associates a runtime type with a data type name.
// Mappings are values and never change once added to a registry.
type Mapping struct {
	Type             reflect.Type
	DataTypeName     DataTypeName
	MatchRequirement MatchRequirement
	IsDefault        bool
	Factory          TypeInfoFactory
}

// Build invokes the mapping factory for the requested runtime type.
func (m Mapping) Build(p Provider, requested reflect.Type) (*TypeInfo, error) {
	if p == nil {
		return nil, ErrNilProvider
	}
	return m.Factory(p, m, requested)
}

// matchesType reports whether t selects this mapping. Object matches all.
func (m Mapping) matchesType(t reflect.Type) bool {
	return t == Object || m.Type == t
}

func (m Mapping) validate() error {
	if m.Type == nil {
		return invalidMapping("nil type for %q", m.DataTypeName)
	}
	if m.Factory == nil {
		return invalidMapping("nil factory for %s (%q)", m.Type, m.DataTypeName)
	}
	return m.DataTypeName.Validate()
}

// MappingOption configures a Mapping during registration.
type MappingOption func(*Mapping)

// WithMatchRequirement sets the mapping's match requirement.
func WithMatchRequirement(r MatchRequirement) MappingOption {
	return func(m *Mapping) { m.MatchRequirement = r }
}

// AsDefault marks the mapping as the default for its data type name.
func AsDefault() MappingOption {
	return func(m *Mapping) { m.IsDefault = true }
}

// WithFactory replaces the forwarding factory.
func WithFactory(f TypeInfoFactory) MappingOption {
	return func(m *Mapping) { m.Factory = f }
}

// Forward returns a factory asking the provider for t under the bound
// data type name.
func Forward(t reflect.Type) TypeInfoFactory {
	return func(p Provider, m Mapping, _ reflect.Type) (*TypeInfo, error) {
		return p.GetTypeInfo(t, m.DataTypeName)
	}
}
