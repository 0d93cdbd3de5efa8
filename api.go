// Package pgmap resolves which codec handles a runtime type and/or a
// PostgreSQL data type name.
//
// The package offers an ordered mapping registry (Mappings), lazily built
// resolvers over it (MappingResolver), and factories that produce one
// resolver per shape family of a base type.
//
// # Shape Families
//
// A base value kind appears on the wire in several shapes:
//
//   - scalar: pg_catalog.date
//   - array: pg_catalog._date
//   - range: pg_catalog.daterange
//   - range array: pg_catalog._daterange
//   - multirange: pg_catalog.datemultirange
//   - multirange array: pg_catalog._datemultirange
//
// Array families copy the registry of their base family and append the
// array mappings, so an array resolver answers everything its base resolver
// answers.
//
// # Matching
//
// Each Mapping carries a MatchRequirement and a default flag:
//
//	MatchAny           - a runtime type match alone is enough
//	MatchDataTypeName  - the data type name must be supplied and equal
//
// A name-only lookup picks the single mapping registered under the name, or
// the default one when several share it. A type-only lookup picks the
// default MatchAny mapping for the type, else the first registered.
//
// # Basic Usage
//
//	factory := pgmap.LegacyDateTime()
//	res := factory.CreateResolver()
//
//	info, err := res.GetTypeInfo(pgmap.Object, pgmap.Date, provider)
//	if info == nil && err == nil {
//	    // not handled, try the next resolver
//	}
//
// Resolvers for several families combine with Chain:
//
//	chain, _ := pgmap.NewChain(factory, pgmap.DefaultConfig())
//	info, err := chain.Resolve(pgmap.Object, "", provider)
//
// # Codec Providers
//
// The following codec implementations export mapping snapshots:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
package pgmap

import "reflect"

// Object is the wildcard runtime type. Legacy resolvers only engage for
// lookups made with it.
var Object = reflect.TypeFor[any]()

// Converter reads and writes values of one runtime type in one data type.
// Implementations belong to the provider.
type Converter interface {
	// Read decodes a wire value.
	Read(data []byte) (any, error)

	// Write encodes v for the wire.
	Write(v any) ([]byte, error)
}

// TypeInfo binds a runtime type to the data type name it was resolved for
// and the converter that handles the pair.
type TypeInfo struct {
	Type         reflect.Type
	DataTypeName DataTypeName
	Converter    Converter
}

// Provider constructs type info for a concrete (type, name) pair.
// It is the serializer side collaborator invoked by mapping factories.
type Provider interface {
	GetTypeInfo(t reflect.Type, name DataTypeName) (*TypeInfo, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(t reflect.Type, name DataTypeName) (*TypeInfo, error)

// GetTypeInfo calls f(t, name).
func (f ProviderFunc) GetTypeInfo(t reflect.Type, name DataTypeName) (*TypeInfo, error) {
	return f(t, name)
}

// Resolver answers type info lookups.
//
// GetTypeInfo returns (nil, nil) when the resolver does not handle the
// lookup; callers then try the next resolver. An error is a configuration
// failure and must not be treated as a decline.
type Resolver interface {
	GetTypeInfo(t reflect.Type, name DataTypeName, p Provider) (*TypeInfo, error)
}

// ResolverFactory produces one resolver per shape family. Every call
// returns a new resolver with its own lazily built registry.
type ResolverFactory interface {
	CreateResolver() Resolver
	CreateArrayResolver() Resolver
	CreateRangeResolver() Resolver
	CreateRangeArrayResolver() Resolver
	CreateMultirangeResolver() Resolver
	CreateMultirangeArrayResolver() Resolver
}
