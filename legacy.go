package pgmap

import "time"

// LegacyDateTime returns the factory for the legacy date and time
// mappings: date as time.Time, time as time.Duration, and the date range
// and multirange shapes over time.Time.
//
// The resolvers only engage for lookups made with Object. Date mappings
// require the data type name; time of day is the default for name-less
// lookups.
func LegacyDateTime() ResolverFactory {
	return legacyDateTime{}
}

type legacyDateTime struct{}

func (legacyDateTime) CreateResolver() Resolver {
	return newLegacyScalarResolver()
}

func (legacyDateTime) CreateArrayResolver() Resolver {
	return NewDerivedResolver(FamilyArray, newLegacyScalarResolver(), addLegacyArrays)
}

func (legacyDateTime) CreateRangeResolver() Resolver {
	return newLegacyRangeResolver()
}

func (legacyDateTime) CreateRangeArrayResolver() Resolver {
	return NewDerivedResolver(FamilyRangeArray, newLegacyRangeResolver(), addLegacyRangeArrays)
}

func (legacyDateTime) CreateMultirangeResolver() Resolver {
	return newLegacyMultirangeResolver()
}

func (legacyDateTime) CreateMultirangeArrayResolver() Resolver {
	return NewDerivedResolver(FamilyMultirangeArray, newLegacyMultirangeResolver(), addLegacyMultirangeArrays)
}

func newLegacyScalarResolver() *MappingResolver {
	return NewResolver(FamilyScalar, addLegacyScalars, RequireDefault())
}

func newLegacyRangeResolver() *MappingResolver {
	return NewResolver(FamilyRange, addLegacyRanges)
}

func newLegacyMultirangeResolver() *MappingResolver {
	return NewResolver(FamilyMultirange, addLegacyMultiranges)
}

func addLegacyScalars(ms *Mappings) {
	AddType[time.Time](ms, Date, WithMatchRequirement(MatchDataTypeName))
	AddType[time.Duration](ms, Time, AsDefault())
}

func addLegacyArrays(ms *Mappings) {
	AddArrayType[time.Time](ms, Date)
	AddArrayType[time.Duration](ms, Time)
}

func addLegacyRanges(ms *Mappings) {
	AddType[Range[time.Time]](ms, DateRange, WithMatchRequirement(MatchDataTypeName))
}

func addLegacyRangeArrays(ms *Mappings) {
	AddArrayType[Range[time.Time]](ms, DateRange)
}

// A multirange is a slice of ranges at the type level but has its own
// data type name.
func addLegacyMultiranges(ms *Mappings) {
	AddType[[]Range[time.Time]](ms, DateMultirange, WithMatchRequirement(MatchDataTypeName))
}

func addLegacyMultirangeArrays(ms *Mappings) {
	AddArrayType[[]Range[time.Time]](ms, DateMultirange)
}
