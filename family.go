package pgmap

import (
	"fmt"
	"strings"
)

// Family is a structural shape of a base value kind.
type Family uint8

const (
	FamilyScalar Family = iota
	FamilyArray
	FamilyRange
	FamilyRangeArray
	FamilyMultirange
	FamilyMultirangeArray
)

var familyNames = [...]string{
	FamilyScalar:          "scalar",
	FamilyArray:           "array",
	FamilyRange:           "range",
	FamilyRangeArray:      "rangearray",
	FamilyMultirange:      "multirange",
	FamilyMultirangeArray: "multirangearray",
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return fmt.Sprintf("Family(%d)", uint8(f))
}

// ParseFamily parses a family name, ignoring case and surrounding space.
func ParseFamily(s string) (Family, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range familyNames {
		if name == s {
			return Family(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownFamily, s)
}

// Families returns every family in resolution order.
func Families() []Family {
	return []Family{
		FamilyScalar,
		FamilyArray,
		FamilyRange,
		FamilyRangeArray,
		FamilyMultirange,
		FamilyMultirangeArray,
	}
}

// ResolverFor returns the resolver f creates for family.
func ResolverFor(f ResolverFactory, family Family) (Resolver, error) {
	switch family {
	case FamilyScalar:
		return f.CreateResolver(), nil
	case FamilyArray:
		return f.CreateArrayResolver(), nil
	case FamilyRange:
		return f.CreateRangeResolver(), nil
	case FamilyRangeArray:
		return f.CreateRangeArrayResolver(), nil
	case FamilyMultirange:
		return f.CreateMultirangeResolver(), nil
	case FamilyMultirangeArray:
		return f.CreateMultirangeArrayResolver(), nil
	default:
		return nil, fmt.Errorf("%w %s", ErrUnknownFamily, family)
	}
}
