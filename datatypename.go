package pgmap

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DataTypeName is a schema-qualified PostgreSQL data type name such as
// "pg_catalog.date". Equality is exact string equality.
type DataTypeName string

// Built-in temporal data type names.
const (
	Date           DataTypeName = "pg_catalog.date"
	Time           DataTypeName = "pg_catalog.time"
	DateRange      DataTypeName = "pg_catalog.daterange"
	DateMultirange DataTypeName = "pg_catalog.datemultirange"
)

// arrayPrefix marks array types in the catalog ("_date" is date[]).
const arrayPrefix = "_"

// maxIdentifierLen is the catalog's identifier limit in bytes (NAMEDATALEN-1).
const maxIdentifierLen = 63

// Validate checks the name is "schema.name" with both parts non-empty.
func (n DataTypeName) Validate() error {
	schema, name, ok := strings.Cut(string(n), ".")
	if !ok || schema == "" || name == "" {
		return fmt.Errorf("%w: %q", ErrInvalidDataTypeName, string(n))
	}
	return nil
}

// Schema returns the schema part, or "" for an unqualified name.
func (n DataTypeName) Schema() string {
	schema, _, ok := strings.Cut(string(n), ".")
	if !ok {
		return ""
	}
	return schema
}

// UnqualifiedName returns the name without its schema.
func (n DataTypeName) UnqualifiedName() string {
	_, name, ok := strings.Cut(string(n), ".")
	if !ok {
		return string(n)
	}
	return name
}

// IsArray reports whether n names an array type.
func (n DataTypeName) IsArray() bool {
	return strings.HasPrefix(n.UnqualifiedName(), arrayPrefix)
}

// ToArrayName returns the name of the array type whose elements are n.
// An array name is returned unchanged. The unqualified array name is cut to
// the catalog identifier limit, never inside a multi-byte character.
func (n DataTypeName) ToArrayName() DataTypeName {
	if n.IsArray() {
		return n
	}
	return DataTypeName(n.Schema() + "." + truncateIdentifier(arrayPrefix+n.UnqualifiedName()))
}

func truncateIdentifier(s string) string {
	if len(s) <= maxIdentifierLen {
		return s
	}
	cut := maxIdentifierLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// ElementName returns the element type name of an array type name,
// or n itself when n is not an array.
func (n DataTypeName) ElementName() DataTypeName {
	if !n.IsArray() {
		return n
	}
	return DataTypeName(n.Schema() + "." + strings.TrimPrefix(n.UnqualifiedName(), arrayPrefix))
}

func (n DataTypeName) String() string {
	return string(n)
}
