package pgmap

import (
	"fmt"
	"reflect"
)

// Mappings is an append-only ordered collection of Mapping. The zero value
// is an empty collection ready for use.
//
// Registration is not safe for concurrent use. Resolvers only publish a
// collection once it is fully built, after which it is read-only and safe
// for concurrent Find calls.
type Mappings struct {
	items    []Mapping
	defaults map[DataTypeName]int // index of the default mapping per name
}

// NewMappings returns an empty collection.
func NewMappings() *Mappings {
	return &Mappings{defaults: make(map[DataTypeName]int)}
}

// Clone returns an independent copy. Child families clone their parent's
// built collection and append to the copy.
func (ms *Mappings) Clone() *Mappings {
	c := &Mappings{
		items:    make([]Mapping, len(ms.items)),
		defaults: make(map[DataTypeName]int, len(ms.defaults)),
	}
	copy(c.items, ms.items)
	for name, i := range ms.defaults {
		c.defaults[name] = i
	}
	return c
}

// Add appends m.
//
// Add panics on malformed mappings and on a second default for the same
// data type name; both are registration bugs.
func (ms *Mappings) Add(m Mapping) {
	if err := m.validate(); err != nil {
		panic(err)
	}
	if m.IsDefault {
		if ms.defaults == nil {
			ms.defaults = make(map[DataTypeName]int)
		}
		if _, exists := ms.defaults[m.DataTypeName]; exists {
			panic(&AmbiguousMappingError{
				Name:     m.DataTypeName,
				Count:    ms.count(m.DataTypeName) + 1,
				Defaults: 2,
			})
		}
		ms.defaults[m.DataTypeName] = len(ms.items)
	}
	ms.items = append(ms.items, m)
}

// AddType registers T under name. The factory forwards to the provider
// with T unless WithFactory overrides it.
func AddType[T any](ms *Mappings, name DataTypeName, opts ...MappingOption) Mapping {
	t := reflect.TypeFor[T]()
	m := Mapping{
		Type:         t,
		DataTypeName: name,
		Factory:      Forward(t),
	}
	for _, opt := range opts {
		opt(&m)
	}
	ms.Add(m)
	return m
}

// AddArrayType registers []T under the array name of elementName.
// The element mapping (T under elementName) must already be registered;
// its match requirement and default flag carry over to the array mapping.
func AddArrayType[T any](ms *Mappings, elementName DataTypeName) Mapping {
	et := reflect.TypeFor[T]()
	elem, ok := ms.lookup(et, elementName)
	if !ok {
		panic(invalidMapping("no element mapping %s (%q) for array", et, elementName))
	}

	t := reflect.SliceOf(et)
	m := Mapping{
		Type:             t,
		DataTypeName:     elementName.ToArrayName(),
		MatchRequirement: elem.MatchRequirement,
		IsDefault:        elem.IsDefault,
		Factory:          Forward(t),
	}
	ms.Add(m)
	return m
}

// Find returns the mapping selected by t and name.
//
//   - neither given: not found.
//   - name given, t nil or Object: the mapping registered under name, or
//     the default when several share it.
//   - only t given: the MatchAny mapping for t; a default wins over
//     insertion order.
//   - both given: the first mapping of type t that is MatchAny or
//     registered under name.
//
// The error is non-nil only for a name shared by several mappings without
// a default, which Validate rejects up front.
func (ms *Mappings) Find(t reflect.Type, name DataTypeName) (Mapping, bool, error) {
	switch {
	case name != "" && (t == nil || t == Object):
		return ms.findByName(name)
	case name == "" && t != nil:
		m, ok := ms.findByType(t)
		return m, ok, nil
	case name != "" && t != nil:
		for _, m := range ms.items {
			if m.Type == t && (m.MatchRequirement == MatchAny || m.DataTypeName == name) {
				return m, true, nil
			}
		}
	}
	return Mapping{}, false, nil
}

func (ms *Mappings) findByName(name DataTypeName) (Mapping, bool, error) {
	if i, ok := ms.defaults[name]; ok {
		return ms.items[i], true, nil
	}
	var (
		found Mapping
		count int
	)
	for _, m := range ms.items {
		if m.DataTypeName == name {
			if count == 0 {
				found = m
			}
			count++
		}
	}
	switch count {
	case 0:
		return Mapping{}, false, nil
	case 1:
		return found, true, nil
	default:
		return Mapping{}, false, &AmbiguousMappingError{Name: name, Count: count}
	}
}

func (ms *Mappings) findByType(t reflect.Type) (Mapping, bool) {
	var (
		first Mapping
		found bool
	)
	for _, m := range ms.items {
		if m.MatchRequirement != MatchAny || !m.matchesType(t) {
			continue
		}
		if m.IsDefault {
			return m, true
		}
		if !found {
			first, found = m, true
		}
	}
	return first, found
}

// lookup returns the mapping registered with exactly t and name.
func (ms *Mappings) lookup(t reflect.Type, name DataTypeName) (Mapping, bool) {
	for _, m := range ms.items {
		if m.Type == t && m.DataTypeName == name {
			return m, true
		}
	}
	return Mapping{}, false
}

func (ms *Mappings) count(name DataTypeName) int {
	n := 0
	for _, m := range ms.items {
		if m.DataTypeName == name {
			n++
		}
	}
	return n
}

// Validate checks that every data type name resolves to a single mapping.
// With requireDefault it also requires exactly one default MatchAny
// mapping, the answer to lookups without a name.
func (ms *Mappings) Validate(requireDefault bool) error {
	seen := make(map[DataTypeName]bool)
	for _, m := range ms.items {
		if seen[m.DataTypeName] {
			continue
		}
		seen[m.DataTypeName] = true
		if n := ms.count(m.DataTypeName); n > 1 {
			if _, ok := ms.defaults[m.DataTypeName]; !ok {
				return &AmbiguousMappingError{Name: m.DataTypeName, Count: n}
			}
		}
	}

	if !requireDefault {
		return nil
	}
	n := 0
	for _, i := range ms.defaults {
		if ms.items[i].MatchRequirement == MatchAny {
			n++
		}
	}
	switch {
	case n == 0:
		return fmt.Errorf("%w among %d mappings", ErrNoDefaultMapping, len(ms.items))
	case n > 1:
		return fmt.Errorf("%w: %d defaults match any type", ErrAmbiguousMapping, n)
	}
	return nil
}

// Entries returns a snapshot of the mappings in insertion order.
func (ms *Mappings) Entries() []Mapping {
	out := make([]Mapping, len(ms.items))
	copy(out, ms.items)
	return out
}

// Len returns the number of mappings. A nil collection is empty.
func (ms *Mappings) Len() int {
	if ms == nil {
		return 0
	}
	return len(ms.items)
}
