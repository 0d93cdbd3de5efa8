// Package testing provides test utilities for pgmap.
package testing

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/zoobzio/pgmap"
)

// Call records one provider invocation.
type Call struct {
	Type         reflect.Type
	DataTypeName pgmap.DataTypeName
}

// Provider is a pgmap.Provider that records its calls and returns type
// info carrying a StubConverter. Safe for concurrent use.
type Provider struct {
	mu    sync.Mutex
	calls []Call
}

// NewProvider returns an empty recording provider.
func NewProvider() *Provider {
	return &Provider{}
}

// GetTypeInfo implements pgmap.Provider.
func (p *Provider) GetTypeInfo(t reflect.Type, name pgmap.DataTypeName) (*pgmap.TypeInfo, error) {
	p.mu.Lock()
	p.calls = append(p.calls, Call{Type: t, DataTypeName: name})
	p.mu.Unlock()

	return &pgmap.TypeInfo{
		Type:         t,
		DataTypeName: name,
		Converter:    StubConverter{Type: t, DataTypeName: name},
	}, nil
}

// Calls returns a copy of the recorded calls.
func (p *Provider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Call, len(p.calls))
	copy(out, p.calls)
	return out
}

// StubConverter is a pgmap.Converter that echoes bytes. It is comparable,
// so type infos built for the same pair compare equal.
type StubConverter struct {
	Type         reflect.Type
	DataTypeName pgmap.DataTypeName
}

// Read returns data unchanged.
func (StubConverter) Read(data []byte) (any, error) { return data, nil }

// Write returns v when it is a byte slice, nil otherwise.
func (StubConverter) Write(v any) ([]byte, error) {
	b, _ := v.([]byte)
	return b, nil
}

// CountBuilds wraps a registration function and counts its invocations.
// A resolver invokes it once per registry build.
func CountBuilds(add func(*pgmap.Mappings)) (func(*pgmap.Mappings), *atomic.Int64) {
	var n atomic.Int64
	return func(ms *pgmap.Mappings) {
		n.Add(1)
		add(ms)
	}, &n
}

// DateTimeMappings registers date (name required) and time (default).
func DateTimeMappings(ms *pgmap.Mappings) {
	pgmap.AddType[DateValue](ms, pgmap.Date, pgmap.WithMatchRequirement(pgmap.MatchDataTypeName))
	pgmap.AddType[TimeValue](ms, pgmap.Time, pgmap.AsDefault())
}

// DateValue stands in for a date runtime type.
type DateValue struct{ Days int32 }

// TimeValue stands in for a time-of-day runtime type.
type TimeValue struct{ Microseconds int64 }
