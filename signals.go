package pgmap

import (
	"context"
	"reflect"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for registry events.
var (
	SignalMappingsBuilt      = capitan.NewSignal("pgmap.mappings.built", "Mapping registry built")
	SignalResolveUnsupported = capitan.NewSignal("pgmap.resolve.unsupported", "No resolver handled the lookup")
)

// Keys for typed event data.
var (
	KeyFamily       = capitan.NewStringKey("family")
	KeyTypeName     = capitan.NewStringKey("type_name")
	KeyDataTypeName = capitan.NewStringKey("data_type_name")
	KeyCount        = capitan.NewIntKey("count")
	KeyDuration     = capitan.NewDurationKey("duration")
	KeyError        = capitan.NewErrorKey("error")
)

// emitMappingsBuilt emits an event when a resolver finishes its build.
func emitMappingsBuilt(ctx context.Context, family Family, count int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyFamily.Field(family.String()),
		KeyCount.Field(count),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalMappingsBuilt, fields...)
	} else {
		capitan.Emit(ctx, SignalMappingsBuilt, fields...)
	}
}

// emitResolveUnsupported emits an event when a chain exhausts its resolvers.
func emitResolveUnsupported(ctx context.Context, t reflect.Type, name DataTypeName) {
	typeName := ""
	if t != nil {
		typeName = t.String()
	}
	capitan.Emit(ctx, SignalResolveUnsupported,
		KeyTypeName.Field(typeName),
		KeyDataTypeName.Field(name.String()),
	)
}
