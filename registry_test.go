package pgmap_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/pgmap"
	pgmaptest "github.com/zoobzio/pgmap/testing"
)

type (
	dateValue = pgmaptest.DateValue
	timeValue = pgmaptest.TimeValue
)

var (
	dateType = reflect.TypeFor[dateValue]()
	timeType = reflect.TypeFor[timeValue]()
)

func dateTimeMappings() *pgmap.Mappings {
	ms := pgmap.NewMappings()
	pgmaptest.DateTimeMappings(ms)
	return ms
}

func TestMappings_Find(t *testing.T) {
	ms := dateTimeMappings()

	tests := []struct {
		name     string
		typ      reflect.Type
		dtn      pgmap.DataTypeName
		wantOK   bool
		wantName pgmap.DataTypeName
	}{
		{name: "name only", dtn: pgmap.Date, wantOK: true, wantName: pgmap.Date},
		{name: "wildcard and name", typ: pgmap.Object, dtn: pgmap.Time, wantOK: true, wantName: pgmap.Time},
		{name: "unknown name", dtn: "pg_catalog.unknown"},
		{name: "wildcard only picks default", typ: pgmap.Object, wantOK: true, wantName: pgmap.Time},
		{name: "type only any match", typ: timeType, wantOK: true, wantName: pgmap.Time},
		{name: "type only requires name", typ: dateType},
		{name: "type and matching name", typ: dateType, dtn: pgmap.Date, wantOK: true, wantName: pgmap.Date},
		{name: "type and other name", typ: dateType, dtn: pgmap.Time},
		{name: "any match ignores name", typ: timeType, dtn: "pg_catalog.interval", wantOK: true, wantName: pgmap.Time},
		{name: "neither"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok, err := ms.Find(tt.typ, tt.dtn)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantName, m.DataTypeName)
			}
		})
	}
}

func TestMappings_FindByNamePrefersDefault(t *testing.T) {
	ms := pgmap.NewMappings()
	pgmap.AddType[int32](ms, "pg_catalog.int4")
	pgmap.AddType[int64](ms, "pg_catalog.int4", pgmap.AsDefault())
	pgmap.AddType[int](ms, "pg_catalog.int4")

	m, ok, err := ms.Find(nil, "pg_catalog.int4")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[int64](), m.Type)
}

func TestMappings_FindByTypeTieBreak(t *testing.T) {
	t.Run("first inserted", func(t *testing.T) {
		ms := pgmap.NewMappings()
		pgmap.AddType[int32](ms, "pg_catalog.int4")
		pgmap.AddType[int32](ms, "pg_catalog.int8")

		m, ok, err := ms.Find(reflect.TypeFor[int32](), "")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, pgmap.DataTypeName("pg_catalog.int4"), m.DataTypeName)
	})

	t.Run("default wins", func(t *testing.T) {
		ms := pgmap.NewMappings()
		pgmap.AddType[int32](ms, "pg_catalog.int4")
		pgmap.AddType[int32](ms, "pg_catalog.int8", pgmap.AsDefault())

		m, ok, err := ms.Find(reflect.TypeFor[int32](), "")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, pgmap.DataTypeName("pg_catalog.int8"), m.DataTypeName)
	})
}

func TestMappings_FindAmbiguous(t *testing.T) {
	ms := pgmap.NewMappings()
	pgmap.AddType[int32](ms, "pg_catalog.int4")
	pgmap.AddType[int64](ms, "pg_catalog.int4")

	_, ok, err := ms.Find(nil, "pg_catalog.int4")
	assert.False(t, ok)
	require.ErrorIs(t, err, pgmap.ErrAmbiguousMapping)

	var ae *pgmap.AmbiguousMappingError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, 2, ae.Count)
}

func TestMappings_AddPanics(t *testing.T) {
	tests := []struct {
		name string
		add  func(ms *pgmap.Mappings)
		want error
	}{
		{
			name: "second default",
			add: func(ms *pgmap.Mappings) {
				pgmap.AddType[int32](ms, "pg_catalog.int4", pgmap.AsDefault())
				pgmap.AddType[int64](ms, "pg_catalog.int4", pgmap.AsDefault())
			},
			want: pgmap.ErrAmbiguousMapping,
		},
		{
			name: "nil factory",
			add: func(ms *pgmap.Mappings) {
				pgmap.AddType[int32](ms, "pg_catalog.int4", pgmap.WithFactory(nil))
			},
			want: pgmap.ErrInvalidMapping,
		},
		{
			name: "nil type",
			add: func(ms *pgmap.Mappings) {
				ms.Add(pgmap.Mapping{DataTypeName: "pg_catalog.int4", Factory: pgmap.Forward(nil)})
			},
			want: pgmap.ErrInvalidMapping,
		},
		{
			name: "unqualified name",
			add: func(ms *pgmap.Mappings) {
				pgmap.AddType[int32](ms, "int4")
			},
			want: pgmap.ErrInvalidDataTypeName,
		},
		{
			name: "array without element",
			add: func(ms *pgmap.Mappings) {
				pgmap.AddArrayType[int32](ms, "pg_catalog.int4")
			},
			want: pgmap.ErrInvalidMapping,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var recovered any
			func() {
				defer func() { recovered = recover() }()
				tt.add(pgmap.NewMappings())
			}()
			err, ok := recovered.(error)
			require.True(t, ok, "expected an error panic, got %v", recovered)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMappings_AddArrayType(t *testing.T) {
	ms := dateTimeMappings()
	dates := pgmap.AddArrayType[dateValue](ms, pgmap.Date)
	times := pgmap.AddArrayType[timeValue](ms, pgmap.Time)

	assert.Equal(t, reflect.TypeFor[[]dateValue](), dates.Type)
	assert.Equal(t, pgmap.DataTypeName("pg_catalog._date"), dates.DataTypeName)
	assert.Equal(t, pgmap.MatchDataTypeName, dates.MatchRequirement)
	assert.False(t, dates.IsDefault)

	assert.Equal(t, pgmap.DataTypeName("pg_catalog._time"), times.DataTypeName)
	assert.Equal(t, pgmap.MatchAny, times.MatchRequirement)
	assert.True(t, times.IsDefault)

	assert.Equal(t, 4, ms.Len())
	require.NoError(t, ms.Validate(false))
	assert.ErrorIs(t, ms.Validate(true), pgmap.ErrAmbiguousMapping)
}

func TestMappings_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, dateTimeMappings().Validate(true))
	})

	t.Run("shared name without default", func(t *testing.T) {
		ms := pgmap.NewMappings()
		pgmap.AddType[int32](ms, "pg_catalog.int4")
		pgmap.AddType[int64](ms, "pg_catalog.int4")
		assert.ErrorIs(t, ms.Validate(false), pgmap.ErrAmbiguousMapping)
	})

	t.Run("missing default", func(t *testing.T) {
		ms := pgmap.NewMappings()
		pgmap.AddType[dateValue](ms, pgmap.Date, pgmap.WithMatchRequirement(pgmap.MatchDataTypeName))
		pgmap.AddType[timeValue](ms, pgmap.Time)
		require.NoError(t, ms.Validate(false))
		assert.ErrorIs(t, ms.Validate(true), pgmap.ErrNoDefaultMapping)
	})

	t.Run("several nameless defaults", func(t *testing.T) {
		ms := pgmap.NewMappings()
		pgmap.AddType[int32](ms, "pg_catalog.int4", pgmap.AsDefault())
		pgmap.AddType[int64](ms, "pg_catalog.int8", pgmap.AsDefault())
		require.NoError(t, ms.Validate(false))
		assert.ErrorIs(t, ms.Validate(true), pgmap.ErrAmbiguousMapping)
	})

	t.Run("default requiring name", func(t *testing.T) {
		ms := pgmap.NewMappings()
		pgmap.AddType[dateValue](ms, pgmap.Date,
			pgmap.WithMatchRequirement(pgmap.MatchDataTypeName), pgmap.AsDefault())
		assert.ErrorIs(t, ms.Validate(true), pgmap.ErrNoDefaultMapping)
	})
}

func TestMappings_ZeroValue(t *testing.T) {
	var ms pgmap.Mappings
	assert.Zero(t, ms.Len())

	_, ok, err := ms.Find(nil, pgmap.Date)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NotPanics(t, func() {
		pgmap.AddType[dateValue](&ms, pgmap.Date, pgmap.WithMatchRequirement(pgmap.MatchDataTypeName))
		pgmap.AddType[timeValue](&ms, pgmap.Time, pgmap.AsDefault())
	})
	require.NoError(t, ms.Validate(true))

	m, ok, err := ms.Find(pgmap.Object, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, pgmap.Time, m.DataTypeName)

	assert.Panics(t, func() {
		pgmap.AddType[int64](&ms, pgmap.Time, pgmap.AsDefault())
	})
	assert.Equal(t, 2, ms.Clone().Len())
}

func TestMappings_CloneIsIndependent(t *testing.T) {
	parent := dateTimeMappings()
	child := parent.Clone()
	pgmap.AddArrayType[dateValue](child, pgmap.Date)

	assert.Equal(t, 2, parent.Len())
	assert.Equal(t, 3, child.Len())

	_, ok, err := parent.Find(nil, "pg_catalog._date")
	require.NoError(t, err)
	assert.False(t, ok)

	// Defaults carry over to the clone.
	m, ok, err := child.Find(pgmap.Object, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, pgmap.Time, m.DataTypeName)
}

func TestMappings_EntriesSnapshot(t *testing.T) {
	ms := dateTimeMappings()
	entries := ms.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, pgmap.Date, entries[0].DataTypeName)
	assert.Equal(t, pgmap.Time, entries[1].DataTypeName)

	entries[0].DataTypeName = "pg_catalog.changed"
	assert.Equal(t, pgmap.Date, ms.Entries()[0].DataTypeName)
}

func TestMapping_Build(t *testing.T) {
	ms := dateTimeMappings()
	m, ok, err := ms.Find(nil, pgmap.Date)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = m.Build(nil, pgmap.Object)
	assert.ErrorIs(t, err, pgmap.ErrNilProvider)

	p := pgmaptest.NewProvider()
	info, err := m.Build(p, pgmap.Object)
	require.NoError(t, err)
	assert.Equal(t, dateType, info.Type)
	assert.Equal(t, pgmap.Date, info.DataTypeName)
	assert.Equal(t, []pgmaptest.Call{{Type: dateType, DataTypeName: pgmap.Date}}, p.Calls())
}

func TestWithFactory_ReceivesBoundName(t *testing.T) {
	var (
		gotName      pgmap.DataTypeName
		gotRequested reflect.Type
	)
	ms := pgmap.NewMappings()
	pgmap.AddType[dateValue](ms, pgmap.Date, pgmap.WithFactory(
		func(p pgmap.Provider, m pgmap.Mapping, requested reflect.Type) (*pgmap.TypeInfo, error) {
			gotName, gotRequested = m.DataTypeName, requested
			return p.GetTypeInfo(m.Type, m.DataTypeName)
		}))

	m, ok, err := ms.Find(pgmap.Object, pgmap.Date)
	require.NoError(t, err)
	require.True(t, ok)
	_, err = m.Build(pgmaptest.NewProvider(), pgmap.Object)
	require.NoError(t, err)

	assert.Equal(t, pgmap.Date, gotName)
	assert.Equal(t, pgmap.Object, gotRequested)
}

func TestMatchRequirement_String(t *testing.T) {
	assert.Equal(t, "any", pgmap.MatchAny.String())
	assert.Equal(t, "datatypename", pgmap.MatchDataTypeName.String())
	assert.Equal(t, "MatchRequirement(7)", pgmap.MatchRequirement(7).String())
}
