package match

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testVariant uint8

const (
	testInvalid testVariant = iota
	testAlpha
	testBeta
	testGamma
)

var testEntries16 = []Entry[uint16, testVariant]{
	{Code: 0x0800, Variant: testAlpha},
	{Code: 0x86DD, Variant: testBeta},
	{Code: 0xFFFE, Variant: testGamma},
}

var testEntries8 = []Entry[uint8, testVariant]{
	{Code: 0, Variant: testAlpha},
	{Code: 7, Variant: testBeta},
	{Code: 255, Variant: testGamma},
}

func TestInvalidEntries(t *testing.T) {

	t.Run("reserved zero variant", func(t *testing.T) {
		tbl, err := NewTable("test field", Entry[uint16, testVariant]{Code: 1, Variant: testInvalid})
		require.EqualError(t, err, "test field: code 0x1 maps to the reserved zero variant")
		require.Nil(t, tbl)
	})

	t.Run("duplicate code", func(t *testing.T) {
		lin, err := NewLinear("test field",
			Entry[uint8, testVariant]{Code: 1, Variant: testAlpha},
			Entry[uint8, testVariant]{Code: 1, Variant: testBeta},
		)
		require.EqualError(t, err, "test field: duplicate code 0x1")
		require.Nil(t, lin)
	})

	t.Run("duplicate variant", func(t *testing.T) {
		_, err := NewTable("test field",
			Entry[uint16, testVariant]{Code: 1, Variant: testAlpha},
			Entry[uint16, testVariant]{Code: 2, Variant: testAlpha},
		)
		require.EqualError(t, err, "test field: duplicate variant 1")
	})

	t.Run("must panics", func(t *testing.T) {
		require.Panics(t, func() {
			MustNewTable("test field", Entry[uint16, testVariant]{Code: 1, Variant: testInvalid})
		})
		require.Panics(t, func() {
			MustNewLinear("test field", Entry[uint8, testVariant]{Code: 1, Variant: testInvalid})
		})
	})
}

func TestTableExhaustive(t *testing.T) {
	tbl := MustNewTable("test field", testEntries16...)
	require.Equal(t, len(testEntries16), tbl.Len())
	require.Equal(t, "test field", tbl.Field())

	expected := make(map[uint16]testVariant)
	for _, e := range testEntries16 {
		expected[e.Code] = e.Variant
	}

	for i := 0; i <= 0xFFFF; i++ {
		raw := uint16(i)
		v, err := tbl.Lookup(raw)
		if want, ok := expected[raw]; ok {
			require.Nil(t, err)
			require.Equal(t, want, v)

			code, ok := tbl.Code(v)
			require.True(t, ok)
			require.Equal(t, raw, code)
			continue
		}

		require.Equal(t, ParsingError[uint16]{Field: "test field", Value: raw}, err)
		require.Equal(t, testInvalid, v)
	}
}

func TestLinearExhaustive(t *testing.T) {
	lin := MustNewLinear("test field", testEntries8...)
	require.Equal(t, len(testEntries8), lin.Len())
	require.Equal(t, "test field", lin.Field())

	expected := make(map[uint8]testVariant)
	for _, e := range testEntries8 {
		expected[e.Code] = e.Variant
	}

	for i := 0; i <= 0xFF; i++ {
		raw := uint8(i)
		v, err := lin.Lookup(raw)
		if want, ok := expected[raw]; ok {
			require.Nil(t, err)
			require.Equal(t, want, v)

			code, ok := lin.Code(v)
			require.True(t, ok)
			require.Equal(t, raw, code)
			continue
		}

		var pErr ParsingError[uint8]
		require.True(t, errors.As(err, &pErr))
		require.Equal(t, raw, pErr.Value)
	}

	_, ok := lin.Code(testInvalid)
	require.False(t, ok)
}

// Both forms must behave identically for the same set of entries
func TestTableLinearEquivalence(t *testing.T) {
	tbl := MustNewTable("test field", testEntries8...)
	lin := MustNewLinear("test field", testEntries8...)

	for _, m := range []Matcher[uint8, testVariant]{tbl, lin} {
		for i := 0; i <= 0xFF; i++ {
			vTbl, errTbl := tbl.Lookup(uint8(i))
			v, err := m.Lookup(uint8(i))
			require.Equal(t, vTbl, v)
			require.Equal(t, errTbl, err)
		}
	}
}

func TestLookupNoAllocs(t *testing.T) {
	tbl := MustNewTable("test field", testEntries16...)
	lin := MustNewLinear("test field", testEntries8...)

	require.Zero(t, testing.AllocsPerRun(100, func() {
		_, _ = tbl.Lookup(0x0800)
		_, _ = lin.Lookup(7)
		_, _ = tbl.Match(0x1234)
		_, _ = lin.Match(3)
	}))
}

func BenchmarkLookup(b *testing.B) {
	tbl := MustNewTable("test field", testEntries16...)
	lin := MustNewLinear("test field", testEntries8...)

	b.Run("table", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = tbl.Lookup(uint16(i))
		}
	})
	b.Run("linear", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = lin.Lookup(uint8(i))
		}
	})
}
