package match

// Table denotes a dense classification table with one slot per possible key. All
// slots not explicitly assigned hold the zero value of V, which is never returned
// from a lookup (it only signals an unset slot). Tables are populated once and are
// read-only afterwards, hence safe for unsynchronized concurrent use
type Table[K Code, V comparable] struct {
	field string
	slots []V
	codes map[V]K
}

// NewTable instantiates a new lookup table for the given field from a set of entries
func NewTable[K Code, V comparable](field string, entries ...Entry[K, V]) (*Table[K, V], error) {
	if err := validate(field, entries); err != nil {
		return nil, err
	}

	t := &Table[K, V]{
		field: field,
		slots: make([]V, keySpace[K]()),
		codes: make(map[V]K, len(entries)),
	}
	for _, e := range entries {
		t.slots[int(e.Code)] = e.Variant
		t.codes[e.Variant] = e.Code
	}

	return t, nil
}

// MustNewTable instantiates a new lookup table and panics if the set of entries is
// invalid. It is intended for package level tables initialized from constant data
func MustNewTable[K Code, V comparable](field string, entries ...Entry[K, V]) *Table[K, V] {
	t, err := NewTable(field, entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup classifies the raw value, returning a ParsingError if it is not recognized
func (t *Table[K, V]) Lookup(raw K) (V, error) {
	v, ok := t.Match(raw)
	if !ok {
		return v, ParsingError[K]{Field: t.field, Value: raw}
	}
	return v, nil
}

// Match classifies the raw value. The slot count equals the key space of K, so the
// index is always in range
func (t *Table[K, V]) Match(raw K) (v V, ok bool) {
	var unset V
	v = t.slots[int(raw)]
	return v, v != unset
}

// Code returns the wire code of a variant
func (t *Table[K, V]) Code(v V) (K, bool) {
	code, ok := t.codes[v]
	return code, ok
}

// Len returns the number of recognized codes
func (t *Table[K, V]) Len() int {
	return len(t.codes)
}

// Field returns the name of the classified field
func (t *Table[K, V]) Field() string {
	return t.field
}
