package match

// Linear denotes a classification by scanning the recognized codes. The scan is
// bounded by the (fixed) number of entries, so it trades the memory of a dense table
// for a small constant number of comparisons. It should only be used for narrow key
// spaces with a handful of variants
type Linear[K Code, V comparable] struct {
	field   string
	entries []Entry[K, V]
}

// NewLinear instantiates a new linear-scan matcher for the given field
func NewLinear[K Code, V comparable](field string, entries ...Entry[K, V]) (*Linear[K, V], error) {
	if err := validate(field, entries); err != nil {
		return nil, err
	}

	return &Linear[K, V]{
		field:   field,
		entries: append([]Entry[K, V](nil), entries...),
	}, nil
}

// MustNewLinear instantiates a new linear-scan matcher and panics if the set of
// entries is invalid
func MustNewLinear[K Code, V comparable](field string, entries ...Entry[K, V]) *Linear[K, V] {
	l, err := NewLinear(field, entries...)
	if err != nil {
		panic(err)
	}
	return l
}

// Lookup classifies the raw value, returning a ParsingError if it is not recognized
func (l *Linear[K, V]) Lookup(raw K) (V, error) {
	v, ok := l.Match(raw)
	if !ok {
		return v, ParsingError[K]{Field: l.field, Value: raw}
	}
	return v, nil
}

// Match classifies the raw value
func (l *Linear[K, V]) Match(raw K) (v V, ok bool) {
	for i := 0; i < len(l.entries); i++ {
		if l.entries[i].Code == raw {
			return l.entries[i].Variant, true
		}
	}
	return
}

// Code returns the wire code of a variant
func (l *Linear[K, V]) Code(v V) (K, bool) {
	for i := 0; i < len(l.entries); i++ {
		if l.entries[i].Variant == v {
			return l.entries[i].Code, true
		}
	}
	return 0, false
}

// Len returns the number of recognized codes
func (l *Linear[K, V]) Len() int {
	return len(l.entries)
}

// Field returns the name of the classified field
func (l *Linear[K, V]) Field() string {
	return l.field
}
