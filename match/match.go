// Package match provides a closed-set classification of fixed-width wire integers
// into named variants. Two forms share the same contract: a dense lookup Table sized
// to the full key domain (O(1), no branching on the value) and a Linear scan over
// the (small) set of recognized codes, suited for narrow fields where a full table
// would be mostly empty
package match

import "fmt"

// Code denotes the unsigned integer widths a wire field can be classified from
type Code interface {
	~uint8 | ~uint16
}

// Entry binds a variant to the wire code it is recognized from
type Entry[K Code, V comparable] struct {
	Code    K
	Variant V
}

// Matcher denotes any classification facility mapping a raw wire value to exactly
// one outcome: either the unique variant defined for it or a ParsingError
type Matcher[K Code, V comparable] interface {

	// Lookup classifies the raw value
	Lookup(raw K) (V, error)

	// Match classifies the raw value without constructing an error
	Match(raw K) (V, bool)

	// Code returns the wire code of a variant
	Code(v V) (K, bool)
}

// keySpace returns the number of distinct values representable by K
func keySpace[K Code]() int {
	return int(^K(0)) + 1
}

// validate ensures that a set of entries forms a closed set: the zero value of V is
// reserved as "slot unset" and neither codes nor variants may be used twice
func validate[K Code, V comparable](field string, entries []Entry[K, V]) error {
	var unset V
	codes := make(map[K]struct{}, len(entries))
	variants := make(map[V]struct{}, len(entries))
	for _, e := range entries {
		if e.Variant == unset {
			return fmt.Errorf("%s: code %#x maps to the reserved zero variant", field, uint64(e.Code))
		}
		if _, exists := codes[e.Code]; exists {
			return fmt.Errorf("%s: duplicate code %#x", field, uint64(e.Code))
		}
		if _, exists := variants[e.Variant]; exists {
			return fmt.Errorf("%s: duplicate variant %v", field, e.Variant)
		}
		codes[e.Code] = struct{}{}
		variants[e.Variant] = struct{}{}
	}
	return nil
}
