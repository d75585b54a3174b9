package match

// ParsingError denotes a raw wire value that does not map to any recognized variant
// of the classified field
type ParsingError[K Code] struct {
	Field string
	Value K
}

// Error implements the error interface
func (e ParsingError[K]) Error() string {
	return describe(e.Field, uint64(e.Value))
}
