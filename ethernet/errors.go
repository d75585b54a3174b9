package ethernet

// Kind denotes the condition an ethernet operation failed on. Each Kind is an error
// itself and can be used as target for errors.Is() on any of the operation specific
// errors below
type Kind uint8

const (

	// ErrNoRecognizedEtherType denotes an EtherType not contained in the recognized set
	ErrNoRecognizedEtherType Kind = iota + 1

	// ErrFrameTooShort denotes a buffer shorter than the required header length
	ErrFrameTooShort

	// ErrDataEndExceeded denotes that the required header length extends beyond the
	// externally provided end-of-data marker
	ErrDataEndExceeded

	// ErrOutOfBoundsBufferAccess denotes a failed range extraction from a buffer
	ErrOutOfBoundsBufferAccess

	// ErrSliceToArray denotes a failed conversion of a slice to a fixed size array
	ErrSliceToArray

	// ErrNotVLANTagged denotes access to a VLAN sub-field of an untagged frame
	ErrNotVLANTagged

	// ErrNotVLANDoubleTagged denotes access to a second VLAN tag sub-field of a single
	// tagged frame
	ErrNotVLANDoubleTagged
)

var kindNames = [...]string{
	ErrNoRecognizedEtherType:   "no valid ether type",
	ErrFrameTooShort:           "ethernet frame too short",
	ErrDataEndExceeded:         "ethernet header exceeds end of data",
	ErrOutOfBoundsBufferAccess: "out of bounds buffer access",
	ErrSliceToArray:            "could not convert slice to array",
	ErrNotVLANTagged:           "frame is not VLAN tagged",
	ErrNotVLANDoubleTagged:     "frame is not double VLAN tagged",
}

// Error implements the error interface
func (k Kind) Error() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown ethernet error"
}

// CreationError denotes a failure to construct an untagged frame (New)
type CreationError struct {
	Kind      Kind
	Size      int
	EtherType uint16
}

func (e CreationError) Error() string {
	return describe(e.Kind, HeaderLenNoVLAN, e.Size, e.EtherType)
}

func (e CreationError) Unwrap() error {
	return e.Kind
}

// VLANCreationError denotes a failure to construct a (potentially) VLAN tagged
// frame (NewWithVLAN)
type VLANCreationError struct {
	Kind      Kind
	Size      int
	EtherType uint16
}

func (e VLANCreationError) Error() string {
	return describe(e.Kind, HeaderLenMax, e.Size, e.EtherType)
}

func (e VLANCreationError) Unwrap() error {
	return e.Kind
}

// MatchError denotes a failure to detect VLAN tags / classify the EtherType (MatchWithVLAN)
type MatchError struct {
	Kind      Kind
	EtherType uint16
}

func (e MatchError) Error() string {
	return describe(e.Kind, HeaderLenMax, 0, e.EtherType)
}

func (e MatchError) Unwrap() error {
	return e.Kind
}

// creation converts the error into the error family of NewWithVLAN
func (e MatchError) creation() VLANCreationError {
	return VLANCreationError{
		Kind:      e.Kind,
		EtherType: e.EtherType,
	}
}

// HeaderError denotes a failure to access a header field of a frame
type HeaderError struct {
	Kind Kind
}

func (e HeaderError) Error() string {
	return e.Kind.Error()
}

func (e HeaderError) Unwrap() error {
	return e.Kind
}

// FirstTagError denotes a failure to access a sub-field of the first VLAN tag
type FirstTagError struct {
	Kind Kind
}

func (e FirstTagError) Error() string {
	return e.Kind.Error()
}

func (e FirstTagError) Unwrap() error {
	return e.Kind
}

// SecondTagError denotes a failure to access a sub-field of the second VLAN tag
type SecondTagError struct {
	Kind Kind
}

func (e SecondTagError) Error() string {
	return e.Kind.Error()
}

func (e SecondTagError) Unwrap() error {
	return e.Kind
}

// Op denotes the ethernet operation an error originates from
type Op uint8

const (
	OpNew Op = iota + 1
	OpNewWithVLAN
	OpMatchWithVLAN
	OpHeader
	OpFirstTag
	OpSecondTag
)

var opNames = [...]string{
	OpNew:           "new",
	OpNewWithVLAN:   "new with vlan",
	OpMatchWithVLAN: "match with vlan",
	OpHeader:        "get header",
	OpFirstTag:      "get first vlan tag",
	OpSecondTag:     "get second vlan tag",
}

// String returns a human-readable name of the operation
func (o Op) String() string {
	if o > 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// Error denotes the family of all errors originating from ethernet operations,
// holding exactly one operation specific error
type Error struct {
	Op  Op
	Err error
}

func (e Error) Error() string {
	if e.Err == nil {
		return e.Op.String()
	}
	return e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}

// Wrap lifts an operation specific error into the ethernet error family. Errors
// already part of the family are returned as-is, nil remains nil and foreign errors
// are returned unchanged
func Wrap(err error) error {
	switch e := err.(type) {
	case nil:
		return nil
	case Error:
		return e
	case CreationError:
		return Error{Op: OpNew, Err: e}
	case VLANCreationError:
		return Error{Op: OpNewWithVLAN, Err: e}
	case MatchError:
		return Error{Op: OpMatchWithVLAN, Err: e}
	case HeaderError:
		return Error{Op: OpHeader, Err: e}
	case FirstTagError:
		return Error{Op: OpFirstTag, Err: e}
	case SecondTagError:
		return Error{Op: OpSecondTag, Err: e}
	}
	return err
}
