// Package ethernet provides a zero-copy, allocation free parser for ethernet frames
// with up to two stacked VLAN tags. All operations are total: any input, however
// malformed, yields a defined error instead of a panic, and every access is checked
// against two independent bounds (the buffer length and an externally provided
// end-of-data marker)
package ethernet

import "unsafe"

// Frame denotes an immutable view of the header of an ethernet frame. It does not own
// the underlying memory: the buffer must not be modified or reused while the Frame
// (or the payload returned alongside it) is in use
type Frame struct {
	vlan      VLANState
	etherType EtherType
	header    []byte
}

// End returns the end-of-data marker for a buffer whose whole length is accessible,
// i.e. address_of(buf) + len(buf). Environments asserting the accessible memory
// range by other means should provide their own marker instead
func End(buf []byte) uintptr {
	return addressOf(buf) + uintptr(len(buf))
}

// New constructs an untagged frame from the first 14 bytes of the buffer, returning
// the frame and the remainder of the buffer (the payload)
func New(buf []byte, end uintptr) (Frame, []byte, error) {

	// We read at most the first 14 bytes of the frame:
	// 6 bytes dst MAC
	// 6 bytes src MAC
	// 2 bytes ether type
	if len(buf) < HeaderLenNoVLAN {
		return Frame{}, nil, CreationError{Kind: ErrFrameTooShort, Size: len(buf)}
	}
	if !withinEnd(buf, end, HeaderLenNoVLAN) {
		return Frame{}, nil, CreationError{Kind: ErrDataEndExceeded}
	}

	field, ok := get(buf, EtherTypeStart, EtherTypeEnd)
	if !ok {
		return Frame{}, nil, CreationError{Kind: ErrOutOfBoundsBufferAccess}
	}
	raw, ok := uint16FromSlice(field)
	if !ok {
		return Frame{}, nil, CreationError{Kind: ErrSliceToArray}
	}

	etherType, ok := etherTypes.Match(raw)
	if !ok {
		return Frame{}, nil, CreationError{Kind: ErrNoRecognizedEtherType, EtherType: raw}
	}

	return Frame{
		vlan:      VLANNone,
		etherType: etherType,
		header:    buf[:HeaderLenNoVLAN:HeaderLenNoVLAN],
	}, buf[HeaderLenNoVLAN:], nil
}

// NewWithVLAN constructs a frame from a buffer that may carry up to two stacked VLAN
// tags, returning the frame and the remainder of the buffer (the payload). Since the
// tag detection inspects the maximum possible header, the buffer (and the range up to
// end) must span at least 22 bytes regardless of the number of tags actually present
func NewWithVLAN(buf []byte, end uintptr) (Frame, []byte, error) {

	// We read at most the first 22 bytes of the frame:
	// 6 bytes dst MAC
	// 6 bytes src MAC
	// 4 bytes 1. VLAN tag
	// 4 bytes 2. VLAN tag
	// 2 bytes ether type
	if len(buf) < HeaderLenMax {
		return Frame{}, nil, VLANCreationError{Kind: ErrFrameTooShort, Size: len(buf)}
	}
	if !withinEnd(buf, end, HeaderLenMax) {
		return Frame{}, nil, VLANCreationError{Kind: ErrDataEndExceeded}
	}

	etherType, tagLen, state, fail := matchWithVLAN(buf)
	if fail.Kind != 0 {
		return Frame{}, nil, fail.creation()
	}

	headerLen := HeaderLenNoVLAN + tagLen
	return Frame{
		vlan:      state,
		etherType: etherType,
		header:    buf[:headerLen:headerLen],
	}, buf[headerLen:], nil
}

// VLAN returns the VLAN state of the frame
func (f Frame) VLAN() VLANState {
	return f.vlan
}

// HeaderLen returns the length of the header, i.e. the offset of the payload
func (f Frame) HeaderLen() int {
	return len(f.header)
}

// Header returns the raw header of the frame
func (f Frame) Header() []byte {
	return f.header
}

// EtherType returns the classified EtherType of the frame. Classification already took
// place during construction, so this accessor cannot fail
func (f Frame) EtherType() EtherType {
	return f.etherType
}

// Destination returns the destination MAC address
func (f Frame) Destination() (*[6]byte, error) {
	return f.hwAddr(DestinationMACStart, DestinationMACEnd)
}

// Source returns the source MAC address
func (f Frame) Source() (*[6]byte, error) {
	return f.hwAddr(SourceMACStart, SourceMACEnd)
}

// RawEtherType returns the raw (network byte order) EtherType field, located
// according to the VLAN state of the frame
func (f Frame) RawEtherType() (*[2]byte, error) {
	start, end := etherTypeRange(f.vlan)
	field, kind := array2(f.header, start, end)
	if kind != 0 {
		return nil, HeaderError{Kind: kind}
	}
	return field, nil
}

// FirstTagEtherType returns the raw tag protocol identifier of the first (outer) VLAN tag
func (f Frame) FirstTagEtherType() (*[2]byte, error) {
	return f.firstTagField(FirstVLANTagEtherTypeStart, FirstVLANTagEtherTypeEnd)
}

// FirstTagParam returns the raw tag control information of the first (outer) VLAN tag
func (f Frame) FirstTagParam() (*[2]byte, error) {
	return f.firstTagField(FirstVLANTagParamStart, FirstVLANTagParamEnd)
}

// FirstTag returns the decoded tag control information of the first (outer) VLAN tag
func (f Frame) FirstTag() (VLANTag, error) {
	param, err := f.FirstTagParam()
	if err != nil {
		return VLANTag{}, err
	}
	return DecodeTag(uint16(param[0])<<8 | uint16(param[1])), nil
}

// SecondTagEtherType returns the raw tag protocol identifier of the second (inner) VLAN tag
func (f Frame) SecondTagEtherType() (*[2]byte, error) {
	return f.secondTagField(SecondVLANTagEtherTypeStart, SecondVLANTagEtherTypeEnd)
}

// SecondTagParam returns the raw tag control information of the second (inner) VLAN tag
func (f Frame) SecondTagParam() (*[2]byte, error) {
	return f.secondTagField(SecondVLANTagParamStart, SecondVLANTagParamEnd)
}

// SecondTag returns the decoded tag control information of the second (inner) VLAN tag
func (f Frame) SecondTag() (VLANTag, error) {
	param, err := f.SecondTagParam()
	if err != nil {
		return VLANTag{}, err
	}
	return DecodeTag(uint16(param[0])<<8 | uint16(param[1])), nil
}

////////////////////////////////////////////////////////////////////////

func (f Frame) hwAddr(start, end int) (*[6]byte, error) {
	field, ok := get(f.header, start, end)
	if !ok {
		return nil, HeaderError{Kind: ErrOutOfBoundsBufferAccess}
	}
	if len(field) != 6 {
		return nil, HeaderError{Kind: ErrSliceToArray}
	}
	return (*[6]byte)(field), nil
}

func (f Frame) firstTagField(start, end int) (*[2]byte, error) {
	if !f.vlan.IsTagged() {
		return nil, FirstTagError{Kind: ErrNotVLANTagged}
	}
	field, kind := array2(f.header, start, end)
	if kind != 0 {
		return nil, FirstTagError{Kind: kind}
	}
	return field, nil
}

func (f Frame) secondTagField(start, end int) (*[2]byte, error) {
	switch f.vlan {
	case VLANSingleTagged:
		return nil, SecondTagError{Kind: ErrNotVLANDoubleTagged}
	case VLANDoubleTagged:
	default:
		return nil, SecondTagError{Kind: ErrNotVLANTagged}
	}
	field, kind := array2(f.header, start, end)
	if kind != 0 {
		return nil, SecondTagError{Kind: kind}
	}
	return field, nil
}

func array2(buf []byte, start, end int) (*[2]byte, Kind) {
	field, ok := get(buf, start, end)
	if !ok {
		return nil, ErrOutOfBoundsBufferAccess
	}
	if len(field) != 2 {
		return nil, ErrSliceToArray
	}
	return (*[2]byte)(field), 0
}

func uint16FromSlice(field []byte) (uint16, bool) {
	if len(field) != 2 {
		return 0, false
	}
	return uint16(field[0])<<8 | uint16(field[1]), true
}

func addressOf(buf []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
}

// withinEnd checks that the range of required bytes starting at the buffer does not
// extend beyond end. It is checked independently from the length of the buffer, since
// the end-of-data marker may be asserted by the caller's environment
func withinEnd(buf []byte, end uintptr, required int) bool {
	start := addressOf(buf)
	return end >= start && end-start >= uintptr(required)
}
