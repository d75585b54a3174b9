package ethernet

import (
	"encoding/binary"

	"github.com/fako1024/slimframe/match"
)

// VLANState denotes the number of 802.1Q tags present in a frame, determining
// where the header fields are located
type VLANState uint8

const (

	// VLANNone denotes an untagged frame
	VLANNone VLANState = iota

	// VLANSingleTagged denotes a frame carrying a single 802.1Q tag
	VLANSingleTagged

	// VLANDoubleTagged denotes a QinQ frame (802.1ad outer tag + 802.1Q inner tag)
	VLANDoubleTagged
)

// Tags returns the number of VLAN tags
func (s VLANState) Tags() int {
	switch s {
	case VLANSingleTagged:
		return 1
	case VLANDoubleTagged:
		return 2
	}
	return 0
}

// TagLen returns the overall length of all VLAN tags
func (s VLANState) TagLen() int {
	return s.Tags() * VLANTagLen
}

// HeaderLen returns the length of the header (i.e. the payload offset)
func (s VLANState) HeaderLen() int {
	return HeaderLenNoVLAN + s.TagLen()
}

// IsTagged returns if at least one VLAN tag is present
func (s VLANState) IsTagged() bool {
	return s == VLANSingleTagged || s == VLANDoubleTagged
}

func (s VLANState) String() string {
	switch s {
	case VLANNone:
		return "none"
	case VLANSingleTagged:
		return "single-tagged"
	case VLANDoubleTagged:
		return "double-tagged"
	}
	return "unknown"
}

// Priority denotes the 802.1Q priority code point (PCP) traffic class of a VLAN tag
type Priority uint8

const (
	PriorityInvalid Priority = iota
	PriorityBackground
	PriorityBestEffort
	PriorityExcellentEffort
	PriorityCriticalApplications
	PriorityVideo
	PriorityVoice
	PriorityInternetworkControl
	PriorityNetworkControl
)

var priorityNames = [...]string{
	PriorityInvalid:              "Invalid",
	PriorityBackground:           "Background",
	PriorityBestEffort:           "BestEffort",
	PriorityExcellentEffort:      "ExcellentEffort",
	PriorityCriticalApplications: "CriticalApplications",
	PriorityVideo:                "Video",
	PriorityVoice:                "Voice",
	PriorityInternetworkControl:  "InternetworkControl",
	PriorityNetworkControl:       "NetworkControl",
}

// The PCP is a 3 bit field, hence a linear scan over its eight codes is cheaper
// than a table covering the whole byte
var priorities = match.MustNewLinear("priority code point",
	match.Entry[uint8, Priority]{Code: 0, Variant: PriorityBestEffort},
	match.Entry[uint8, Priority]{Code: 1, Variant: PriorityBackground},
	match.Entry[uint8, Priority]{Code: 2, Variant: PriorityExcellentEffort},
	match.Entry[uint8, Priority]{Code: 3, Variant: PriorityCriticalApplications},
	match.Entry[uint8, Priority]{Code: 4, Variant: PriorityVideo},
	match.Entry[uint8, Priority]{Code: 5, Variant: PriorityVoice},
	match.Entry[uint8, Priority]{Code: 6, Variant: PriorityInternetworkControl},
	match.Entry[uint8, Priority]{Code: 7, Variant: PriorityNetworkControl},
)

// LookupPriority classifies a raw priority code point
func LookupPriority(raw uint8) (Priority, error) {
	return priorities.Lookup(raw)
}

// Code returns the wire code (PCP) of the priority
func (p Priority) Code() uint8 {
	code, _ := priorities.Code(p)
	return code
}

func (p Priority) String() string {
	if int(p) < len(priorityNames) {
		return priorityNames[p]
	}
	return "unknown"
}

// VLANTag denotes the decoded tag control information (TCI) of a VLAN tag
type VLANTag struct {

	// Priority specifies the IEEE 802.1p priority class
	Priority Priority

	// DropEligible indicates if a frame may be dropped in the presence of congestion
	DropEligible bool

	// ID specifies the VLAN identifier (12 bits)
	ID uint16
}

// DecodeTag decodes a raw (host byte order) tag control information value:
//
//	 3 bits: priority
//	 1 bit : drop eligible
//	12 bits: VLAN ID
func DecodeTag(tci uint16) VLANTag {

	// A 3 bit value is always in the recognized set
	prio, _ := priorities.Match(uint8(tci >> 13))

	return VLANTag{
		Priority:     prio,
		DropEligible: tci&0x1000 != 0,
		ID:           tci & 0x0fff,
	}
}

// MatchWithVLAN inspects the ten bytes following the source MAC address for up to two
// stacked VLAN tags and classifies the (innermost) EtherType. It returns the EtherType,
// the overall length of the detected tags and the resulting VLAN state
func MatchWithVLAN(buf []byte) (EtherType, int, VLANState, error) {
	etherType, tagLen, state, fail := matchWithVLAN(buf)
	if fail.Kind != 0 {
		return EtherTypeInvalid, 0, VLANNone, fail
	}
	return etherType, tagLen, state, nil
}

// matchWithVLAN performs the actual detection, signalling failure via a non-zero Kind
// (avoiding the construction of an error interface value on the success path)
func matchWithVLAN(buf []byte) (etherType EtherType, tagLen int, state VLANState, fail MatchError) {
	window, ok := get(buf, EtherTypeStart, EtherTypeStart+vlanWindowLen)
	if !ok {
		fail.Kind = ErrOutOfBoundsBufferAccess
		return
	}
	if len(window) != vlanWindowLen {
		fail.Kind = ErrSliceToArray
		return
	}
	w := (*[vlanWindowLen]byte)(window)

	var raw uint16
	switch {

	// 802.1Q: [0x81 0x00 TCI TCI X X ...]
	case w[0] == 0x81 && w[1] == 0x00:
		raw = binary.BigEndian.Uint16(w[4:6])
		tagLen, state = VLANTagLen, VLANSingleTagged

	// 802.1ad: [0x88 0xA8 TCI TCI 0x81 0x00 TCI TCI X X]
	case w[0] == 0x88 && w[1] == 0xA8 && w[4] == 0x81 && w[5] == 0x00:
		raw = binary.BigEndian.Uint16(w[8:10])
		tagLen, state = 2*VLANTagLen, VLANDoubleTagged

	default:
		raw = binary.BigEndian.Uint16(w[0:2])
	}

	if etherType, ok = etherTypes.Match(raw); !ok {
		fail.Kind, fail.EtherType = ErrNoRecognizedEtherType, raw
		return EtherTypeInvalid, 0, VLANNone, fail
	}

	return
}

// get returns the range [start, end) of buf, failing instead of panicking on any
// out of bounds access
func get(buf []byte, start, end int) ([]byte, bool) {
	if start < 0 || start > end || end > len(buf) {
		return nil, false
	}
	return buf[start:end], true
}
