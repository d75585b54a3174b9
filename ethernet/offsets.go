package ethernet

// All ranges are [start, end), i.e. start is included, end is not
const (
	DestinationMACStart = 0
	DestinationMACEnd   = 6
	SourceMACStart      = 6
	SourceMACEnd        = 12

	EtherTypeStart              = 12
	EtherTypeEnd                = 14
	SingleTaggedEtherTypeStart  = 16
	SingleTaggedEtherTypeEnd    = 18
	DoubleTaggedEtherTypeStart  = 20
	DoubleTaggedEtherTypeEnd    = 22
	FirstVLANTagEtherTypeStart  = 12
	FirstVLANTagEtherTypeEnd    = 14
	FirstVLANTagParamStart      = 14
	FirstVLANTagParamEnd        = 16
	SecondVLANTagEtherTypeStart = 16
	SecondVLANTagEtherTypeEnd   = 18
	SecondVLANTagParamStart     = 18
	SecondVLANTagParamEnd       = 20
)

const (

	// HeaderLenNoVLAN denotes the header length of an untagged frame (which is also
	// where its payload starts)
	HeaderLenNoVLAN = 14

	// VLANTagLen denotes the length of a single 802.1Q tag
	VLANTagLen = 4

	// HeaderLenMax denotes the maximum header length (two stacked tags), which is also
	// the number of bytes inspected when detecting VLAN tags
	HeaderLenMax = HeaderLenNoVLAN + 2*VLANTagLen

	// vlanWindowLen denotes the number of bytes (starting at EtherTypeStart) that are
	// inspected for VLAN tags
	vlanWindowLen = HeaderLenMax - EtherTypeStart
)

const (

	// TPIDCustomerTag denotes the 802.1Q tag protocol identifier (single tag / inner tag)
	TPIDCustomerTag uint16 = 0x8100

	// TPIDServiceTag denotes the 802.1ad tag protocol identifier (outer tag of a QinQ frame)
	TPIDServiceTag uint16 = 0x88A8
)

// etherTypeRange returns the location of the (innermost) EtherType for a VLAN state
func etherTypeRange(s VLANState) (start, end int) {
	switch s {
	case VLANSingleTagged:
		return SingleTaggedEtherTypeStart, SingleTaggedEtherTypeEnd
	case VLANDoubleTagged:
		return DoubleTaggedEtherTypeStart, DoubleTaggedEtherTypeEnd
	}
	return EtherTypeStart, EtherTypeEnd
}
