package filter

import (
	"github.com/fako1024/gotools/link"
	"github.com/fako1024/slimframe/ethernet"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// CaptureLengthStrategy denotes a strategy to calculate an optimal snaplen
// for a link (type) depending on the use case
type CaptureLengthStrategy = func(l *link.Link) int

// maxTagLen denotes the overall length of the maximum number of supported VLAN tags
var maxTagLen = ethernet.VLANDoubleTagged.TagLen()

var (

	// CaptureLengthFixed denotes a simple fixed snaplen strategy
	CaptureLengthFixed = func(snaplen int) CaptureLengthStrategy {
		return func(*link.Link) int {
			return snaplen
		}
	}

	// CaptureLengthMinimalHeader indicates that the minimal necessary length to
	// facilitate parsing of the link layer header (including up to two VLAN tags)
	// should be chosen
	CaptureLengthMinimalHeader = func(l *link.Link) int {
		return int(l.Type.IPHeaderOffset()) + maxTagLen
	}

	// CaptureLengthMinimalIPv4Header indicates that the minimal necessary length to
	// facilitate IPv4 layer analysis (behind up to two VLAN tags) should be chosen
	CaptureLengthMinimalIPv4Header = func(l *link.Link) int {
		return int(l.Type.IPHeaderOffset()) + maxTagLen + ipv4.HeaderLen // include full IPv4 header
	}

	// CaptureLengthMinimalIPv6Header indicates that the minimal necessary length to
	// facilitate IPv6 layer analysis (behind up to two VLAN tags) should be chosen
	CaptureLengthMinimalIPv6Header = func(l *link.Link) int {
		return int(l.Type.IPHeaderOffset()) + maxTagLen + ipv6.HeaderLen // include full IPv6 header
	}

	// CaptureLengthMinimalIPv4Transport indicates that the minimal necessary length to
	// facilitate IPv4 transport layer analysis should be chosen
	CaptureLengthMinimalIPv4Transport = func(l *link.Link) int {
		return int(l.Type.IPHeaderOffset()) + maxTagLen + ipv4.HeaderLen + 14 // include IPv4 transport layer up to TCP flag position
	}

	// CaptureLengthMinimalIPv6Transport indicates that the minimal necessary length to
	// facilitate IPv6 transport layer analysis should be chosen
	CaptureLengthMinimalIPv6Transport = func(l *link.Link) int {
		return int(l.Type.IPHeaderOffset()) + maxTagLen + ipv6.HeaderLen + 14 // include IPv6 transport layer up to TCP flag position
	}
)
