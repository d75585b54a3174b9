//go:build linux
// +build linux

package afpacket

import (
	"github.com/fako1024/slimframe/ethernet"
	"github.com/fako1024/slimframe/filter"
)

// Option denotes a functional option for the Source
type Option func(*Source)

// CaptureLength sets the capture length strategy of the source, evaluated against its link
func CaptureLength(strategy filter.CaptureLengthStrategy) Option {
	return func(s *Source) {
		s.captureLengthFn = strategy
	}
}

// Promiscuous enables / disables promiscuous mode on the underlying link
func Promiscuous(enable bool) Option {
	return func(s *Source) {
		s.isPromisc = enable
	}
}

// EtherTypes restricts the capture to frames carrying one of the provided ether types
// (behind up to two VLAN tags), using an in-kernel BPF filter
func EtherTypes(types ...ethernet.EtherType) Option {
	return func(s *Source) {
		s.etherTypes = types
		s.filterEnabled = true
	}
}
