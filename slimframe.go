// Package slimframe provides zero-copy parsing of ethernet frames (including up to two
// stacked VLAN tags) for environments that cannot afford heap allocations or panics.
// The actual parsers reside in the ethernet package, this package ties them together and
// provides the top-level error type
package slimframe

import "github.com/fako1024/slimframe/ethernet"

// Parse constructs a frame from the provided buffer, detecting up to two VLAN tags if the
// buffer is long enough to potentially carry them. Buffers shorter than the maximum header
// length are parsed as untagged frames. All errors are returned as Error
func Parse(buf []byte, end uintptr) (ethernet.Frame, []byte, error) {
	var (
		frame   ethernet.Frame
		payload []byte
		err     error
	)
	if len(buf) >= ethernet.HeaderLenMax {
		frame, payload, err = ethernet.NewWithVLAN(buf, end)
	} else {
		frame, payload, err = ethernet.New(buf, end)
	}
	if err != nil {
		return ethernet.Frame{}, nil, FromEthernet(err)
	}

	return frame, payload, nil
}
