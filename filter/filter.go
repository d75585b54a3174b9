// Package filter provides classic BPF programs and capture length strategies matching
// the frames understood by the ethernet parser, allowing to discard unwanted frames
// before they reach user space (or the parser)
package filter

import (
	"errors"
	"fmt"

	"github.com/fako1024/slimframe/ethernet"
	"golang.org/x/net/bpf"
)

var (

	// ErrInvalidSnaplen denotes a non-positive capture length
	ErrInvalidSnaplen = errors.New("invalid capture length")

	// ErrInvalidEtherType denotes an EtherType not part of the recognized set
	ErrInvalidEtherType = errors.New("invalid ether type")
)

// EtherTypes returns a classic BPF program accepting (up to snaplen bytes of) all
// frames whose innermost EtherType is among the provided ones. VLAN tags are detected
// the same way the parser does: a single 802.1Q tag (0x8100) or an 802.1ad service
// tag (0x88A8) directly followed by an 802.1Q tag. If no EtherTypes are provided, all
// recognized ones are accepted
func EtherTypes(snaplen int, types ...ethernet.EtherType) ([]bpf.Instruction, error) {

	if snaplen <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSnaplen, snaplen)
	}
	if len(types) == 0 {
		types = ethernet.AllEtherTypes()
	}

	codes := make([]uint32, 0, len(types))
	seen := make(map[ethernet.EtherType]struct{}, len(types))
	for _, t := range types {
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidEtherType, t)
		}
		if _, exists := seen[t]; exists {
			continue
		}
		seen[t] = struct{}{}
		codes = append(codes, uint32(t.Code()))
	}

	// At most all recognized EtherTypes are compared, so all jump offsets fit the
	// 8 bit range of classic BPF
	n := uint8(len(codes))
	instr := []bpf.Instruction{

		// Outer EtherType / TPID
		bpf.LoadAbsolute{Off: ethernet.EtherTypeStart, Size: 2},
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: uint32(ethernet.TPIDCustomerTag), SkipTrue: 5},
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: uint32(ethernet.TPIDServiceTag), SkipFalse: 5},

		// Service tag, the inner tag must be an 802.1Q one
		bpf.LoadAbsolute{Off: ethernet.SecondVLANTagEtherTypeStart, Size: 2},
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: uint32(ethernet.TPIDCustomerTag), SkipFalse: 3 + n},
		bpf.LoadAbsolute{Off: ethernet.DoubleTaggedEtherTypeStart, Size: 2},
		bpf.Jump{Skip: 1},

		// Single tag
		bpf.LoadAbsolute{Off: ethernet.SingleTaggedEtherTypeStart, Size: 2},
	}

	// Compare the (innermost) EtherType against all requested ones
	for i, code := range codes {
		instr = append(instr, bpf.JumpIf{Cond: bpf.JumpEqual, Val: code, SkipTrue: n - uint8(i)})
	}

	return append(instr,
		bpf.RetConstant{Val: 0},
		bpf.RetConstant{Val: uint32(snaplen)},
	), nil
}

// EtherTypesRaw returns the assembled (raw) form of the program returned by EtherTypes(),
// suitable for attachment to a socket
func EtherTypesRaw(snaplen int, types ...ethernet.EtherType) ([]bpf.RawInstruction, error) {
	instr, err := EtherTypes(snaplen, types...)
	if err != nil {
		return nil, err
	}

	return bpf.Assemble(instr)
}
