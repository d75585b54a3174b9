//go:build !slimframe_nofmt
// +build !slimframe_nofmt

package ethernet

import "fmt"

func describe(kind Kind, minLen, size int, etherType uint16) string {
	switch kind {
	case ErrNoRecognizedEtherType:
		return fmt.Sprintf("no valid ether type, was: 0x%04X", etherType)
	case ErrFrameTooShort:
		return fmt.Sprintf("ethernet frame expected to be at least %d bytes, was: %d", minLen, size)
	}
	return kind.Error()
}
