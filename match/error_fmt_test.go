//go:build !slimframe_nofmt
// +build !slimframe_nofmt

package match

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsingErrorMessage(t *testing.T) {
	require.EqualError(t, ParsingError[uint16]{Field: "ether type", Value: 0x0801}, "no recognized ether type, was: 0x0801")
	require.EqualError(t, ParsingError[uint8]{Field: "priority", Value: 9}, "no recognized priority, was: 0x0009")
	require.EqualError(t, ParsingError[uint16]{Field: "ether type", Value: 0x88A8}, "no recognized ether type, was: 0x88a8")
}
