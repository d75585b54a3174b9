//go:build slimframe_nofmt
// +build slimframe_nofmt

package match

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsingErrorMessage(t *testing.T) {
	require.EqualError(t, ParsingError[uint16]{Field: "ether type", Value: 0x0801}, "no recognized ether type")
}
