//go:build linux
// +build linux

package afpacket

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/bpf"
)

func TestInvalidSocket(t *testing.T) {
	var sd fileDescriptor = -1

	_, err := sd.stats()
	require.ErrorIs(t, err, errInvalidSocket)
	require.ErrorIs(t, sd.setPromiscuous(nil), errInvalidSocket)
	require.ErrorIs(t, sd.attachFilter([]bpf.RawInstruction{{}}), errInvalidSocket)

	_, _, err = sd.recvfrom(nil, 0)
	require.NotNil(t, err)
}

func TestHtons(t *testing.T) {
	require.Equal(t, 0x0300, htons(0x0003))
	require.Equal(t, 0x0008, htons(0x0800))
	require.Equal(t, 0xDD86, htons(0x86DD))
}
