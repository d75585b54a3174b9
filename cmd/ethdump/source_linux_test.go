//go:build linux
// +build linux

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLiveInvalidInput(t *testing.T) {
	_, err := execute(t, "-i", "lo", "--log-level", "error", "--capture-length", "everything")
	require.EqualError(t, err, `unknown capture length: "everything"`)

	_, err = execute(t, "-i", "lo", "--log-level", "error", "--only", "IPv7")
	require.EqualError(t, err, `unknown ether type: "IPv7"`)

	_, err = execute(t, "-i", "doesnotexist0", "--log-level", "error")
	require.ErrorContains(t, err, "failed to capture on `doesnotexist0`")
}

func TestCaptureLengthNames(t *testing.T) {
	require.Equal(t, []string{"full", "header", "ipv4", "ipv4-transport", "ipv6", "ipv6-transport"}, captureLengthNames())

	for _, name := range captureLengthNames() {
		strategy, err := parseCaptureLength(name)
		require.Nil(t, err)
		require.NotNil(t, strategy)
	}
}
