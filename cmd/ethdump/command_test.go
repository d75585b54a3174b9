package main

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/stretchr/testify/require"
)

func writeTestPcap(t *testing.T) string {
	eth := &layers.Ethernet{
		DstMAC: net.HardwareAddr{0x6A, 0x00, 0x01, 0x02, 0x03, 0x04},
		SrcMAC: net.HardwareAddr{0x02, 0x42, 0xAC, 0x11, 0x00, 0x02},
	}

	var frames [][]byte
	for _, l := range [][]gopacket.SerializableLayer{
		{eth, gopacket.Payload(make([]byte, 46))},
		{eth, &layers.Dot1Q{VLANIdentifier: 10, Type: layers.EthernetTypeIPv6}, gopacket.Payload(make([]byte, 46))},
		{eth, &layers.Dot1Q{VLANIdentifier: 100, Type: layers.EthernetTypeDot1Q}, &layers.Dot1Q{VLANIdentifier: 10, Type: layers.EthernetTypeARP}, gopacket.Payload(make([]byte, 28))},
	} {
		switch len(l) {
		case 2:
			eth.EthernetType = layers.EthernetTypeIPv4
		case 3:
			eth.EthernetType = layers.EthernetTypeDot1Q
		case 4:
			eth.EthernetType = layers.EthernetTypeQinQ
		}
		buf := gopacket.NewSerializeBuffer()
		require.Nil(t, gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, l...))
		frames = append(frames, append([]byte{}, buf.Bytes()...))
	}
	frames = append(frames, make([]byte, 10))

	var buf bytes.Buffer
	w := pcapgo.NewWriter(&buf)
	require.Nil(t, w.WriteFileHeader(65535, layers.LinkTypeEthernet))
	for _, frame := range frames {
		require.Nil(t, w.WritePacket(gopacket.CaptureInfo{
			Timestamp:     time.Unix(1700000000, 0),
			CaptureLength: len(frame),
			Length:        len(frame),
		}, frame))
	}

	path := filepath.Join(t.TempDir(), "test.pcap")
	require.Nil(t, os.WriteFile(path, buf.Bytes(), 0600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestEthdump(t *testing.T) {
	path := writeTestPcap(t)

	out, err := execute(t, "-f", path, "--log-level", "error", "--drop", "arp", "--macs")
	require.Nil(t, err)
	require.Contains(t, out, "FRAMES")
	require.Contains(t, out, "CAPTURED")
	require.Contains(t, out, "IPv4")
	require.Contains(t, out, "IPv6")
	require.Contains(t, out, "ARP")
	require.Contains(t, out, "double-tagged")
	require.Contains(t, out, "ethernet frame too short")
	require.Contains(t, out, "02:42:ac:11:00:02")
}

func TestEthdumpLogging(t *testing.T) {
	path := writeTestPcap(t)

	out, err := execute(t, "-f", path, "--log-level", "info")
	require.Nil(t, err)
	require.Contains(t, out, "reading frames from `test.pcap`")
	require.Contains(t, out, "processed 4 frames")
}

func TestEthdumpPreFilter(t *testing.T) {
	path := writeTestPcap(t)

	out, err := execute(t, "-f", path, "--log-level", "error", "--only", "IPv6", "-n", "3")
	require.Nil(t, err)
	require.Contains(t, out, "IPv6")
	require.NotContains(t, out, "IPv4")
	require.NotContains(t, out, "ethernet frame too short")
}

func TestEthdumpInvalidInput(t *testing.T) {
	_, err := execute(t)
	require.ErrorContains(t, err, "at least one of the flags in the group [file interface] is required")

	path := writeTestPcap(t)

	_, err = execute(t, "-f", path, "-i", "lo")
	require.ErrorContains(t, err, "none of the others can be")

	_, err = execute(t, "-f", path, "--log-level", "error", "--drop", "IPv7,Dot1Q")
	require.ErrorContains(t, err, `unknown ether type: "IPv7"`)
	require.ErrorContains(t, err, `unknown ether type: "Dot1Q"`)

	_, err = execute(t, "-f", path, "--log-level", "kittens")
	require.ErrorContains(t, err, "failed to initialize logger")

	_, err = execute(t, "-f", path, "--log-level", "error", "--on-error", "redirect")
	require.ErrorContains(t, err, `unknown disposition: "redirect"`)

	_, err = execute(t, "-f", filepath.Join(t.TempDir(), "missing.pcap"), "--log-level", "error")
	require.ErrorIs(t, err, os.ErrNotExist)
}
