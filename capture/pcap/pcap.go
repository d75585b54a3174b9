// Package pcap provides a frame source reading classic pcap files, handing out the raw
// ethernet frames contained in them without copying where possible
package pcap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/fako1024/gotools/link"
	"github.com/fako1024/slimframe/capture"
)

// Source denotes a pcap file frame source
type Source struct {
	io.Reader

	header Header
	buf    []byte

	link *link.Link

	nFrames       int
	nTruncated    int
	swapEndianess bool
}

// NewSource instantiates a new pcap file frame source based on any io.Reader
func NewSource(name string, r io.Reader) (*Source, error) {

	if r == nil {
		return nil, errors.New("nil io.Reader provided")
	}
	obj := Source{
		Reader: r,
		buf:    make([]byte, HeaderSize),
	}

	// Parse the main header
	if err := obj.read(obj.buf); err != nil {
		return nil, err
	}

	// If required, swap endianess as defined here:
	// https://wiki.wireshark.org/Development/LibpcapFileFormat
	obj.header = *(*Header)(unsafe.Pointer(&obj.buf[0]))
	if obj.header.MagicNumber == MagicSwappedEndianess || obj.header.MagicNumber == MagicSwappedEndianessNano {
		obj.header = obj.header.SwapEndianess()
		obj.swapEndianess = true
	}

	// After swapping, the header magic must be valid
	if obj.header.MagicNumber != MagicNativeEndianess && obj.header.MagicNumber != MagicNativeEndianessNano {
		return nil, fmt.Errorf("invalid pcap header magic: %x", obj.header.MagicNumber)
	}

	// Only ethernet frames can be handed to the frame parser
	linkType := link.Type(obj.header.Network)
	if linkType != link.TypeEthernet {
		return nil, fmt.Errorf("%w: %d", capture.ErrUnsupportedLinkType, obj.header.Network)
	}

	// Populate (fake) link information
	obj.link = &link.Link{
		Name: name,
		Type: linkType,
	}

	return &obj, nil
}

// NewSourceFromFile instantiates a new pcap file frame source based on a file name
func NewSourceFromFile(path string) (*Source, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	src, err := NewSource(filepath.Base(path), f)
	if err != nil {
		return nil, errors.Join(err, f.Close())
	}

	return src, nil
}

// NewFrame creates an empty buffer frame to be used as destination for NextFrame(),
// large enough to hold any frame of the file
func (s *Source) NewFrame() []byte {
	return make([]byte, 0, min(int(s.header.Snaplen), MaxCaptureLen))
}

// NextFrame receives the next frame from the source and returns it. In case a non-nil
// buffer of sufficient capacity is provided it will be populated with the data (and
// returned). The buffer can be reused. Otherwise a new buffer is allocated
func (s *Source) NextFrame(buf []byte) ([]byte, uint32, error) {

	pktHeader, err := s.nextPacket()
	if err != nil {
		return nil, 0, err
	}

	if cap(buf) < len(s.buf) {
		buf = make([]byte, len(s.buf))
	}
	buf = buf[:len(s.buf)]
	copy(buf, s.buf)

	return buf, uint32(pktHeader.OriginalLen), nil
}

// NextFrameFn executes the provided function on the next frame received on the source.
// The frame is provided without copying: all operations on the data must be completed
// prior to any subsequent call to any Next*() method
func (s *Source) NextFrameFn(fn func(frame []byte, totalLen uint32) error) error {

	pktHeader, err := s.nextPacket()
	if err != nil {
		return err
	}

	return fn(s.buf, uint32(pktHeader.OriginalLen))
}

// Stats returns (and clears) the frame counters of the underlying source
func (s *Source) Stats() (capture.Stats, error) {
	stats := capture.Stats{
		FramesReceived:  s.nFrames,
		FramesTruncated: s.nTruncated,
	}
	s.nFrames, s.nTruncated = 0, 0
	return stats, nil
}

// Link returns the underlying link
func (s *Source) Link() *link.Link {
	return s.link
}

// Snaplen returns the capture length of the file
func (s *Source) Snaplen() int {
	return int(s.header.Snaplen)
}

// Close stops / closes the frame source
func (s *Source) Close() error {
	if readCloser, ok := s.Reader.(io.ReadCloser); ok {
		return readCloser.Close()
	}
	return nil
}

////////////////////////////////////////////////////////////////////////

func (s *Source) nextPacket() (pktHeader PacketHeader, err error) {
	pktHeader, err = s.nextPacketHeader()
	if err != nil {
		return
	}
	if s.swapEndianess {
		pktHeader = pktHeader.SwapEndianess()
	}

	if pktHeader.CaptureLen < 0 || pktHeader.CaptureLen > MaxCaptureLen {
		return PacketHeader{}, fmt.Errorf("invalid frame capture length: %d", pktHeader.CaptureLen)
	}

	if err = s.nextPacketData(int(pktHeader.CaptureLen)); err == nil {
		s.nFrames++
		if pktHeader.OriginalLen > pktHeader.CaptureLen {
			s.nTruncated++
		}
	}

	return
}

func (s *Source) nextPacketHeader() (PacketHeader, error) {
	if err := s.read(s.buf[:PacketHeaderSize]); err != nil {
		return PacketHeader{}, err
	}
	return *(*PacketHeader)(unsafe.Pointer(&s.buf[0])), nil
}

func (s *Source) nextPacketData(snapLen int) error {
	if cap(s.buf) < snapLen {
		s.buf = make([]byte, snapLen)
	}
	s.buf = s.buf[:snapLen]

	return s.read(s.buf)
}

func (s *Source) read(buf []byte) error {
	n, err := io.ReadAtLeast(s.Reader, buf, len(buf))
	if err != nil {
		return err
	}
	if n != len(buf) {
		return fmt.Errorf("unexpected number of bytes read, want %d, have %d", len(buf), n)
	}
	return nil
}
