//go:build linux
// +build linux

/*
Package afpacket implements a live frame source on top of a plain AF_PACKET socket. Frames are
retrieved one by one via recvfrom() after a blocking PPOLL on both the socket and an event file
descriptor, the latter allowing any ongoing poll to be released (unblocked) or the capture to be
stopped from a different goroutine.
*/
package afpacket

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fako1024/gotools/link"
	"github.com/fako1024/slimframe/capture"
	"github.com/fako1024/slimframe/ethernet"
	"github.com/fako1024/slimframe/filter"
	"golang.org/x/sys/unix"
)

const (
	DefaultSnapLen = (1 << 16) // DefaultSnapLen : 64 kiB

	// filterSnapLen is returned by the socket filter for accepted frames. The kernel trims
	// frames to this length, so it must exceed any frame to retain its original length
	// (the capture length is enforced by the receive buffer instead)
	filterSnapLen = (1 << 18)
)

// Source denotes a plain AF_PACKET frame source
type Source struct {
	fd  fileDescriptor
	efd eventFileDescriptor

	captureLengthFn filter.CaptureLengthStrategy
	snapLen         int
	isPromisc       bool
	etherTypes      []ethernet.EtherType
	filterEnabled   bool
	link            *link.Link

	closed    atomic.Bool
	truncated atomic.Uint64

	buf []byte

	sync.Mutex
}

// NewSource instantiates a new AF_PACKET frame source on the named interface
func NewSource(iface string, options ...Option) (*Source, error) {

	if iface == "" {
		return nil, errors.New("no interface provided")
	}
	l, err := link.New(iface)
	if err != nil {
		return nil, fmt.Errorf("failed to set up link on %s: %w", iface, err)
	}

	return NewSourceFromLink(l, options...)
}

// NewSourceFromLink instantiates a new AF_PACKET frame source taking an existing link instance
func NewSourceFromLink(l *link.Link, options ...Option) (*Source, error) {

	if l == nil {
		return nil, errors.New("no link provided")
	}
	if l.Type != link.TypeEthernet && l.Type != link.TypeLoopback {
		return nil, fmt.Errorf("link %s: %w: %d", l.Name, capture.ErrUnsupportedLinkType, l.Type)
	}

	src := &Source{
		fd:              -1,
		efd:             -1,
		captureLengthFn: filter.CaptureLengthFixed(DefaultSnapLen),
		link:            l,
	}

	for _, opt := range options {
		opt(src)
	}

	src.snapLen = src.captureLengthFn(l)
	if src.snapLen < ethernet.HeaderLenNoVLAN || src.snapLen > DefaultSnapLen {
		return nil, fmt.Errorf("%w: %d", filter.ErrInvalidSnaplen, src.snapLen)
	}

	// Fail if link is not up
	isUp, err := l.IsUp()
	if err != nil {
		return nil, fmt.Errorf("failed to determine state of link %s: %w", l.Name, err)
	}
	if !isUp {
		return nil, fmt.Errorf("link %s: %w", l.Name, link.ErrNotUp)
	}
	src.buf = make([]byte, src.snapLen)

	if src.fd, err = newSocket(l); err != nil {
		return nil, fmt.Errorf("failed to setup AF_PACKET socket on %s: %w", l.Name, err)
	}

	// Setup event file descriptor used for stopping / unblocking the capture
	if src.efd, err = newEventFileDescriptor(); err != nil {
		return nil, errors.Join(err, src.fd.close())
	}

	if err := src.setup(); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to set AF_PACKET socket options on %s: %w", l.Name, err),
			src.fd.close(), src.efd.close())
	}

	return src, nil
}

func (s *Source) setup() error {
	if s.isPromisc {
		if err := s.fd.setPromiscuous(s.link); err != nil {
			return err
		}
	}

	if s.filterEnabled {
		instructions, err := filter.EtherTypesRaw(filterSnapLen, s.etherTypes...)
		if err != nil {
			return err
		}
		if err := s.fd.attachFilter(instructions); err != nil {
			return err
		}
	}

	// Clear socket stats
	_, err := s.fd.stats()
	return err
}

// NewFrame creates an empty buffer frame to be used as destination for the NextFrame() method,
// ensuring that it can hold a frame of the configured capture length
func (s *Source) NewFrame() []byte {
	return make([]byte, s.snapLen)
}

// NextFrame receives the next frame from the source and returns it. The operation is blocking. In
// case a non-nil buffer is provided it will be populated with the data (and returned), otherwise a
// new slice is allocated
func (s *Source) NextFrame(buf []byte) ([]byte, uint32, error) {
	var totalLen uint32
	err := s.NextFrameFn(func(frame []byte, n uint32) error {
		buf = append(buf[:0], frame...)
		totalLen = n
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return buf, totalLen, nil
}

// NextFrameFn executes the provided function on the next frame received on the source. The frame
// data must not be accessed after the function returns
func (s *Source) NextFrameFn(fn func(frame []byte, totalLen uint32) error) error {

	if s.closed.Load() {
		return capture.ErrCaptureStopped
	}

retry:
	efdHasEvent, errno := poll(s.efd, s.fd, unix.POLLIN|unix.POLLERR)

	// If an event was received, ensure that the respective error is returned immediately
	if efdHasEvent {
		return s.handleEvent()
	}

	if errno != 0 {
		if errno == unix.EINTR {
			goto retry
		}
		if s.closed.Load() {
			return capture.ErrCaptureStopped
		}
		return fmt.Errorf("error polling for next frame: %w", errno)
	}

	// Receive a frame from the wire (according to PPOLL there should be at least one, so
	// this does not block)
	n, totalLen, err := s.fd.recvfrom(s.buf, unix.MSG_DONTWAIT)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) {
			goto retry
		}
		if s.closed.Load() {
			return capture.ErrCaptureStopped
		}
		return fmt.Errorf("error receiving next frame from socket: %w", err)
	}
	if n < totalLen {
		s.truncated.Add(1)
	}

	return fn(s.buf[:n], uint32(totalLen))
}

// Stats returns (and clears) the frame counters of the underlying socket
func (s *Source) Stats() (capture.Stats, error) {
	s.Lock()
	defer s.Unlock()

	ss, err := s.fd.stats()
	if err != nil {
		return capture.Stats{}, err
	}

	return capture.Stats{
		FramesReceived:  int(ss.Packets),
		FramesDropped:   int(ss.Drops),
		FramesTruncated: int(s.truncated.Swap(0)),
	}, nil
}

// Link returns the underlying link
func (s *Source) Link() *link.Link {
	return s.link
}

// Snaplen returns the capture length of the source
func (s *Source) Snaplen() int {
	return s.snapLen
}

// Unblock ensures that a potentially ongoing blocking poll operation is released (returning an
// ErrCaptureUnblock from any call to Next*() that might currently be blocked)
func (s *Source) Unblock() error {
	if s == nil || s.closed.Load() {
		return errors.New("cannot call Unblock() on nil / closed capture source")
	}

	return s.efd.signal(signalUnblock)
}

// Close stops / closes the capture source, releasing any ongoing blocking poll operation
func (s *Source) Close() error {
	if s == nil || !s.closed.CompareAndSwap(false, true) {
		return errors.New("cannot call Close() on nil / closed capture source")
	}

	// The socket is closed even if the stop signal fails. The event file descriptor is
	// kept open, a concurrent poll may still refer to it
	return errors.Join(s.efd.signal(signalStop), s.fd.close())
}

// Free releases any pending resources from the capture source (must be called after Close())
func (s *Source) Free() error {
	if s == nil {
		return errors.New("cannot call Free() on nil capture source")
	}
	if !s.closed.Load() {
		return errors.New("cannot call Free() on open capture source, call Close() first")
	}
	if s.efd < 0 {
		return nil
	}

	err := s.efd.close()
	s.efd, s.buf = -1, nil

	return err
}

func (s *Source) handleEvent() error {

	// A concurrent Close() takes precedence over any other event
	if s.closed.Load() {
		return capture.ErrCaptureStopped
	}

	efdData, err := s.efd.read()
	if err != nil {
		return fmt.Errorf("error reading event: %w", err)
	}

	if efdData.isStop() {
		return capture.ErrCaptureStopped
	}
	return capture.ErrCaptureUnblock
}
