//go:build linux
// +build linux

package afpacket

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// eventFileDescriptor denotes a system-level event file descriptor, used to release
// a blocking poll on the socket
type eventFileDescriptor int

// eventData denotes the data sent / received during an event
type eventData [8]byte

var (

	// signalUnblock ends any ongoing PPOLL syscall (similar to a timeout)
	signalUnblock = eventData{1, 0, 0, 0, 0, 0, 0, 0}

	// signalStop causes the capture to stop
	signalStop = eventData{0, 0, 0, 0, 0, 0, 0, 1}
)

// newEventFileDescriptor instantiates a new non-blocking event file descriptor
func newEventFileDescriptor() (eventFileDescriptor, error) {
	efd, err := unix.Eventfd(0, unix.EFD_NONBLOCK)
	if err != nil {
		return -1, fmt.Errorf("failed to create event file descriptor: %w", err)
	}

	return eventFileDescriptor(efd), nil
}

// signal sends an event via the event file descriptor
func (e eventFileDescriptor) signal(data eventData) error {
	n, err := unix.Write(int(e), data[:])
	if err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("failed to send event (unexpected number of bytes written, want %d, have %d)", len(data), n)
	}

	return nil
}

// read reads the (accumulated) event data from the event file descriptor
func (e eventFileDescriptor) read() (eventData, error) {
	var data eventData
	n, err := unix.Read(int(e), data[:])
	if err != nil {
		return data, fmt.Errorf("failed to read event data: %w", err)
	}
	if n != len(data) {
		return data, fmt.Errorf("failed to read event data (unexpected number of bytes read, want %d, have %d)", len(data), n)
	}

	return data, nil
}

func (e eventFileDescriptor) close() error {
	return unix.Close(int(e))
}

// isStop determines if the (accumulated) event data contains a stop signal
func (d eventData) isStop() bool {
	return d[7] > 0
}

// poll polls (blocking, hence no timeout) for events on the socket and the event file
// descriptor (waiting for a POLLIN event on the latter)
func poll(efd eventFileDescriptor, fd fileDescriptor, events int16) (hasEvent bool, errno unix.Errno) {
	pollEvents := [...]unix.PollFd{
		{
			Fd:     int32(efd),
			Events: unix.POLLIN,
		},
		{
			Fd:     int32(fd),
			Events: events,
		},
	}

	if _, err := unix.Ppoll(pollEvents[:], nil, nil); err != nil {
		if en, ok := err.(unix.Errno); ok {
			return false, en
		}
		return false, unix.EINVAL
	}
	if pollEvents[1].Revents&(unix.POLLHUP|unix.POLLERR) != 0 {
		errno = unix.ECONNRESET
	}

	return pollEvents[0].Revents&unix.POLLIN != 0, errno
}
