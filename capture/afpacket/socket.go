//go:build linux
// +build linux

package afpacket

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/fako1024/gotools/link"
	"golang.org/x/net/bpf"
	"golang.org/x/sys/unix"
)

var errInvalidSocket = errors.New("invalid socket")

// fileDescriptor denotes an AF_PACKET socket file descriptor
type fileDescriptor int

// socketStats denotes the tpacket_stats structure, c.f.
// https://github.com/torvalds/linux/blob/master/include/uapi/linux/if_packet.h
type socketStats struct {
	Packets uint32
	Drops   uint32
}

// newSocket instantiates a new raw AF_PACKET socket bound to the provided link
func newSocket(iface *link.Link) (fileDescriptor, error) {

	// Setup socket
	sd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, htons(unix.ETH_P_ALL))
	if err != nil {
		return -1, err
	}

	// Bind to selected interface
	if err := unix.Bind(sd, &unix.SockaddrLinklayer{
		Protocol: uint16(htons(unix.ETH_P_ALL)),
		Ifindex:  iface.Index,
	}); err != nil {
		_ = unix.Close(sd)
		return -1, err
	}

	return fileDescriptor(sd), nil
}

// stats returns (and resets) socket / traffic statistics
func (sd fileDescriptor) stats() (ss socketStats, err error) {
	if sd <= 0 {
		err = errInvalidSocket
		return
	}

	sockLen := uint32(unsafe.Sizeof(ss))                                                                                  // #nosec: G103
	err = getsockopt(sd, unix.SOL_PACKET, unix.PACKET_STATISTICS, unsafe.Pointer(&ss), uintptr(unsafe.Pointer(&sockLen))) // #nosec: G103

	return
}

// setPromiscuous adds the promiscuous membership for the provided link to the socket
func (sd fileDescriptor) setPromiscuous(iface *link.Link) error {
	if sd <= 0 {
		return errInvalidSocket
	}

	mReq := unix.PacketMreq{
		Ifindex: int32(iface.Index),
		Type:    unix.PACKET_MR_PROMISC,
	}

	// #nosec: G103
	if err := setsockopt(sd, unix.SOL_PACKET, unix.PACKET_ADD_MEMBERSHIP, unsafe.Pointer(&mReq), unsafe.Sizeof(mReq)); err != nil {
		return fmt.Errorf("failed to set promiscuous mode: %w", err)
	}

	return nil
}

// attachFilter attaches a classic BPF program to the socket
func (sd fileDescriptor) attachFilter(instructions []bpf.RawInstruction) error {
	if sd <= 0 {
		return errInvalidSocket
	}
	if len(instructions) == 0 {
		return nil
	}

	p := unix.SockFprog{
		Len:    uint16(len(instructions)),
		Filter: (*unix.SockFilter)(unsafe.Pointer(&instructions[0])), // #nosec: G103
	}

	// #nosec: G103
	if err := setsockopt(sd, unix.SOL_SOCKET, unix.SO_ATTACH_FILTER, unsafe.Pointer(&p), unix.SizeofSockFprog); err != nil {
		return fmt.Errorf("failed to set BPF filter: %w", err)
	}

	return nil
}

// recvfrom receives a single frame from the socket into buf, returning the number of bytes
// captured and the original length of the frame (MSG_TRUNC semantics)
func (sd fileDescriptor) recvfrom(buf []byte, flags int) (int, int, error) {
	if len(buf) == 0 {
		return 0, 0, errors.New("empty receive buffer")
	}

	n, _, errno := unix.Syscall6(unix.SYS_RECVFROM, uintptr(sd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)), uintptr(flags|unix.MSG_TRUNC), 0, 0) // #nosec: G103
	if errno != 0 {
		return 0, 0, errno
	}

	return min(int(n), len(buf)), int(n), nil
}

func (sd fileDescriptor) close() error {
	return unix.Close(int(sd))
}

func getsockopt(fd fileDescriptor, level, name int, val unsafe.Pointer, vallen uintptr) error {
	if _, _, errno := unix.Syscall6(unix.SYS_GETSOCKOPT, uintptr(fd), uintptr(level), uintptr(name), uintptr(val), vallen, 0); errno != 0 {
		return error(errno)
	}

	return nil
}

func setsockopt(fd fileDescriptor, level, name int, val unsafe.Pointer, vallen uintptr) error {
	if _, _, errno := unix.Syscall6(unix.SYS_SETSOCKOPT, uintptr(fd), uintptr(level), uintptr(name), uintptr(val), vallen, 0); errno != 0 {
		return error(errno)
	}

	return nil
}

func htons(v uint16) int {
	return int((v << 8) | (v >> 8))
}
