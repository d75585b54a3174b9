package host

import (
	"net"
	"sync"
)

// DefaultMACLogSize denotes the default capacity of a MACLog
const DefaultMACLogSize = 1024

// MACPair denotes the addresses of a single frame as exported to a MACLog
type MACPair struct {
	Destination [6]byte
	Source      [6]byte
}

func (p MACPair) String() string {
	return net.HardwareAddr(p.Source[:]).String() + " -> " + net.HardwareAddr(p.Destination[:]).String()
}

// MACLog denotes a fixed capacity log of MAC pairs shared between the frame handler
// and its consumers. Once full, the oldest entries are overwritten
type MACLog struct {
	entries []MACPair
	next    int
	total   uint64

	sync.Mutex
}

// NewMACLog instantiates a new MACLog holding up to size entries
func NewMACLog(size int) *MACLog {
	if size <= 0 {
		size = DefaultMACLogSize
	}
	return &MACLog{
		entries: make([]MACPair, 0, size),
	}
}

// Add appends a MAC pair to the log
func (l *MACLog) Add(pair MACPair) {
	l.Lock()
	defer l.Unlock()

	if len(l.entries) < cap(l.entries) {
		l.entries = append(l.entries, pair)
	} else {
		l.entries[l.next] = pair
	}
	l.next = (l.next + 1) % cap(l.entries)
	l.total++
}

// Snapshot returns a copy of the entries currently held, oldest first
func (l *MACLog) Snapshot() []MACPair {
	l.Lock()
	defer l.Unlock()

	res := make([]MACPair, 0, len(l.entries))
	if len(l.entries) < cap(l.entries) {
		return append(res, l.entries...)
	}
	res = append(res, l.entries[l.next:]...)
	return append(res, l.entries[:l.next]...)
}

// Len returns the number of entries currently held
func (l *MACLog) Len() int {
	l.Lock()
	defer l.Unlock()
	return len(l.entries)
}

// Total returns the overall number of entries ever added
func (l *MACLog) Total() uint64 {
	l.Lock()
	defer l.Unlock()
	return l.total
}
