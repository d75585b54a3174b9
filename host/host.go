// Package host provides the hosting environment of the frame parser: it hands frames
// from a capture source to the parser, decides a disposition for each frame (just like
// an XDP program would), exports MAC pairs and keeps track of per-frame statistics
package host

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"sync/atomic"

	"github.com/els0r/telemetry/logging"
	"github.com/fako1024/slimframe"
	"github.com/fako1024/slimframe/capture"
	"github.com/fako1024/slimframe/ethernet"
	"golang.org/x/net/bpf"
)

const nSlots = 256

// Stats denotes the counters of a Host
type Stats struct {
	Frames   uint64
	Passed   uint64
	Dropped  uint64
	Aborted  uint64
	Filtered uint64

	VLAN       map[ethernet.VLANState]uint64
	EtherTypes map[ethernet.EtherType]uint64
	Errors     map[ethernet.Kind]uint64
}

// Host denotes a frame handler, safe for concurrent use
type Host struct {
	dropTypes   [nSlots]bool
	onError     Disposition
	macLog      *MACLog
	filterInstr []bpf.Instruction
	filter      *bpf.VM

	logger *logging.L

	frames       atomic.Uint64
	filtered     atomic.Uint64
	dispositions [nSlots]atomic.Uint64
	vlan         [nSlots]atomic.Uint64
	etherTypes   [nSlots]atomic.Uint64
	errors       [nSlots]atomic.Uint64
}

// New instantiates a new Host
func New(options ...Option) (*Host, error) {
	h := &Host{
		onError: DispositionPass,
	}
	for _, opt := range options {
		opt(h)
	}

	if h.onError > DispositionAborted {
		return nil, fmt.Errorf("invalid error disposition: %d", h.onError)
	}
	if h.filterInstr != nil {
		vm, err := bpf.NewVM(h.filterInstr)
		if err != nil {
			return nil, fmt.Errorf("failed to set up pre-filter: %w", err)
		}
		h.filter = vm
	}
	if h.logger == nil {
		h.logger = logging.Logger()
	}

	return h, nil
}

// Handle parses a single frame and decides its disposition. In case the frame could
// not be parsed, the (top-level) parsing error is returned alongside the disposition
func (h *Host) Handle(buf []byte) (Disposition, error) {
	h.frames.Add(1)

	if h.filter != nil {
		n, err := h.filter.Run(buf)
		if err != nil {
			return h.decide(DispositionAborted), fmt.Errorf("failed to run pre-filter: %w", err)
		}
		if n == 0 {
			h.filtered.Add(1)
			return h.decide(DispositionDrop), nil
		}
	}

	frame, _, err := slimframe.Parse(buf, ethernet.End(buf))
	if err != nil {
		return h.decide(h.onParseError(err)), err
	}

	dst, err := frame.Destination()
	if err != nil {
		err = slimframe.FromEthernet(err)
		return h.decide(h.onParseError(err)), err
	}
	src, err := frame.Source()
	if err != nil {
		err = slimframe.FromEthernet(err)
		return h.decide(h.onParseError(err)), err
	}

	rawEtherType, err := frame.RawEtherType()
	if err != nil {
		err = slimframe.FromEthernet(err)
		return h.decide(h.onParseError(err)), err
	}

	etherType := frame.EtherType()
	h.logger.Debugf("dst: %s, ether type: 0x%04X (%s), vlan: %s",
		net.HardwareAddr(dst[:]), binary.BigEndian.Uint16(rawEtherType[:]), etherType, frame.VLAN())

	if h.macLog != nil {
		h.macLog.Add(MACPair{
			Destination: *dst,
			Source:      *src,
		})
	}
	h.vlan[frame.VLAN()].Add(1)
	h.etherTypes[etherType].Add(1)

	if h.dropTypes[etherType] {
		return h.decide(DispositionDrop), nil
	}

	return h.decide(DispositionPass), nil
}

// Run consumes all frames from the provided source until it is exhausted (or stopped)
// or the context is cancelled, returning the statistics of the run. An unblocked source
// only causes the context to be checked again
func (h *Host) Run(ctx context.Context, src capture.Source) (Stats, error) {

	handleFn := func(frame []byte, _ uint32) error {

		// Parsing errors are accounted for, they do not stop the run
		_, _ = h.Handle(frame)
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return h.Stats(), ctx.Err()
		default:
		}

		if err := src.NextFrameFn(handleFn); err != nil {
			if errors.Is(err, capture.ErrCaptureUnblock) {
				continue
			}
			if errors.Is(err, io.EOF) || errors.Is(err, capture.ErrCaptureStopped) {
				stats := h.Stats()
				h.logger.Infof("processed %d frames (passed: %d, dropped: %d, aborted: %d)",
					stats.Frames, stats.Passed, stats.Dropped, stats.Aborted)
				return stats, nil
			}
			return h.Stats(), fmt.Errorf("failed to read frame: %w", err)
		}
	}
}

// Stats returns a snapshot of the counters of the Host
func (h *Host) Stats() Stats {
	stats := Stats{
		Frames:     h.frames.Load(),
		Passed:     h.dispositions[DispositionPass].Load(),
		Dropped:    h.dispositions[DispositionDrop].Load(),
		Aborted:    h.dispositions[DispositionAborted].Load(),
		Filtered:   h.filtered.Load(),
		VLAN:       make(map[ethernet.VLANState]uint64),
		EtherTypes: make(map[ethernet.EtherType]uint64),
		Errors:     make(map[ethernet.Kind]uint64),
	}

	for i := 0; i < nSlots; i++ {
		if n := h.vlan[i].Load(); n > 0 {
			stats.VLAN[ethernet.VLANState(i)] = n
		}
		if n := h.etherTypes[i].Load(); n > 0 {
			stats.EtherTypes[ethernet.EtherType(i)] = n
		}
		if n := h.errors[i].Load(); n > 0 {
			stats.Errors[ethernet.Kind(i)] = n
		}
	}

	return stats
}

////////////////////////////////////////////////////////////////////////

func (h *Host) decide(d Disposition) Disposition {
	h.dispositions[d].Add(1)
	return d
}

// onParseError accounts for a parsing error and determines the resulting disposition
func (h *Host) onParseError(err error) Disposition {
	var kind ethernet.Kind
	if !errors.As(err, &kind) {
		return DispositionAborted
	}
	h.errors[kind].Add(1)
	h.logger.Debugf("failed to parse frame (%s): %s", kind, err)

	// Frames not even spanning an untagged header (or exceeding the data boundary)
	// cannot be handed on
	if kind == ethernet.ErrFrameTooShort || kind == ethernet.ErrDataEndExceeded {
		return DispositionAborted
	}

	return h.onError
}
