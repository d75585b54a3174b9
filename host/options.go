package host

import (
	"github.com/els0r/telemetry/logging"
	"github.com/fako1024/slimframe/ethernet"
	"golang.org/x/net/bpf"
)

// Option denotes a functional option for the Host
type Option func(*Host)

// DropEtherTypes causes all (successfully parsed) frames carrying any of the provided
// EtherTypes to be dropped
func DropEtherTypes(types ...ethernet.EtherType) Option {
	return func(h *Host) {
		for _, t := range types {
			h.dropTypes[t] = true
		}
	}
}

// OnError sets the disposition for frames that could not be parsed (default: pass).
// Frames that do not even span an untagged header are always aborted
func OnError(d Disposition) Option {
	return func(h *Host) {
		h.onError = d
	}
}

// ExportMACs sets a log all MAC pairs of successfully parsed frames are exported to
func ExportMACs(l *MACLog) Option {
	return func(h *Host) {
		h.macLog = l
	}
}

// PreFilter sets a classic BPF program run on each frame prior to parsing. Frames
// rejected by the program are dropped without being parsed
func PreFilter(instr []bpf.Instruction) Option {
	return func(h *Host) {
		h.filterInstr = instr
	}
}

// WithLogger sets a custom logger (default: the global logger)
func WithLogger(logger *logging.L) Option {
	return func(h *Host) {
		h.logger = logger
	}
}
