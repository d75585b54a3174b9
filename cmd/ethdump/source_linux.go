//go:build linux
// +build linux

package main

import (
	"fmt"

	"github.com/fako1024/slimframe/capture/afpacket"
)

type liveSource struct {
	*afpacket.Source
}

// Close closes the capture and releases its resources
func (s liveSource) Close() error {
	if err := s.Source.Close(); err != nil {
		return err
	}

	return s.Free()
}

func openLiveSource(cfg config) (frameSource, error) {
	captureLen, err := parseCaptureLength(cfg.captureLen)
	if err != nil {
		return nil, err
	}

	opts := []afpacket.Option{
		afpacket.CaptureLength(captureLen),
		afpacket.Promiscuous(cfg.promisc),
	}
	if len(cfg.only) > 0 {
		types, err := parseEtherTypes(cfg.only)
		if err != nil {
			return nil, err
		}
		opts = append(opts, afpacket.EtherTypes(types...))
	}

	src, err := afpacket.NewSource(cfg.iface, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to capture on `%s`: %w", cfg.iface, err)
	}

	return liveSource{src}, nil
}
