package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sort"
	"strings"

	"github.com/els0r/telemetry/logging"
	"github.com/fako1024/gotools/link"
	"github.com/fako1024/slimframe/capture"
	"github.com/fako1024/slimframe/capture/pcap"
	"github.com/fako1024/slimframe/ethernet"
	"github.com/fako1024/slimframe/filter"
	"github.com/fako1024/slimframe/host"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

type config struct {
	file       string
	iface      string
	promisc    bool
	captureLen string
	maxFrames  int
	logLevel   string
	drop       []string
	only       []string
	onError    string
	macLogSize int
	showMACs   bool
}

func newRootCommand() *cobra.Command {
	var cfg config

	cmd := &cobra.Command{
		Use:           "ethdump",
		Short:         "Parse the ethernet frames of a pcap file or a live interface and summarize them",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.file, "file", "f", "", "pcap file to read frames from")
	flags.StringVarP(&cfg.iface, "interface", "i", "", "interface to capture frames on (linux only)")
	flags.BoolVar(&cfg.promisc, "promisc", false, "enable promiscuous mode on the capture interface")
	flags.StringVar(&cfg.captureLen, "capture-length", "full", "capture length on the capture interface ("+strings.Join(captureLengthNames(), ", ")+")")
	flags.IntVarP(&cfg.maxFrames, "max-frames", "n", 0, "maximum number of frames to process (0: all)")
	flags.StringVar(&cfg.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringSliceVar(&cfg.drop, "drop", nil, "EtherTypes to drop (e.g. IPv6,ARP)")
	flags.StringSliceVar(&cfg.only, "only", nil, "EtherTypes to accept on pre-filter level, all others are dropped")
	flags.StringVar(&cfg.onError, "on-error", host.DispositionPass.String(), "disposition of frames failing to parse (pass, drop, aborted)")
	flags.IntVar(&cfg.macLogSize, "mac-log-size", host.DefaultMACLogSize, "number of MAC pairs to keep")
	flags.BoolVar(&cfg.showMACs, "macs", false, "print the MAC pairs of the most recent frames")
	cmd.MarkFlagsOneRequired("file", "interface")
	cmd.MarkFlagsMutuallyExclusive("file", "interface")

	return cmd
}

func run(cmd *cobra.Command, cfg config) error {
	shutdown, err := logging.Init(logging.LevelFromString(cfg.logLevel), logging.EncodingLogfmt,
		logging.WithOutput(cmd.ErrOrStderr()),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = shutdown()
	}()
	logger := logging.Logger()

	opts, err := cfg.hostOptions()
	if err != nil {
		return err
	}
	macLog := host.NewMACLog(cfg.macLogSize)
	opts = append(opts, host.ExportMACs(macLog), host.WithLogger(logger))

	src, err := cfg.openSource()
	if err != nil {
		return err
	}
	name := src.Link().Name

	defer func() {
		if err := src.Close(); err != nil {
			logger.Errorf("failed to close `%s`: %s", name, err)
		}
	}()

	// A blocking live capture is released once the context is done
	if u, ok := src.(unblocker); ok {
		stop := context.AfterFunc(cmd.Context(), func() {
			if err := u.Unblock(); err != nil {
				logger.Errorf("failed to unblock capture on `%s`: %s", name, err)
			}
		})
		defer stop()
	}

	if minLen := filter.CaptureLengthMinimalHeader(src.Link()); src.Snaplen() < minLen {
		logger.Warnf("capture length of `%s` (%d) below %d bytes, VLAN tagged frames may not be parsed", name, src.Snaplen(), minLen)
	}

	// Live sources apply the EtherType filter in the kernel already
	if len(cfg.only) > 0 && cfg.file != "" {
		types, err := parseEtherTypes(cfg.only)
		if err != nil {
			return err
		}
		instr, err := filter.EtherTypes(src.Snaplen(), types...)
		if err != nil {
			return fmt.Errorf("failed to generate pre-filter: %w", err)
		}
		opts = append(opts, host.PreFilter(instr))
	}

	h, err := host.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to set up frame handler: %w", err)
	}

	var frameSrc capture.Source = src
	if cfg.maxFrames > 0 {
		frameSrc = capture.Limit(src, cfg.maxFrames)
	}

	logger.Infof("reading frames from `%s`", name)
	stats, err := h.Run(cmd.Context(), frameSrc)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to process `%s`: %w", name, err)
	}

	srcStats, err := src.Stats()
	if err != nil {
		logger.Warnf("failed to retrieve capture statistics of `%s`: %s", name, err)
	}

	printCaptureStats(cmd.OutOrStdout(), srcStats)
	printStats(cmd.OutOrStdout(), stats)
	if cfg.showMACs {
		printMACs(cmd.OutOrStdout(), macLog)
	}

	return nil
}

// frameSource denotes a frame source providing access to its link and capture length
type frameSource interface {
	capture.Source

	Link() *link.Link
	Snaplen() int
}

type unblocker interface {
	Unblock() error
}

func (cfg config) openSource() (frameSource, error) {
	if cfg.iface != "" {
		return openLiveSource(cfg)
	}

	src, err := pcap.NewSourceFromFile(cfg.file)
	if err != nil {
		return nil, fmt.Errorf("failed to open `%s`: %w", cfg.file, err)
	}

	return src, nil
}

const fullCaptureLen = 1 << 16

var captureLengths = map[string]filter.CaptureLengthStrategy{
	"full":           filter.CaptureLengthFixed(fullCaptureLen),
	"header":         filter.CaptureLengthMinimalHeader,
	"ipv4":           filter.CaptureLengthMinimalIPv4Header,
	"ipv6":           filter.CaptureLengthMinimalIPv6Header,
	"ipv4-transport": filter.CaptureLengthMinimalIPv4Transport,
	"ipv6-transport": filter.CaptureLengthMinimalIPv6Transport,
}

func captureLengthNames() []string {
	names := make([]string, 0, len(captureLengths))
	for name := range captureLengths {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func parseCaptureLength(name string) (filter.CaptureLengthStrategy, error) {
	strategy, exists := captureLengths[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("unknown capture length: %q", name)
	}

	return strategy, nil
}

func (cfg config) hostOptions() ([]host.Option, error) {
	onError, err := host.ParseDisposition(cfg.onError)
	if err != nil {
		return nil, err
	}
	opts := []host.Option{host.OnError(onError)}

	if len(cfg.drop) > 0 {
		types, err := parseEtherTypes(cfg.drop)
		if err != nil {
			return nil, err
		}
		opts = append(opts, host.DropEtherTypes(types...))
	}

	return opts, nil
}

func parseEtherTypes(names []string) ([]ethernet.EtherType, error) {
	var (
		types = make([]ethernet.EtherType, 0, len(names))
		errs  []error
	)
	for _, name := range names {
		t, err := ethernet.ParseEtherType(strings.TrimSpace(name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		types = append(types, t)
	}

	return types, errors.Join(errs...)
}

func printCaptureStats(w io.Writer, stats capture.Stats) {
	table := uitable.New()
	table.AddRow("CAPTURED", "DROPPED", "TRUNCATED")
	table.AddRow(stats.FramesReceived, stats.FramesDropped, stats.FramesTruncated)
	fmt.Fprintln(w, table)
	fmt.Fprintln(w)
}

func printStats(w io.Writer, stats host.Stats) {
	table := uitable.New()
	table.AddRow("FRAMES", "PASSED", "DROPPED", "ABORTED", "FILTERED")
	table.AddRow(stats.Frames, stats.Passed, stats.Dropped, stats.Aborted, stats.Filtered)
	fmt.Fprintln(w, table)

	if len(stats.EtherTypes) > 0 {
		table = uitable.New()
		table.AddRow("")
		table.AddRow("ETHER TYPE", "CODE", "FRAMES")
		types := make([]ethernet.EtherType, 0, len(stats.EtherTypes))
		for t := range stats.EtherTypes {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool {
			return stats.EtherTypes[types[i]] > stats.EtherTypes[types[j]] ||
				(stats.EtherTypes[types[i]] == stats.EtherTypes[types[j]] && types[i] < types[j])
		})
		for _, t := range types {
			table.AddRow(t, fmt.Sprintf("0x%04X", t.Code()), stats.EtherTypes[t])
		}
		fmt.Fprintln(w, table)
	}

	if len(stats.VLAN) > 0 {
		table = uitable.New()
		table.AddRow("")
		table.AddRow("VLAN", "FRAMES")
		for _, state := range []ethernet.VLANState{ethernet.VLANNone, ethernet.VLANSingleTagged, ethernet.VLANDoubleTagged} {
			if n, exists := stats.VLAN[state]; exists {
				table.AddRow(state, n)
			}
		}
		fmt.Fprintln(w, table)
	}

	if len(stats.Errors) > 0 {
		table = uitable.New()
		table.AddRow("")
		table.AddRow("ERROR", "FRAMES")
		kinds := make([]ethernet.Kind, 0, len(stats.Errors))
		for kind := range stats.Errors {
			kinds = append(kinds, kind)
		}
		sort.Slice(kinds, func(i, j int) bool {
			return kinds[i] < kinds[j]
		})
		for _, kind := range kinds {
			table.AddRow(kind.Error(), stats.Errors[kind])
		}
		fmt.Fprintln(w, table)
	}
}

func printMACs(w io.Writer, macLog *host.MACLog) {
	table := uitable.New()
	table.AddRow("")
	table.AddRow("SOURCE", "DESTINATION")
	for _, pair := range macLog.Snapshot() {
		table.AddRow(net.HardwareAddr(pair.Source[:]), net.HardwareAddr(pair.Destination[:]))
	}
	fmt.Fprintln(w, table)
}
