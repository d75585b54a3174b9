// ethdump reads ethernet frames from a pcap file or a live interface, parses them (including up to two
// stacked VLAN tags) and prints a summary of the frames' dispositions, EtherTypes,
// VLAN states and parsing errors
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
