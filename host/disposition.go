package host

import (
	"fmt"
	"strings"
)

// Disposition denotes the verdict on a frame, mirroring the actions of an XDP program
type Disposition uint8

const (

	// DispositionPass denotes a frame that is passed on
	DispositionPass Disposition = iota

	// DispositionDrop denotes a frame that is dropped
	DispositionDrop

	// DispositionAborted denotes a frame whose processing was aborted
	DispositionAborted
)

var dispositionNames = [...]string{
	DispositionPass:    "pass",
	DispositionDrop:    "drop",
	DispositionAborted: "aborted",
}

func (d Disposition) String() string {
	if int(d) < len(dispositionNames) {
		return dispositionNames[d]
	}
	return "unknown"
}

// ParseDisposition returns the disposition matching the provided name
func ParseDisposition(name string) (Disposition, error) {
	for d, n := range dispositionNames {
		if strings.EqualFold(n, name) {
			return Disposition(d), nil
		}
	}
	return 0, fmt.Errorf("unknown disposition: %q", name)
}
