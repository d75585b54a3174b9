package slimframe

import "github.com/fako1024/slimframe/ethernet"

// Layer denotes the protocol layer an error originates from
type Layer uint8

const (

	// LayerEthernet denotes errors originating from the ethernet layer
	LayerEthernet Layer = iota + 1
)

// String returns a human-readable name of the layer
func (l Layer) String() string {
	switch l {
	case LayerEthernet:
		return "ethernet"
	}
	return "unknown"
}

// Error denotes the top-level error type, holding exactly one error of the originating layer
type Error struct {
	Layer Layer
	Err   error
}

func (e Error) Error() string {
	if e.Err == nil {
		return e.Layer.String()
	}
	return e.Layer.String() + ": " + e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}

// FromEthernet lifts any error returned by the ethernet package into the top-level error
// type (nil remains nil)
func FromEthernet(err error) error {
	if err == nil {
		return nil
	}
	return Error{
		Layer: LayerEthernet,
		Err:   ethernet.Wrap(err),
	}
}
