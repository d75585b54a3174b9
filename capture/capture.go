package capture

import "errors"

var (

	// ErrCaptureStopped denotes that the capture was stopped
	ErrCaptureStopped error = errors.New("capture was stopped")

	// ErrCaptureUnblock denotes that the capture was released / unblocked
	ErrCaptureUnblock error = errors.New("capture was released / unblocked")

	// ErrUnsupportedLinkType denotes a source not providing ethernet frames
	ErrUnsupportedLinkType = errors.New("unsupported link type (ethernet required)")
)

// Stats denotes a frame source stats structure providing basic counters
type Stats struct {
	FramesReceived  int
	FramesDropped   int
	FramesTruncated int
}

// Source denotes a generic source of raw ethernet frames, consumed by the hosting
// collaborator of the frame parser
type Source interface {

	// NextFrame receives the next frame from the source and returns its raw data
	// (including all layers) along with its original length on the wire. In case a
	// non-nil buffer with sufficient capacity is provided it is used as destination
	// Note: This method returns a copy of the underlying data
	NextFrame(buf []byte) ([]byte, uint32, error)

	// NextFrameFn executes the provided function on the next frame received on the
	// source. All operations on the data must be completed before the function returns
	// Note: If possible, the method will perform a zero-copy operation
	NextFrameFn(func(frame []byte, totalLen uint32) error) error

	// Stats returns (and clears) the frame counters of the source
	Stats() (Stats, error)

	// Close stops / closes the source
	Close() error
}

// Limit wraps a source such that it is stopped (returning ErrCaptureStopped) once n frames
// have been received
func Limit(src Source, n int) Source {
	return &limitedSource{
		Source:    src,
		remaining: n,
	}
}

type limitedSource struct {
	Source

	remaining int
}

func (s *limitedSource) NextFrame(buf []byte) ([]byte, uint32, error) {
	if s.remaining <= 0 {
		return nil, 0, ErrCaptureStopped
	}
	s.remaining--

	return s.Source.NextFrame(buf)
}

func (s *limitedSource) NextFrameFn(fn func(frame []byte, totalLen uint32) error) error {
	if s.remaining <= 0 {
		return ErrCaptureStopped
	}
	s.remaining--

	return s.Source.NextFrameFn(fn)
}
