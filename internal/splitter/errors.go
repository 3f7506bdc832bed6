package splitter

import "fmt"

// FrameErrorKind classifies why frame enumeration did not produce pages.
type FrameErrorKind int

const (
	// FrameEnumerationUnsupported means the container may hold several frames
	// but the decoder can only read the first one.
	FrameEnumerationUnsupported FrameErrorKind = iota + 1
	// FrameDecodeFailed means a frame could not be decoded or re-encoded.
	FrameDecodeFailed
)

func (k FrameErrorKind) String() string {
	switch k {
	case FrameEnumerationUnsupported:
		return "frame enumeration unsupported"
	case FrameDecodeFailed:
		return "frame decode failed"
	default:
		return "unknown frame error"
	}
}

// FrameError is returned by frame enumeration. Split recovers from it by
// falling back to a single page.
type FrameError struct {
	Kind   FrameErrorKind
	Format string
	Frame  int // 1-indexed, 0 when not tied to a frame
	Err    error
}

func (e *FrameError) Error() string {
	if e.Frame > 0 {
		return fmt.Sprintf("%s: %s (frame %d): %v", e.Format, e.Kind, e.Frame, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Format, e.Kind, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
