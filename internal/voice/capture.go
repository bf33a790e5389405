package voice

import (
	"encoding/base64"

	"github.com/ashumnni/juris-ai/domain/repositories"
)

// frameEncoder segments capture samples into fixed-size frames and encodes
// them into the outbound wire format. Not safe for concurrent use; the owning
// session serializes access.
type frameEncoder struct {
	frameSamples int
	pending      []float32
}

func newFrameEncoder(frameSamples int) *frameEncoder {
	return &frameEncoder{frameSamples: frameSamples}
}

// Push accumulates samples and returns one encoded frame per completed
// frameSamples boundary. A partial tail is held until the next push.
func (e *frameEncoder) Push(samples []float32) []repositories.MediaFrame {
	e.pending = append(e.pending, samples...)

	var frames []repositories.MediaFrame
	for len(e.pending) >= e.frameSamples {
		frame := e.pending[:e.frameSamples]
		e.pending = e.pending[e.frameSamples:]
		frames = append(frames, repositories.MediaFrame{
			Data:     base64.StdEncoding.EncodeToString(EncodePCM16(frame)),
			MIMEType: CaptureMIMEType,
		})
	}
	if len(frames) > 0 {
		// Reslice the tail into fresh storage so the consumed backing array
		// is not pinned between frames.
		tail := make([]float32, len(e.pending))
		copy(tail, e.pending)
		e.pending = tail
	}
	return frames
}

// Reset discards any buffered partial frame
func (e *frameEncoder) Reset() {
	e.pending = nil
}
