package voice

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

const (
	// CaptureRate is the outbound capture sample rate in Hz
	CaptureRate = 16000
	// PlaybackRate is the inbound synthesized audio sample rate in Hz
	PlaybackRate = 24000
	// FrameSamples is the fixed capture frame size in samples
	FrameSamples = 4096

	bytesPerSample = 2
)

// CaptureMIMEType is the wire mime type tagged on outbound capture frames
const CaptureMIMEType = "audio/pcm;rate=16000"

// Buffer is a decoded block of playable audio, one float32 slice per channel,
// all channels the same length.
type Buffer struct {
	Channels   [][]float32
	SampleRate int
}

// Duration returns the playback duration of the buffer
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate == 0 || len(b.Channels) == 0 {
		return 0
	}
	frames := len(b.Channels[0])
	return time.Duration(float64(frames) / float64(b.SampleRate) * float64(time.Second))
}

// EncodePCM16 converts float samples in [-1, 1] to 16-bit signed little-endian
// PCM. Samples are rounded and clipped to the 16-bit range.
func EncodePCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*bytesPerSample)
	for i, s := range samples {
		v := math.Round(float64(s) * 32768)
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		binary.LittleEndian.PutUint16(out[i*bytesPerSample:], uint16(int16(v)))
	}
	return out
}

// DecodePCM16 reinterprets 16-bit signed little-endian PCM bytes as normalized
// float samples, de-interleaved into numChannels channels. Misaligned input is
// a decode error and the chunk should be dropped.
func DecodePCM16(data []byte, sampleRate, numChannels int) (*Buffer, error) {
	if numChannels < 1 {
		return nil, fmt.Errorf("invalid channel count %d", numChannels)
	}
	if len(data)%(bytesPerSample*numChannels) != 0 {
		return nil, fmt.Errorf("misaligned pcm chunk: %d bytes for %d channels", len(data), numChannels)
	}

	frames := len(data) / bytesPerSample / numChannels
	buf := &Buffer{
		Channels:   make([][]float32, numChannels),
		SampleRate: sampleRate,
	}
	for ch := 0; ch < numChannels; ch++ {
		buf.Channels[ch] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < numChannels; ch++ {
			off := (i*numChannels + ch) * bytesPerSample
			sample := int16(binary.LittleEndian.Uint16(data[off:]))
			buf.Channels[ch][i] = float32(sample) / 32768.0
		}
	}
	return buf, nil
}
