package repositories

import "context"

// LiveConfig describes the streaming voice connection to establish
type LiveConfig struct {
	Model             string `json:"model"`
	SystemInstruction string `json:"system_instruction"`
	VoiceName         string `json:"voice_name"`
	// OutputTranscription requests partial transcripts of synthesized speech
	OutputTranscription bool `json:"output_transcription"`
}

// MediaFrame is one outbound capture frame in the live wire format
type MediaFrame struct {
	// Data is base64-encoded 16-bit little-endian PCM
	Data     string `json:"data"`
	MIMEType string `json:"mimeType"`
}

// LiveEventType discriminates events arriving from the live stream
type LiveEventType string

const (
	LiveEventAudio      LiveEventType = "audio"
	LiveEventTranscript LiveEventType = "transcript"
	LiveEventError      LiveEventType = "error"
	LiveEventClosed     LiveEventType = "closed"
)

// LiveEvent is a single event delivered by a live stream. Audio carries raw
// 16-bit little-endian PCM at the stream's playback rate.
type LiveEvent struct {
	Type       LiveEventType
	Audio      []byte
	Transcript string
	Err        error
}

// LiveStream is one established bidirectional voice connection. Events is
// closed after a closed or error event is delivered.
type LiveStream interface {
	// Send transmits one capture frame. A send failure indicates transport
	// failure and the caller is expected to tear the session down.
	Send(frame MediaFrame) error
	Events() <-chan LiveEvent
	Close() error
}

// LiveTransport abstracts the streaming voice endpoint. Connect blocks until
// the transport-level handshake completes; its return is the open signal.
type LiveTransport interface {
	Connect(ctx context.Context, cfg LiveConfig) (LiveStream, error)
}
