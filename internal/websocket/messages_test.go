package websocket

import (
	"encoding/json"
	"testing"

	"github.com/ashumnni/juris-ai/domain/entities"
)

func TestParseClientMessage(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantType MessageType
		wantErr  bool
	}{
		{
			name:     "consultation start",
			message:  `{"type": "consultation_start"}`,
			wantType: MessageTypeConsultationStart,
		},
		{
			name:     "consultation stop",
			message:  `{"type": "consultation_stop", "timestamp": "2026-01-01T00:00:00Z"}`,
			wantType: MessageTypeConsultationStop,
		},
		{
			name:    "missing type",
			message: `{"timestamp": "2026-01-01T00:00:00Z"}`,
			wantErr: true,
		},
		{
			name:    "server-only type rejected",
			message: `{"type": "transcript"}`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			message: `{"type": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgType, err := ParseClientMessage([]byte(tt.message))
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseClientMessage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && msgType != tt.wantType {
				t.Errorf("ParseClientMessage() type = %s, want %s", msgType, tt.wantType)
			}
		})
	}
}

func TestCreateConsultationStartedMessage(t *testing.T) {
	msg := CreateConsultationStartedMessage("session-1", 16000, 24000)

	if msg.Type != MessageTypeConsultationStarted {
		t.Errorf("unexpected type %s", msg.Type)
	}
	if msg.SessionID != "session-1" {
		t.Errorf("unexpected session id %s", msg.SessionID)
	}
	if msg.CaptureRate != 16000 || msg.PlaybackRate != 24000 {
		t.Errorf("unexpected rates %d/%d", msg.CaptureRate, msg.PlaybackRate)
	}
	if msg.Timestamp == "" {
		t.Error("timestamp should be set")
	}
}

func TestCreateTranscriptMessageRoundTrip(t *testing.T) {
	entry := entities.TranscriptEntry{Role: entities.SpeakerCounsel, Text: "The notice period is 60 days."}
	msg := CreateTranscriptMessage("session-1", entry)

	payload, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["type"] != string(MessageTypeTranscript) {
		t.Errorf("unexpected type %v", decoded["type"])
	}
	if decoded["role"] != string(entities.SpeakerCounsel) {
		t.Errorf("unexpected role %v", decoded["role"])
	}
	if decoded["text"] != entry.Text {
		t.Errorf("unexpected text %v", decoded["text"])
	}
}

func TestCreateErrorMessage(t *testing.T) {
	msg := CreateErrorMessage("CONSULTATION_FAILED", "could not start consultation", "dial timeout")

	if msg.Type != MessageTypeError {
		t.Errorf("unexpected type %s", msg.Type)
	}
	if msg.Code != "CONSULTATION_FAILED" {
		t.Errorf("unexpected code %s", msg.Code)
	}
	if msg.Details != "dial timeout" {
		t.Errorf("unexpected details %s", msg.Details)
	}
}
