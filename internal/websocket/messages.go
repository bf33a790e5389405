package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ashumnni/juris-ai/domain/entities"
)

// MessageType defines the type of WebSocket control message
type MessageType string

// Supported message types. Audio travels as binary frames, not as JSON.
const (
	// Client to server
	MessageTypeConsultationStart MessageType = "consultation_start"
	MessageTypeConsultationStop  MessageType = "consultation_stop"

	// Server to client
	MessageTypeConsultationStarted MessageType = "consultation_started"
	MessageTypeConsultationEnded   MessageType = "consultation_ended"
	MessageTypeTranscript          MessageType = "transcript"
	MessageTypeError               MessageType = "error"
)

// BaseMessage defines the common structure for all control messages
type BaseMessage struct {
	Type      MessageType `json:"type"`
	Timestamp string      `json:"timestamp"`
}

// ConsultationStartedMessage acknowledges an established voice session
type ConsultationStartedMessage struct {
	BaseMessage
	SessionID    string `json:"session_id"`
	CaptureRate  int    `json:"capture_rate"`
	PlaybackRate int    `json:"playback_rate"`
}

// ConsultationEndedMessage signals that the voice session is fully closed
type ConsultationEndedMessage struct {
	BaseMessage
	SessionID string `json:"session_id"`
	Reason    string `json:"reason,omitempty"`
}

// TranscriptMessage carries one transcript fragment of the counsel's speech
type TranscriptMessage struct {
	BaseMessage
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Text      string `json:"text"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ParseClientMessage validates an inbound control message and returns its
// type. Client control messages carry no payload beyond the type.
func ParseClientMessage(messageBytes []byte) (MessageType, error) {
	var base BaseMessage
	if err := json.Unmarshal(messageBytes, &base); err != nil {
		return "", fmt.Errorf("invalid JSON format: %w", err)
	}

	switch base.Type {
	case MessageTypeConsultationStart, MessageTypeConsultationStop:
		return base.Type, nil
	case "":
		return "", fmt.Errorf("message missing type field")
	default:
		return "", fmt.Errorf("unsupported message type: %s", base.Type)
	}
}

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}

// CreateConsultationStartedMessage creates the session acknowledgment
func CreateConsultationStartedMessage(sessionID string, captureRate, playbackRate int) *ConsultationStartedMessage {
	return &ConsultationStartedMessage{
		BaseMessage:  BaseMessage{Type: MessageTypeConsultationStarted, Timestamp: timestamp()},
		SessionID:    sessionID,
		CaptureRate:  captureRate,
		PlaybackRate: playbackRate,
	}
}

// CreateConsultationEndedMessage creates the session end notification
func CreateConsultationEndedMessage(sessionID, reason string) *ConsultationEndedMessage {
	return &ConsultationEndedMessage{
		BaseMessage: BaseMessage{Type: MessageTypeConsultationEnded, Timestamp: timestamp()},
		SessionID:   sessionID,
		Reason:      reason,
	}
}

// CreateTranscriptMessage creates a transcript fragment message
func CreateTranscriptMessage(sessionID string, entry entities.TranscriptEntry) *TranscriptMessage {
	return &TranscriptMessage{
		BaseMessage: BaseMessage{Type: MessageTypeTranscript, Timestamp: timestamp()},
		SessionID:   sessionID,
		Role:        string(entry.Role),
		Text:        entry.Text,
	}
}

// CreateErrorMessage creates a standardized error message
func CreateErrorMessage(code, message, details string) *ErrorMessage {
	return &ErrorMessage{
		BaseMessage: BaseMessage{Type: MessageTypeError, Timestamp: timestamp()},
		Code:        code,
		Message:     message,
		Details:     details,
	}
}
