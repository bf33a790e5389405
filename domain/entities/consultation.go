package entities

import (
	"errors"
	"time"
)

// ConsultationState represents the lifecycle state of a voice consultation
type ConsultationState string

const (
	ConsultationIdle       ConsultationState = "idle"
	ConsultationConnecting ConsultationState = "connecting"
	ConsultationActive     ConsultationState = "active"
	ConsultationClosing    ConsultationState = "closing"
	ConsultationClosed     ConsultationState = "closed"
)

// Running reports whether the state is one of the in-flight states
func (s ConsultationState) Running() bool {
	return s == ConsultationConnecting || s == ConsultationActive
}

// Speaker identifies who produced a transcript entry
type Speaker string

const (
	SpeakerClient  Speaker = "client"
	SpeakerCounsel Speaker = "counsel"
)

// TranscriptEntry is an immutable transcript record, appended in arrival order
type TranscriptEntry struct {
	Role Speaker `json:"role"`
	Text string  `json:"text"`
}

// Consultation represents one voice-consultation session between a client
// connection and the live advisory model
type Consultation struct {
	ID        string            `json:"id"`
	State     ConsultationState `json:"state"`
	StartedAt time.Time         `json:"started_at"`
	EndedAt   *time.Time        `json:"ended_at,omitempty"`
}

// CanStart reports whether a start request may proceed. Starting while a
// consultation is connecting or active is a no-op, and a closed consultation
// is terminal.
func (c *Consultation) CanStart() bool {
	return c.State == ConsultationIdle
}

// CanStop reports whether a stop request has any effect. Stop in idle or
// closed state is idempotent.
func (c *Consultation) CanStop() bool {
	return c.State == ConsultationConnecting || c.State == ConsultationActive
}

// AcceptsTranscript reports whether transcript entries may still be appended.
// The transcript is frozen once the consultation leaves the active state.
func (c *Consultation) AcceptsTranscript() bool {
	return c.State == ConsultationActive
}

// Transition moves the consultation to the next state, enforcing the legal
// edges of the lifecycle machine.
func (c *Consultation) Transition(next ConsultationState) error {
	if !validTransition(c.State, next) {
		return errors.New("invalid consultation transition: " + string(c.State) + " -> " + string(next))
	}
	c.State = next
	if next == ConsultationClosed && c.EndedAt == nil {
		now := time.Now()
		c.EndedAt = &now
	}
	return nil
}

func validTransition(from, to ConsultationState) bool {
	switch from {
	case ConsultationIdle:
		return to == ConsultationConnecting
	case ConsultationConnecting:
		// Connect failure returns to idle; stop or transport error closes.
		return to == ConsultationActive || to == ConsultationIdle || to == ConsultationClosing || to == ConsultationClosed
	case ConsultationActive:
		return to == ConsultationClosing || to == ConsultationClosed
	case ConsultationClosing:
		return to == ConsultationClosed
	case ConsultationClosed:
		return false
	}
	return false
}

// Validate validates the consultation data
func (c *Consultation) Validate() error {
	if c.ID == "" {
		return errors.New("consultation id is required")
	}
	switch c.State {
	case ConsultationIdle, ConsultationConnecting, ConsultationActive, ConsultationClosing, ConsultationClosed:
		return nil
	}
	return errors.New("invalid consultation state")
}
