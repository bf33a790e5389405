package voice

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ashumnni/juris-ai/domain/entities"
	"github.com/ashumnni/juris-ai/domain/repositories"
)

// ErrSessionNotActive is returned when capture audio arrives outside the
// active state.
var ErrSessionNotActive = errors.New("voice session is not active")

// ErrSampleRateMismatch is returned when capture audio does not match the
// session's capture rate. The session performs no resampling.
var ErrSampleRateMismatch = errors.New("capture sample rate does not match session rate")

// Config holds the tunables of one voice session
type Config struct {
	Model             string
	SystemInstruction string
	VoiceName         string
	CaptureRate       int
	PlaybackRate      int
	FrameSamples      int
}

func (c Config) withDefaults() Config {
	if c.CaptureRate == 0 {
		c.CaptureRate = CaptureRate
	}
	if c.PlaybackRate == 0 {
		c.PlaybackRate = PlaybackRate
	}
	if c.FrameSamples == 0 {
		c.FrameSamples = FrameSamples
	}
	return c
}

// Hooks are the session's outbound callbacks. All hooks are optional and are
// invoked from the session's event goroutine, one at a time.
type Hooks struct {
	// OnAudio receives each playback buffer at its scheduled start time
	OnAudio func(buf *Buffer)
	// OnTranscript receives each transcript entry appended while active
	OnTranscript func(entry entities.TranscriptEntry)
	// OnClose fires once when the session reaches the closed state. err is
	// nil for an orderly stop.
	OnClose func(err error)
}

// Session owns one live voice consultation: the capture encoder, the playback
// scheduler, the transcript log, and the transport stream. All lifecycle
// transitions and event handling are serialized under one mutex, preserving
// the run-to-completion semantics of a single event loop.
type Session struct {
	id        string
	cfg       Config
	transport repositories.LiveTransport
	hooks     Hooks
	clk       clock.Clock
	logger    *zap.Logger

	mu           sync.Mutex
	consultation entities.Consultation
	stream       repositories.LiveStream
	enc          *frameEncoder
	sched        *Scheduler
	transcript   []entities.TranscriptEntry
}

// NewSession creates a session in the idle state
func NewSession(cfg Config, transport repositories.LiveTransport, hooks Hooks, clk clock.Clock, logger *zap.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:        id,
		cfg:       cfg.withDefaults(),
		transport: transport,
		hooks:     hooks,
		clk:       clk,
		logger:    logger,
		consultation: entities.Consultation{
			ID:    id,
			State: entities.ConsultationIdle,
		},
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state
func (s *Session) State() entities.ConsultationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consultation.State
}

// Consultation returns a snapshot of the consultation entity
func (s *Session) Consultation() entities.Consultation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consultation
}

// Start establishes the live connection. It is the only operation the caller
// awaits; everything after the handshake is event-driven. Starting while
// connecting or active is a no-op. On connect failure the session remains
// idle and the error is returned.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.consultation.State.Running() {
		s.mu.Unlock()
		s.logger.Debug("Start ignored, session already running",
			zap.String("sessionID", s.id),
			zap.String("state", string(s.consultation.State)))
		return nil
	}
	if !s.consultation.CanStart() {
		s.mu.Unlock()
		return fmt.Errorf("cannot start session in state %s", s.consultation.State)
	}
	if err := s.consultation.Transition(entities.ConsultationConnecting); err != nil {
		s.mu.Unlock()
		return err
	}
	s.consultation.StartedAt = s.clk.Now()
	s.mu.Unlock()

	stream, err := s.transport.Connect(ctx, repositories.LiveConfig{
		Model:               s.cfg.Model,
		SystemInstruction:   s.cfg.SystemInstruction,
		VoiceName:           s.cfg.VoiceName,
		OutputTranscription: true,
	})

	s.mu.Lock()
	if s.consultation.State != entities.ConsultationConnecting {
		// Stopped while the handshake was in flight.
		s.mu.Unlock()
		if err == nil {
			stream.Close()
		}
		return nil
	}
	if err != nil {
		s.consultation.Transition(entities.ConsultationIdle)
		s.mu.Unlock()
		s.logger.Error("Live connect failed",
			zap.String("sessionID", s.id),
			zap.Error(err))
		return fmt.Errorf("live connect: %w", err)
	}

	s.stream = stream
	s.enc = newFrameEncoder(s.cfg.FrameSamples)
	s.sched = NewScheduler(s.clk, s.emitAudio)
	s.consultation.Transition(entities.ConsultationActive)
	s.mu.Unlock()

	s.logger.Info("Voice session active",
		zap.String("sessionID", s.id),
		zap.String("model", s.cfg.Model))

	go s.eventLoop(stream)
	return nil
}

// Stop ends the session, closes the transport, and force-stops all scheduled
// playback buffers. Stop in the idle or closed state is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.consultation.CanStop() {
		s.mu.Unlock()
		return
	}
	if s.consultation.State == entities.ConsultationConnecting {
		// Start observes this and discards the stream when Connect returns.
		s.consultation.Transition(entities.ConsultationClosed)
		s.mu.Unlock()
		s.fireClose(nil)
		return
	}
	s.consultation.Transition(entities.ConsultationClosing)
	s.mu.Unlock()

	s.teardown(nil)
}

// PushAudio feeds capture samples in [-1, 1] into the outbound pipeline. Each
// completed fixed-size frame is sent immediately; a send failure escalates to
// a full session teardown.
func (s *Session) PushAudio(samples []float32, sampleRate int) error {
	s.mu.Lock()
	if s.consultation.State != entities.ConsultationActive {
		s.mu.Unlock()
		return ErrSessionNotActive
	}
	if sampleRate != s.cfg.CaptureRate {
		s.mu.Unlock()
		return fmt.Errorf("%w: got %d, want %d", ErrSampleRateMismatch, sampleRate, s.cfg.CaptureRate)
	}
	frames := s.enc.Push(samples)
	stream := s.stream
	s.mu.Unlock()

	for _, frame := range frames {
		if err := stream.Send(frame); err != nil {
			s.logger.Error("Capture send failed",
				zap.String("sessionID", s.id),
				zap.Error(err))
			s.closeFrom(entities.ConsultationActive, err)
			return err
		}
	}
	return nil
}

// Transcript returns a copy of the transcript log in arrival order
func (s *Session) Transcript() []entities.TranscriptEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.TranscriptEntry, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// ScheduledBuffers returns the number of scheduled, unfinished playback
// buffers.
func (s *Session) ScheduledBuffers() int {
	s.mu.Lock()
	sched := s.sched
	s.mu.Unlock()
	if sched == nil {
		return 0
	}
	return sched.Pending()
}

// eventLoop consumes transport events until the stream closes or errors
func (s *Session) eventLoop(stream repositories.LiveStream) {
	for ev := range stream.Events() {
		switch ev.Type {
		case repositories.LiveEventAudio:
			s.handleAudio(ev.Audio)
		case repositories.LiveEventTranscript:
			s.handleTranscript(ev.Transcript)
		case repositories.LiveEventError:
			s.logger.Error("Live transport error",
				zap.String("sessionID", s.id),
				zap.Error(ev.Err))
			s.closeFrom(entities.ConsultationActive, ev.Err)
			return
		case repositories.LiveEventClosed:
			s.closeFrom(entities.ConsultationActive, nil)
			return
		}
	}
	s.closeFrom(entities.ConsultationActive, nil)
}

// handleAudio decodes one inbound chunk and schedules it for gapless
// playback. A malformed chunk is dropped; the session continues.
func (s *Session) handleAudio(data []byte) {
	s.mu.Lock()
	if s.consultation.State != entities.ConsultationActive {
		s.mu.Unlock()
		return
	}
	sched := s.sched
	s.mu.Unlock()

	buf, err := DecodePCM16(data, s.cfg.PlaybackRate, 1)
	if err != nil {
		s.logger.Warn("Dropping malformed audio chunk",
			zap.String("sessionID", s.id),
			zap.Int("bytes", len(data)),
			zap.Error(err))
		return
	}
	sched.Schedule(buf)
}

func (s *Session) handleTranscript(text string) {
	s.mu.Lock()
	if !s.consultation.AcceptsTranscript() {
		// The transcript is frozen once the session leaves the active state.
		s.mu.Unlock()
		return
	}
	entry := entities.TranscriptEntry{Role: entities.SpeakerCounsel, Text: text}
	s.transcript = append(s.transcript, entry)
	s.mu.Unlock()

	if s.hooks.OnTranscript != nil {
		s.hooks.OnTranscript(entry)
	}
}

func (s *Session) emitAudio(buf *Buffer) {
	if s.hooks.OnAudio != nil {
		s.hooks.OnAudio(buf)
	}
}

// closeFrom tears the session down if it is still in the given state. Used by
// asynchronous error and close paths that may race an explicit stop.
func (s *Session) closeFrom(state entities.ConsultationState, err error) {
	s.mu.Lock()
	if s.consultation.State != state {
		s.mu.Unlock()
		return
	}
	s.consultation.Transition(entities.ConsultationClosing)
	s.mu.Unlock()

	s.teardown(err)
}

// teardown releases every held resource: the capture encoder, all scheduled
// playback buffers, and the transport stream. Runs exactly once per session.
func (s *Session) teardown(err error) {
	s.mu.Lock()
	stream := s.stream
	sched := s.sched
	if s.enc != nil {
		s.enc.Reset()
	}
	s.stream = nil
	s.consultation.Transition(entities.ConsultationClosed)
	s.mu.Unlock()

	if sched != nil {
		sched.StopAll()
	}
	if stream != nil {
		if cerr := stream.Close(); cerr != nil {
			s.logger.Debug("Live stream close",
				zap.String("sessionID", s.id),
				zap.Error(cerr))
		}
	}

	s.logger.Info("Voice session closed",
		zap.String("sessionID", s.id),
		zap.Bool("onError", err != nil))

	s.fireClose(err)
}

func (s *Session) fireClose(err error) {
	if s.hooks.OnClose != nil {
		s.hooks.OnClose(err)
	}
}
