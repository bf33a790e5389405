package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/ashumnni/juris-ai/domain/repositories"
)

// LiveTransport implements the live voice transport on the Gemini Live API
type LiveTransport struct {
	client *genai.Client
	logger *zap.Logger
}

var _ repositories.LiveTransport = (*LiveTransport)(nil)

// NewLiveTransport creates a live transport on top of an existing client
func NewLiveTransport(client *genai.Client, logger *zap.Logger) *LiveTransport {
	return &LiveTransport{client: client, logger: logger}
}

// Connect opens a live session. A non-error return means the connection is
// established and the stream is ready for realtime input.
func (t *LiveTransport) Connect(ctx context.Context, cfg repositories.LiveConfig) (repositories.LiveStream, error) {
	liveCfg := &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.ModalityAudio},
	}
	if cfg.SystemInstruction != "" {
		liveCfg.SystemInstruction = genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser)
	}
	if cfg.VoiceName != "" {
		liveCfg.SpeechConfig = &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: cfg.VoiceName},
			},
		}
	}
	if cfg.OutputTranscription {
		liveCfg.OutputAudioTranscription = &genai.AudioTranscriptionConfig{}
	}

	session, err := t.client.Live.Connect(ctx, cfg.Model, liveCfg)
	if err != nil {
		return nil, fmt.Errorf("live connect: %w", err)
	}

	t.logger.Info("Live session connected",
		zap.String("model", cfg.Model),
		zap.String("voice", cfg.VoiceName))

	stream := &liveStream{
		session: session,
		logger:  t.logger,
		events:  make(chan repositories.LiveEvent, 32),
	}
	go stream.receiveLoop()
	return stream, nil
}

// liveStream adapts one genai live session to the LiveStream interface
type liveStream struct {
	session *genai.Session
	logger  *zap.Logger
	events  chan repositories.LiveEvent

	mu     sync.Mutex
	closed bool
}

var _ repositories.LiveStream = (*liveStream)(nil)

// Send forwards one base64 capture frame as realtime media input
func (s *liveStream) Send(frame repositories.MediaFrame) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.New("live stream is closed")
	}
	s.mu.Unlock()

	data, err := base64.StdEncoding.DecodeString(frame.Data)
	if err != nil {
		return fmt.Errorf("decode media frame: %w", err)
	}
	return s.session.SendRealtimeInput(genai.LiveRealtimeInput{
		Media: &genai.Blob{Data: data, MIMEType: frame.MIMEType},
	})
}

// Events returns the inbound event channel. The channel is closed when the
// stream ends for any reason.
func (s *liveStream) Events() <-chan repositories.LiveEvent {
	return s.events
}

// Close shuts the underlying session down. Safe to call more than once.
func (s *liveStream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.session.Close()
}

func (s *liveStream) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// receiveLoop pumps server messages into the event channel until the session
// ends. A receive failure after an explicit Close is reported as an orderly
// close, not an error.
func (s *liveStream) receiveLoop() {
	defer close(s.events)

	for {
		message, err := s.session.Receive()
		if err != nil {
			if s.isClosed() {
				s.events <- repositories.LiveEvent{Type: repositories.LiveEventClosed}
				return
			}
			s.logger.Warn("Live receive failed", zap.Error(err))
			s.events <- repositories.LiveEvent{Type: repositories.LiveEventError, Err: err}
			return
		}
		if message.ServerContent == nil {
			continue
		}

		if tr := message.ServerContent.OutputTranscription; tr != nil && tr.Text != "" {
			s.events <- repositories.LiveEvent{
				Type:       repositories.LiveEventTranscript,
				Transcript: tr.Text,
			}
		}
		if turn := message.ServerContent.ModelTurn; turn != nil {
			for _, part := range turn.Parts {
				if part.InlineData != nil && len(part.InlineData.Data) > 0 {
					s.events <- repositories.LiveEvent{
						Type:  repositories.LiveEventAudio,
						Audio: part.InlineData.Data,
					}
				}
			}
		}
	}
}
