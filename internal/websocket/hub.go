package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ashumnni/juris-ai/domain/entities"
	"github.com/ashumnni/juris-ai/domain/repositories"
	"github.com/ashumnni/juris-ai/internal/voice"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512 * 1024 // 512KB for audio frames

	// Time allowed for the live handshake to complete.
	connectTimeout = 15 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: Implement proper origin checking
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Hub maintains the set of connected clients and the voice session config
// shared between them.
type Hub struct {
	// Registered clients.
	clients map[string]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Mutex for thread-safe access to clients map
	mu sync.RWMutex

	transport repositories.LiveTransport
	voiceCfg  voice.Config
	clk       clock.Clock

	logger *zap.Logger
}

// NewHub creates a new WebSocket hub
func NewHub(transport repositories.LiveTransport, voiceCfg voice.Config, clk clock.Clock, logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		transport:  transport,
		voiceCfg:   voiceCfg,
		clk:        clk,
		logger:     logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			h.mu.Unlock()
			h.logger.Info("Client registered", zap.String("clientID", client.id))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			h.mu.Unlock()
			client.stopSession()
			h.logger.Info("Client unregistered", zap.String("clientID", client.id))
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

type WriteData struct {
	// MessageType is the type of the websocket message.
	// Expect websocket.TextMessage or websocket.BinaryMessage
	Type    int
	Payload []byte
}

// Client is a middleman between one websocket connection and its voice
// session.
type Client struct {
	hub *Hub

	// The websocket connection.
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan WriteData

	// Connection ID for this client
	id string

	// Logger
	logger *zap.Logger

	// Voice consultation session, nil while no consultation is running
	mutex   sync.Mutex
	session *voice.Session
}

// HandleWebSocket handles websocket requests from the peer.
func HandleWebSocket(hub *Hub, c echo.Context, logger *zap.Logger) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", zap.Error(err))
		return err
	}

	client := &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan WriteData, 256),
		id:     c.Response().Header().Get(echo.HeaderXRequestID),
		logger: logger,
	}
	if client.id == "" {
		client.id = uuid.NewString()
	}

	client.hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	go client.readPump()

	return nil
}

// readPump pumps messages from the websocket connection into the session.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", zap.Error(err))
			}
			break
		}

		switch messageType {
		case websocket.TextMessage:
			c.processControlMessage(message)
		case websocket.BinaryMessage:
			c.processCaptureAudio(message)
		default:
			c.logger.Warn("Received unknown message type", zap.Int("type", messageType))
		}
	}
}

// writePump pumps messages from the session to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(message.Type, message.Payload); err != nil {
				c.logger.Error("Failed to write message", zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// processControlMessage dispatches one inbound JSON control message
func (c *Client) processControlMessage(message []byte) {
	msgType, err := ParseClientMessage(message)
	if err != nil {
		c.logger.Warn("Invalid control message", zap.Error(err))
		c.sendJSON(CreateErrorMessage("INVALID_MESSAGE", "invalid control message", err.Error()))
		return
	}

	switch msgType {
	case MessageTypeConsultationStart:
		c.handleConsultationStart()
	case MessageTypeConsultationStop:
		c.handleConsultationStop()
	}
}

// handleConsultationStart creates and starts the voice session. A start while
// a session is connecting or active re-acknowledges the existing session.
func (c *Client) handleConsultationStart() {
	c.mutex.Lock()
	if c.session == nil || !c.session.State().Running() {
		c.session = voice.NewSession(c.hub.voiceCfg, c.hub.transport, voice.Hooks{
			OnAudio:      c.onPlaybackAudio,
			OnTranscript: c.onTranscript,
			OnClose:      c.onSessionClose,
		}, c.hub.clk, c.logger)
	}
	session := c.session
	c.mutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := session.Start(ctx); err != nil {
		c.logger.Error("Consultation start failed",
			zap.String("clientID", c.id),
			zap.Error(err))
		c.sendJSON(CreateErrorMessage("CONSULTATION_FAILED", "could not start consultation", err.Error()))
		return
	}

	c.sendJSON(CreateConsultationStartedMessage(session.ID(), voice.CaptureRate, voice.PlaybackRate))
}

// handleConsultationStop ends the running session, if any
func (c *Client) handleConsultationStop() {
	c.stopSession()
}

func (c *Client) stopSession() {
	c.mutex.Lock()
	session := c.session
	c.mutex.Unlock()
	if session != nil {
		session.Stop()
	}
}

// processCaptureAudio feeds one binary PCM frame from the client microphone
// into the outbound pipeline.
func (c *Client) processCaptureAudio(data []byte) {
	c.mutex.Lock()
	session := c.session
	c.mutex.Unlock()

	if session == nil {
		c.logger.Warn("Received capture audio but no consultation is running",
			zap.String("clientID", c.id))
		return
	}

	buf, err := voice.DecodePCM16(data, voice.CaptureRate, 1)
	if err != nil {
		c.logger.Warn("Dropping malformed capture frame",
			zap.String("clientID", c.id),
			zap.Int("size", len(data)),
			zap.Error(err))
		return
	}

	if err := session.PushAudio(buf.Channels[0], voice.CaptureRate); err != nil {
		if errors.Is(err, voice.ErrSessionNotActive) {
			c.logger.Debug("Capture frame dropped, session not active",
				zap.String("clientID", c.id))
			return
		}
		c.logger.Error("Capture push failed",
			zap.String("clientID", c.id),
			zap.Error(err))
		c.sendJSON(CreateErrorMessage("AUDIO_FAILED", "audio streaming failed", err.Error()))
	}
}

// onPlaybackAudio forwards one scheduled playback buffer as a binary frame
func (c *Client) onPlaybackAudio(buf *voice.Buffer) {
	if len(buf.Channels) == 0 {
		return
	}
	c.sendRaw(WriteData{
		Type:    websocket.BinaryMessage,
		Payload: voice.EncodePCM16(buf.Channels[0]),
	})
}

func (c *Client) onTranscript(entry entities.TranscriptEntry) {
	c.mutex.Lock()
	session := c.session
	c.mutex.Unlock()
	if session == nil {
		return
	}
	c.sendJSON(CreateTranscriptMessage(session.ID(), entry))
}

func (c *Client) onSessionClose(err error) {
	c.mutex.Lock()
	session := c.session
	c.mutex.Unlock()
	if session == nil {
		return
	}

	reason := ""
	if err != nil {
		reason = err.Error()
	}
	c.sendJSON(CreateConsultationEndedMessage(session.ID(), reason))
}

func (c *Client) sendJSON(message interface{}) {
	payload, err := json.Marshal(message)
	if err != nil {
		c.logger.Error("Failed to marshal message", zap.Error(err))
		return
	}
	c.sendRaw(WriteData{Type: websocket.TextMessage, Payload: payload})
}

// sendRaw enqueues one frame without blocking. A client that cannot keep up
// with playback audio loses the frame rather than stalling the session.
func (c *Client) sendRaw(data WriteData) {
	defer func() {
		// The send channel is closed on unregister; late session hooks
		// must not crash the hub.
		_ = recover()
	}()
	select {
	case c.send <- data:
	default:
		c.logger.Warn("Dropping frame, client send buffer full",
			zap.String("clientID", c.id))
	}
}
