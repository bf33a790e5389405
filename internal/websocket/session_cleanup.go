package websocket

import (
	"time"

	"go.uber.org/zap"
)

// ConsultationJanitor stops voice consultations that run past the maximum
// allowed duration, bounding per-connection API usage.
type ConsultationJanitor struct {
	hub      *Hub
	maxAge   time.Duration
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewConsultationJanitor creates a janitor for the given hub. The sweep runs
// on the hub's clock.
func NewConsultationJanitor(hub *Hub, maxAge time.Duration, logger *zap.Logger) *ConsultationJanitor {
	return &ConsultationJanitor{
		hub:      hub,
		maxAge:   maxAge,
		interval: time.Minute,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start begins the background sweep process
func (j *ConsultationJanitor) Start() {
	go j.sweepLoop()
	j.logger.Info("Consultation janitor started",
		zap.Duration("maxAge", j.maxAge))
}

// Stop gracefully stops the janitor
func (j *ConsultationJanitor) Stop() {
	close(j.stopChan)
	j.logger.Info("Consultation janitor stopped")
}

func (j *ConsultationJanitor) sweepLoop() {
	ticker := j.hub.clk.Ticker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stopChan:
			return
		case <-ticker.C:
			j.runSweep()
		}
	}
}

// runSweep stops every running session older than the allowed maximum
func (j *ConsultationJanitor) runSweep() {
	j.hub.mu.RLock()
	clients := make([]*Client, 0, len(j.hub.clients))
	for _, c := range j.hub.clients {
		clients = append(clients, c)
	}
	j.hub.mu.RUnlock()

	now := j.hub.clk.Now()
	for _, c := range clients {
		c.mutex.Lock()
		session := c.session
		c.mutex.Unlock()

		if session == nil {
			continue
		}
		consultation := session.Consultation()
		if !consultation.State.Running() {
			continue
		}
		age := now.Sub(consultation.StartedAt)
		if age <= j.maxAge {
			continue
		}

		j.logger.Warn("Stopping overlong consultation",
			zap.String("clientID", c.id),
			zap.String("sessionID", session.ID()),
			zap.Duration("age", age))
		session.Stop()
	}
}
