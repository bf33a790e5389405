package websocket

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/ashumnni/juris-ai/domain/entities"
	"github.com/ashumnni/juris-ai/internal/voice"
)

// setupJanitorTest wires a hub on a mock clock with one client whose
// consultation is already active.
func setupJanitorTest(t *testing.T) (*Hub, *clock.Mock, *voice.Session) {
	t.Helper()
	clk := clock.NewMock()
	hub := NewHub(&fakeLiveTransport{}, voice.Config{Model: "test-model"}, clk, zap.NewNop())
	go hub.Run()

	client := newTestClient(hub)
	hub.register <- client
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 1 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if hub.ClientCount() != 1 {
		t.Fatal("client never registered")
	}

	client.processControlMessage([]byte(`{"type": "consultation_start"}`))
	nextJSON(t, client)

	client.mutex.Lock()
	session := client.session
	client.mutex.Unlock()
	if session == nil {
		t.Fatal("consultation session not created")
	}
	return hub, clk, session
}

func TestJanitorSweepStopsOverlongConsultation(t *testing.T) {
	hub, clk, session := setupJanitorTest(t)
	janitor := NewConsultationJanitor(hub, 30*time.Minute, zap.NewNop())

	janitor.runSweep()
	if session.State() != entities.ConsultationActive {
		t.Fatalf("young consultation must survive the sweep, got %s", session.State())
	}

	clk.Add(31 * time.Minute)
	janitor.runSweep()
	if session.State() != entities.ConsultationClosed {
		t.Fatalf("overlong consultation should be stopped, got %s", session.State())
	}
}

func TestJanitorSweepLoopRunsOnHubClock(t *testing.T) {
	hub, clk, session := setupJanitorTest(t)
	janitor := NewConsultationJanitor(hub, 10*time.Minute, zap.NewNop())
	janitor.Start()
	defer janitor.Stop()

	// Let the sweep loop install its ticker before advancing the clock.
	time.Sleep(10 * time.Millisecond)
	for i := 0; i < 12; i++ {
		clk.Add(time.Minute)
		time.Sleep(time.Millisecond)
	}

	deadline := time.Now().Add(2 * time.Second)
	for session.State() != entities.ConsultationClosed && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if session.State() != entities.ConsultationClosed {
		t.Fatalf("sweep loop never stopped the overlong consultation, got %s", session.State())
	}
}
