package ui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestEventsForwardsKeys(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error = %v", err)
	}
	defer s.Close()

	events := s.Events()
	if s.Events() != events {
		t.Error("Events() should return the same channel on repeated calls")
	}

	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	select {
	case ev := <-events:
		key, ok := ev.(*tcell.EventKey)
		if !ok || key.Key() != tcell.KeyEnter {
			t.Errorf("event = %#v, want Enter key", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event forwarded")
	}
}

func TestEventsClosesWhenNobodyReceives(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error = %v", err)
	}

	events := s.Events()
	// More events than the channel buffers, none of them received.
	for i := 0; i < 40; i++ {
		sim.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	}
	time.Sleep(50 * time.Millisecond)

	s.Close()
	s.Close()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("event channel not closed after Close")
		}
	}
}
