package game

import (
	"testing"
	"time"
)

func TestEvictStale_LobbyDropBelowFloor(t *testing.T) {
	var events []string
	s := newTestSession(nil)
	s.SetEventHook(func(eventType, text string) {
		events = append(events, eventType)
	})
	joinPlayers(t, s, 3)

	// Age out one player, keep the others fresh.
	s.Touch("tok1")
	s.Touch("tok2")
	s.mu.Lock()
	s.heartbeats["tok3"] = time.Now().Add(-time.Minute)
	s.mu.Unlock()

	s.EvictStale(time.Now())

	snap := s.Snapshot("tok1")
	if len(snap.Players) != 2 {
		t.Fatalf("expected 2 players after eviction, got %v", snap.Players)
	}
	if err := s.Start(); err != ErrNotEnoughPlayers {
		t.Errorf("start below floor: expected ErrNotEnoughPlayers, got %v", err)
	}
	if !contains(events, "player_timeout") || !contains(events, "lobby_not_ready") {
		t.Errorf("expected timeout and not-ready events, got %v", events)
	}
}

func TestEvictStale_GamePlayerKeepsRole(t *testing.T) {
	s := newTestSession(nil)
	joinPlayers(t, s, 3)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	s.Touch("tok1")
	s.Touch("tok2")
	s.mu.Lock()
	s.heartbeats["tok3"] = time.Now().Add(-time.Minute)
	s.mu.Unlock()
	s.EvictStale(time.Now())

	snap := s.Snapshot("tok3")
	if snap.IsLoggedIn {
		t.Error("evicted player should no longer be logged in")
	}
	if !snap.CanRejoin {
		t.Error("evicted game player should be able to rejoin")
	}

	if err := s.Rejoin("tok3b", "Player3"); err != nil {
		t.Fatalf("rejoin after eviction: %v", err)
	}
	back := s.Snapshot("tok3b")
	if !back.IsLoggedIn {
		t.Error("rejoined player should be logged in")
	}
}

func TestEvictStale_ControlExempt(t *testing.T) {
	s := newTestSession(nil)
	if err := s.Join("ctl", "Control"); err != nil {
		t.Fatal(err)
	}
	if !s.ControlLogin("ctl", "admineger") {
		t.Fatal("control login rejected")
	}

	s.mu.Lock()
	s.heartbeats["ctl"] = time.Now().Add(-time.Hour)
	s.mu.Unlock()
	s.EvictStale(time.Now())

	snap := s.Snapshot("ctl")
	if !snap.IsLoggedIn || !snap.IsControl {
		t.Errorf("control identity must survive the sweep, got %+v", snap)
	}
}

func TestEvictStale_FreshPlayersUntouched(t *testing.T) {
	s := newTestSession(nil)
	joinPlayers(t, s, 3)
	s.EvictStale(time.Now())

	snap := s.Snapshot("tok1")
	if len(snap.Players) != 3 {
		t.Errorf("fresh players must not be evicted, got %v", snap.Players)
	}
}
