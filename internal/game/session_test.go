package game

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	valid := []string{"Bob", "Anna Lena", "Jörg", "abc", strings.Repeat("a", 20), "Spieler 1"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "ab", strings.Repeat("a", 21), "Bob!", "a<b>c", "tab\tname"}
	for _, name := range invalid {
		if err := ValidateName(name); err == nil {
			t.Errorf("ValidateName(%q) = nil, want error", name)
		}
	}
}

func TestSession_Join(t *testing.T) {
	t.Run("DuplicateNameRejected", func(t *testing.T) {
		s := newTestSession(nil)
		if err := s.Join("tok1", "Alice"); err != nil {
			t.Fatalf("first join: %v", err)
		}
		if err := s.Join("tok2", "Alice"); err != ErrDuplicateName {
			t.Errorf("expected ErrDuplicateName, got %v", err)
		}
	})

	t.Run("SameSessionCannotJoinTwice", func(t *testing.T) {
		s := newTestSession(nil)
		if err := s.Join("tok1", "Alice"); err != nil {
			t.Fatalf("first join: %v", err)
		}
		if err := s.Join("tok1", "Bobby"); err != ErrAlreadyJoined {
			t.Errorf("expected ErrAlreadyJoined, got %v", err)
		}
	})

	t.Run("JoinDuringGameRejected", func(t *testing.T) {
		s := newTestSession(nil)
		joinPlayers(t, s, 3)
		if err := s.Start(); err != nil {
			t.Fatalf("start: %v", err)
		}
		if err := s.Join("tok9", "Newcomer"); err != ErrGameInProgress {
			t.Errorf("expected ErrGameInProgress, got %v", err)
		}
	})

	t.Run("ReadyEventAtFloor", func(t *testing.T) {
		s := newTestSession(nil)
		joinPlayers(t, s, 3)
		msgs := s.chat.Tail(ChatLobby, 50)
		found := false
		for _, m := range msgs {
			if m.EventType == "lobby_ready" {
				found = true
			}
		}
		if !found {
			t.Error("expected lobby_ready event after third join")
		}
	})
}

func TestSession_Leave(t *testing.T) {
	s := newTestSession(nil)
	joinPlayers(t, s, 3)

	if err := s.Leave("tok2"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	snap := s.Snapshot("tok1")
	if len(snap.Players) != 2 {
		t.Errorf("expected 2 players after leave, got %d", len(snap.Players))
	}
	if err := s.Start(); err != ErrNotEnoughPlayers {
		t.Errorf("expected ErrNotEnoughPlayers below floor, got %v", err)
	}

	// Dropping below the floor emits a not-ready event.
	msgs := s.chat.Tail(ChatLobby, 50)
	found := false
	for _, m := range msgs {
		if m.EventType == "lobby_not_ready" {
			found = true
		}
	}
	if !found {
		t.Error("expected lobby_not_ready event after dropping below floor")
	}
}

func TestSession_KickFreesName(t *testing.T) {
	s := newTestSession(nil)
	joinPlayers(t, s, 3)

	s.Kick("Player2")

	// Name immediately reusable by a new join.
	if err := s.Join("tok9", "Player2"); err != nil {
		t.Errorf("rejoining kicked name: %v", err)
	}
	// Kicked token owes exactly one notice.
	if !s.ConsumeKicked("tok2") {
		t.Error("expected kicked notice for tok2")
	}
	if s.ConsumeKicked("tok2") {
		t.Error("kicked notice must be one-shot")
	}
}

func TestSession_ReturnToLobbyKeepsRoster(t *testing.T) {
	s := newTestSession(nil)
	joinPlayers(t, s, 4)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.ReturnToLobby()

	snap := s.Snapshot("tok1")
	if snap.GameStarted {
		t.Error("game should not be started after return to lobby")
	}
	if len(snap.Players) != 4 {
		t.Errorf("lobby roster should survive return to lobby, got %d players", len(snap.Players))
	}
	if snap.PlayerRole != nil {
		t.Error("roles must be cleared on return to lobby")
	}
}

func TestSession_ResetClearsEverything(t *testing.T) {
	s := newTestSession(nil)
	joinPlayers(t, s, 3)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Reset()

	snap := s.Snapshot("tok1")
	if snap.GameStarted || len(snap.Players) != 0 || snap.IsLoggedIn {
		t.Errorf("reset should clear roster and bindings, got %+v", snap)
	}
	// Everyone has to rejoin; old names are free again.
	if err := s.Join("tok1", "Player1"); err != nil {
		t.Errorf("rejoining after reset: %v", err)
	}
}

func TestSession_RejoinAfterDrop(t *testing.T) {
	s := newTestSession(nil)
	joinPlayers(t, s, 3)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Simulate a dropped game player: roster entry gone, role kept.
	s.mu.Lock()
	delete(s.gamePlayers, "Player2")
	delete(s.bindings, "tok2")
	s.mu.Unlock()

	snap := s.Snapshot("tok2")
	if snap.IsLoggedIn {
		t.Error("dropped player should not be logged in")
	}

	if err := s.Rejoin("newtok", "Player2"); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	snap = s.Snapshot("newtok")
	if !snap.IsLoggedIn || snap.PlayerName != "Player2" {
		t.Errorf("rejoin should restore the identity, got %+v", snap)
	}

	// A name that never had a role cannot rejoin.
	if err := s.Rejoin("othertok", "Stranger"); err != ErrCannotRejoin {
		t.Errorf("expected ErrCannotRejoin, got %v", err)
	}
}

func TestSession_SendMessage(t *testing.T) {
	s := newTestSession(nil)
	joinPlayers(t, s, 3)

	if err := s.SendMessage("tok1", "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := s.SendMessage("tok1", strings.Repeat("x", 201)); err != ErrMessageTooLong {
		t.Errorf("expected ErrMessageTooLong, got %v", err)
	}
	if err := s.SendMessage("stranger", "hi"); err == nil {
		t.Error("unbound session should not chat")
	}

	msgs := s.Snapshot("tok1").ChatMessages
	var player []Message
	for _, m := range msgs {
		if !m.IsEvent {
			player = append(player, m)
		}
	}
	if len(player) != 1 || player[0].Text != "hello" || player[0].Player != "Player1" {
		t.Errorf("unexpected chat contents: %+v", player)
	}
}

func TestSession_GameChatSeparateFromLobby(t *testing.T) {
	s := newTestSession(nil)
	joinPlayers(t, s, 3)
	if err := s.SendMessage("tok1", "lobby talk"); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if err := s.SendMessage("tok1", "game talk"); err != nil {
		t.Fatal(err)
	}

	for _, m := range s.Snapshot("tok1").ChatMessages {
		if m.Text == "lobby talk" {
			t.Error("lobby chat leaked into game phase")
		}
	}

	s.ReturnToLobby()
	var texts []string
	for _, m := range s.Snapshot("tok1").ChatMessages {
		texts = append(texts, m.Text)
	}
	if !contains(texts, "lobby talk") {
		t.Error("lobby chat should survive a game round")
	}
	if contains(texts, "game talk") {
		t.Error("game chat must be cleared on return to lobby")
	}
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
