package game

import (
	"fmt"
	"testing"
	"time"
)

// fakeBoard records credits in memory so tests can assert on them.
type fakeBoard struct {
	players   map[string]int
	impostors map[string]int
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{players: make(map[string]int), impostors: make(map[string]int)}
}

func (b *fakeBoard) AddPlayerWin(name string)   { b.players[name]++ }
func (b *fakeBoard) AddImpostorWin(name string) { b.impostors[name]++ }

func testSettings() Settings {
	return Settings{
		MinPlayers:            3,
		HeartbeatTimeout:      6 * time.Second,
		SweepInterval:         6 * time.Second,
		ImpostorStarterChance: 0.2,
		AnnounceSpicyMode:     true,
	}
}

func newTestSession(board Scoreboard) *Session {
	// Word files don't exist in the test dir, so the fallback pools apply.
	words := WordSource{WordsFile: "missing-words.txt", SpicyWordsFile: "missing-spicy.txt"}
	return NewSession(testSettings(), words, board, WordModeDisabled, []string{"Control", "Admin"}, "admineger")
}

// joinPlayers joins n players named P1..Pn with tokens tok1..tokn.
func joinPlayers(t *testing.T, s *Session, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		if err := s.Join(fmt.Sprintf("tok%d", i), fmt.Sprintf("Player%d", i)); err != nil {
			t.Fatalf("joining Player%d: %v", i, err)
		}
	}
}

// tokenOf returns the token joinPlayers used for the given name.
func tokenOf(t *testing.T, s *Session, name string) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.tokenFor(name)
	if !ok {
		t.Fatalf("no token bound for %s", name)
	}
	return tok
}

// impostorOf returns the impostor's name after a started game.
func impostorOf(t *testing.T, s *Session) string {
	t.Helper()
	stats := s.Stats()
	if stats.Impostor == "" {
		t.Fatal("no impostor assigned")
	}
	return stats.Impostor
}
