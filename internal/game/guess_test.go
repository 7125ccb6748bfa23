package game

import "testing"

func TestGuessMatches(t *testing.T) {
	cases := []struct {
		guess, actual string
		want          bool
	}{
		{"Apfel", "apfel ", true},
		{"  APFEL  ", "Apfel", true},
		{"apfel", "apfel", true},
		{"Banane", "Apfel", false},
		{"", "Apfel", false},
	}
	for _, c := range cases {
		if got := GuessMatches(c.guess, c.actual); got != c.want {
			t.Errorf("GuessMatches(%q, %q) = %v, want %v", c.guess, c.actual, got, c.want)
		}
	}
}

// setSecretWord rewrites the round's word so guesses are predictable.
func setSecretWord(s *Session, word string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secretWord = word
	for name, role := range s.roles {
		if !role.Impostor {
			s.roles[name] = Role{Word: word}
		}
	}
}

func TestGuessWord_Correct(t *testing.T) {
	board := newFakeBoard()
	s := newTestSession(board)
	joinPlayers(t, s, 3)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	setSecretWord(s, "apfel ")
	imp := impostorOf(t, s)

	correct, err := s.GuessWord(tokenOf(t, s, imp), "Apfel")
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if !correct {
		t.Error("trimmed case-insensitive guess should match")
	}

	snap := s.Snapshot("tok1")
	if !snap.GameEnded {
		t.Error("correct guess must end the game")
	}
	if board.impostors[imp] != 1 {
		t.Errorf("impostor should be credited once, got %v", board.impostors)
	}
	if len(board.players) != 0 {
		t.Errorf("no player credit on impostor win, got %v", board.players)
	}
}

func TestGuessWord_Wrong(t *testing.T) {
	board := newFakeBoard()
	s := newTestSession(board)
	joinPlayers(t, s, 4)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	setSecretWord(s, "Apfel")
	imp := impostorOf(t, s)

	correct, err := s.GuessWord(tokenOf(t, s, imp), "Banane")
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if correct {
		t.Error("wrong guess reported as correct")
	}

	snap := s.Snapshot("tok1")
	if !snap.GameEnded {
		t.Error("wrong guess must still end the game")
	}
	if snap.VoteOutcome == nil || !snap.VoteOutcome.ImpostorFailed {
		t.Errorf("expected impostor_failed outcome, got %+v", snap.VoteOutcome)
	}
	if len(board.players) != 3 {
		t.Errorf("expected all non-impostors credited, got %v", board.players)
	}
	if _, ok := board.players[imp]; ok {
		t.Error("impostor must not receive player credit")
	}
}

func TestGuessWord_Gating(t *testing.T) {
	s := newTestSession(nil)
	joinPlayers(t, s, 3)

	if _, err := s.GuessWord("tok1", "Apfel"); err != ErrGameNotStarted {
		t.Errorf("guess before start: expected ErrGameNotStarted, got %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	imp := impostorOf(t, s)
	innocent := firstOther(imp)

	if _, err := s.GuessWord(tokenOf(t, s, innocent), "Apfel"); err != ErrNotImpostor {
		t.Errorf("non-impostor guess: expected ErrNotImpostor, got %v", err)
	}
	if _, err := s.GuessWord(tokenOf(t, s, imp), "   "); err != ErrEmptyGuess {
		t.Errorf("blank guess: expected ErrEmptyGuess, got %v", err)
	}

	if _, err := s.GuessWord(tokenOf(t, s, imp), "whatever"); err != nil {
		t.Fatalf("first guess: %v", err)
	}
	if _, err := s.GuessWord(tokenOf(t, s, imp), "again"); err == nil {
		t.Error("second guess must be rejected")
	}
}
