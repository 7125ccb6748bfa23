package game

import (
	"fmt"
	"strings"
)

// GuessMatches compares a guess against the secret word, ignoring case and
// surrounding whitespace.
func GuessMatches(guess, actual string) bool {
	return strings.EqualFold(strings.TrimSpace(guess), strings.TrimSpace(actual))
}

// GuessWord resolves the impostor's one-shot word guess. A correct guess ends
// the game with an impostor win; a wrong one ends it with a win for everyone
// else. Either way the latch is spent.
func (s *Session) GuessWord(token, guess string) (correct bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return false, ErrGameNotStarted
	}
	if s.ended {
		return false, ErrGameEnded
	}
	name, ok := s.bindings[token]
	if !ok || s.gamePlayers[name] == "" {
		return false, ErrNotInGame
	}
	if !s.roles[name].Impostor {
		return false, ErrNotImpostor
	}
	if s.guessUsed {
		return false, ErrGuessUsed
	}
	guess = strings.TrimSpace(guess)
	if guess == "" {
		return false, ErrEmptyGuess
	}

	s.guessUsed = true
	s.ended = true
	actual := s.secretWord
	correct = GuessMatches(guess, actual)

	s.outcome = &VoteOutcome{
		Impostor:    name,
		GuessedWord: guess,
		ActualWord:  actual,
		GameEnded:   true,
		WinningWord: actual,
	}
	if correct {
		s.outcome.ImpostorWon = true
		if s.board != nil {
			s.board.AddImpostorWin(name)
		}
		s.event("game", fmt.Sprintf("correct, %s guessed the word and wins", name))
	} else {
		s.outcome.ImpostorFailed = true
		if s.board != nil {
			for player := range s.gamePlayers {
				if player != name {
					s.board.AddPlayerWin(player)
				}
			}
		}
		s.event("game", fmt.Sprintf("wrong, %s loses and the players win", name))
	}
	return correct, nil
}
