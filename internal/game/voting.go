package game

import (
	"fmt"
	"strings"
)

// VoteOutcome is the result of closing a vote or resolving an impostor guess.
type VoteOutcome struct {
	VotedOut    string         `json:"voted_out,omitempty"`
	IsImpostor  bool           `json:"is_impostor,omitempty"`
	Tie         bool           `json:"tie,omitempty"`
	TiedPlayers []string       `json:"tied_players,omitempty"`
	Votes       map[string]int `json:"votes,omitempty"`

	// Guess resolution
	ImpostorWon    bool   `json:"impostor_won,omitempty"`
	ImpostorFailed bool   `json:"impostor_failed,omitempty"`
	Impostor       string `json:"impostor,omitempty"`
	GuessedWord    string `json:"guessed_word,omitempty"`
	ActualWord     string `json:"actual_word,omitempty"`

	GameEnded   bool   `json:"game_ended"`
	WinningWord string `json:"winning_word,omitempty"`
}

// OpenVoting activates voting with a clean vote set.
func (s *Session) OpenVoting() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrGameNotStarted
	}
	if s.ended {
		return ErrGameEnded
	}
	if s.votingActive {
		return ErrVotingActive
	}
	s.votingActive = true
	s.votes = make(map[string]string)
	s.outcome = nil
	s.event("voting_start", "voting has begun")
	return nil
}

// CastVote records the caller's single current vote, overwriting any earlier
// one. Self-votes and targets outside the game roster are silently ignored.
// When every active game player has voted, voting closes automatically.
func (s *Session) CastVote(token, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || !s.votingActive {
		return ErrVotingInactive
	}
	voter, ok := s.bindings[token]
	if !ok || s.gamePlayers[voter] == "" {
		return ErrNotInGame
	}
	if target == "" || target == voter || s.gamePlayers[target] == "" {
		return nil // no-op, not an error to the voter
	}
	s.votes[voter] = target
	if s.allVotedLocked() {
		s.closeVotingLocked()
	}
	return nil
}

// CloseVoting ends the vote manually, resolving plurality or tie over
// whatever votes exist.
func (s *Session) CloseVoting() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.votingActive {
		return ErrVotingInactive
	}
	s.closeVotingLocked()
	return nil
}

func (s *Session) allVotedLocked() bool {
	return len(s.votes) >= len(s.gamePlayers)
}

// TallyVotes counts votes per target and returns the target(s) holding the
// maximum count.
func TallyVotes(votes map[string]string) (counts map[string]int, top []string) {
	counts = make(map[string]int)
	for _, target := range votes {
		counts[target]++
	}
	max := 0
	for target, n := range counts {
		if n > max {
			max = n
			top = []string{target}
		} else if n == max {
			top = append(top, target)
		}
	}
	return counts, top
}

func (s *Session) closeVotingLocked() {
	s.votingActive = false

	counts, top := TallyVotes(s.votes)
	if len(top) != 1 {
		// No votes, or a tie for the maximum: nobody is eliminated and
		// voting has to be reopened.
		tied := append([]string(nil), top...)
		s.outcome = &VoteOutcome{Tie: true, TiedPlayers: tied, Votes: counts}
		s.event("voting_result", fmt.Sprintf("vote tied between: %s", strings.Join(tied, ", ")))
		return
	}

	votedOut := top[0]
	isImpostor := s.roles[votedOut].Impostor
	if isImpostor {
		s.ended = true
		s.event("voting_result", fmt.Sprintf("%s was the impostor, the players win", votedOut))
	} else {
		s.event("voting_result", fmt.Sprintf("%s was innocent, the impostor is still among you", votedOut))
	}

	s.outcome = &VoteOutcome{
		VotedOut:    votedOut,
		IsImpostor:  isImpostor,
		Votes:       counts,
		GameEnded:   s.ended,
		WinningWord: s.winningWordLocked(),
	}

	// Leaderboard credit only on terminal resolution: catching the impostor
	// scores every other game player. An innocent elimination scores nobody
	// here; the impostor is only credited if they later win via guess.
	if isImpostor && s.board != nil {
		for name := range s.gamePlayers {
			if name != votedOut {
				s.board.AddPlayerWin(name)
			}
		}
	}
}

// winningWordLocked exposes the secret word once the game has ended.
func (s *Session) winningWordLocked() string {
	if !s.ended {
		return ""
	}
	return s.secretWord
}
