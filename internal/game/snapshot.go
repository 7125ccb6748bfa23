package game

import "time"

// Snapshot is the full session view a polling client receives.
type Snapshot struct {
	Players           []string          `json:"players"`
	GameStarted       bool              `json:"game_started"`
	GameEnded         bool              `json:"game_ended"`
	Revealed          bool              `json:"revealed"`
	WordMode          WordMode          `json:"word_mode"`
	PlayerName        string            `json:"player_name,omitempty"`
	IsLoggedIn        bool              `json:"is_logged_in"`
	PlayerRole        *Role             `json:"player_role,omitempty"`
	ChatMessages      []Message         `json:"chat_messages"`
	CurrentStarter    string            `json:"current_starter,omitempty"`
	VotingActive      bool              `json:"voting_active"`
	Votes             map[string]string `json:"votes"`
	VoteOutcome       *VoteOutcome      `json:"vote_results,omitempty"`
	WinningWord       string            `json:"winning_word,omitempty"`
	AllVoted          bool              `json:"all_voted"`
	IsControl         bool              `json:"is_control"`
	GuessUsed         bool              `json:"impostor_guess_used"`
	CanRejoin         bool              `json:"can_rejoin"`
	AnnounceSpicyMode bool              `json:"announce_spicy_mode"`
	StartVotes        []string          `json:"start_votes"`
	WasKicked         bool              `json:"was_kicked,omitempty"`
}

// chatTailLen bounds how much of the log a poll returns.
const chatTailLen = 50

// Snapshot builds the caller's view of the session and refreshes their
// heartbeat. The kicked notice, if pending, is consumed by this read.
func (s *Session) Snapshot(token string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != "" {
		s.heartbeats[token] = time.Now()
	}
	name := s.bindings[token]

	snap := Snapshot{
		GameStarted:       s.started,
		GameEnded:         s.ended,
		Revealed:          s.revealed,
		WordMode:          s.wordMode,
		PlayerName:        name,
		CurrentStarter:    s.starter,
		VotingActive:      s.votingActive,
		Votes:             copyVotes(s.votes),
		VoteOutcome:       s.outcome,
		WinningWord:       s.winningWordLocked(),
		IsControl:         s.isControlLocked(token),
		GuessUsed:         s.guessUsed,
		AnnounceSpicyMode: s.settings.AnnounceSpicyMode,
		ChatMessages:      s.chat.Tail(s.currentPhase(), chatTailLen),
	}

	if s.started {
		snap.Players = make([]string, 0, len(s.gamePlayers))
		for p := range s.gamePlayers {
			snap.Players = append(snap.Players, p)
		}
		snap.IsLoggedIn = name != "" && s.gamePlayers[name] != ""
		_, hasRole := s.roles[name]
		snap.CanRejoin = name != "" && hasRole && s.gamePlayers[name] == ""
		snap.AllVoted = len(s.votes) >= len(s.gamePlayers)
	} else {
		snap.Players = append([]string(nil), s.lobbyPlayers...)
		snap.IsLoggedIn = name != "" && s.inLobby(name)
		snap.AllVoted = len(s.votes) >= len(s.lobbyPlayers)
		for _, p := range s.lobbyPlayers {
			if s.startVotes[p] {
				snap.StartVotes = append(snap.StartVotes, p)
			}
		}
	}

	if s.revealed && name != "" {
		if role, ok := s.roles[name]; ok {
			snap.PlayerRole = &role
		}
	}

	if s.kicked[token] {
		delete(s.kicked, token)
		snap.WasKicked = true
	}
	return snap
}

// ControlStats is the privileged operator view, including the impostor.
type ControlStats struct {
	Phase          string   `json:"game_state"`
	PlayerCount    int      `json:"player_count"`
	Players        []string `json:"players"`
	Impostor       string   `json:"impostor,omitempty"`
	WordMode       WordMode `json:"word_mode"`
	GameStarted    bool     `json:"game_started"`
	GameEnded      bool     `json:"game_ended"`
	VotingActive   bool     `json:"voting_active"`
	CurrentStarter string   `json:"current_starter,omitempty"`
	WinningWord    string   `json:"winning_word,omitempty"`
	Settings       Settings `json:"settings"`
}

// Stats returns the operator view of the session.
func (s *Session) Stats() ControlStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := ControlStats{
		Phase:          "lobby",
		WordMode:       s.wordMode,
		GameStarted:    s.started,
		GameEnded:      s.ended,
		VotingActive:   s.votingActive,
		CurrentStarter: s.starter,
		Settings:       s.settings,
	}
	if s.started {
		switch {
		case s.ended:
			st.Phase = "ended"
		case s.votingActive:
			st.Phase = "voting"
		default:
			st.Phase = "running"
		}
		st.WinningWord = s.secretWord
		for name, role := range s.roles {
			if role.Impostor {
				st.Impostor = name
				break
			}
		}
		for p := range s.gamePlayers {
			st.Players = append(st.Players, p)
		}
	} else {
		st.Players = append([]string(nil), s.lobbyPlayers...)
	}
	st.PlayerCount = len(st.Players)
	return st
}

func copyVotes(votes map[string]string) map[string]string {
	out := make(map[string]string, len(votes))
	for k, v := range votes {
		out[k] = v
	}
	return out
}
