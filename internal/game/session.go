package game

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Role is a player's hidden assignment: either the impostor marker or the
// shared secret word.
type Role struct {
	Impostor bool   `json:"impostor"`
	Word     string `json:"word,omitempty"`
}

// Settings are the runtime-tunable knobs of a session.
type Settings struct {
	MinPlayers            int           `json:"min_players"`
	HeartbeatTimeout      time.Duration `json:"heartbeat_timeout"`
	SweepInterval         time.Duration `json:"sweep_interval"`
	ImpostorStarterChance float64       `json:"impostor_starter_chance"`
	AnnounceSpicyMode     bool          `json:"announce_spicy_mode"`
}

// Scoreboard records wins. Satisfied by the leaderboard store.
type Scoreboard interface {
	AddPlayerWin(name string)
	AddImpostorWin(name string)
}

// Session is the single process-wide game session. Every mutation takes the
// session mutex, including the background presence sweep, so concurrent
// request handlers and the sweeper serialize through one writer.
type Session struct {
	mu    sync.Mutex
	rng   *rand.Rand
	words WordSource
	board Scoreboard

	// onEvent, when set, observes every SYSTEM event. It is invoked with
	// the mutex held and must not call back into the session.
	onEvent func(eventType, text string)

	settings     Settings
	wordMode     WordMode
	controlNames map[string]bool
	controlPass  string
	controlToks  map[string]bool

	lobbyPlayers []string
	gamePlayers  map[string]string // name -> session token
	bindings     map[string]string // session token -> name
	heartbeats   map[string]time.Time
	kicked       map[string]bool // tokens owed a one-shot removal notice

	started      bool
	ended        bool
	revealed     bool
	votingActive bool
	guessUsed    bool
	roles        map[string]Role
	votes        map[string]string // voter -> target
	outcome      *VoteOutcome
	starter      string
	secretWord   string
	startVotes   map[string]bool

	chat ChatLog
}

var nameRe = regexp.MustCompile(`^[A-Za-z0-9äöüÄÖÜß ]+$`)

// ValidateName checks the 3-20 character length and restricted charset.
func ValidateName(name string) error {
	if n := utf8.RuneCountInString(name); n < 3 || n > 20 {
		return ErrInvalidName
	}
	if !nameRe.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

// NewSession creates a session in the lobby phase.
func NewSession(settings Settings, words WordSource, board Scoreboard, mode WordMode, controlNames []string, controlPassword string) *Session {
	s := &Session{
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		words:        words,
		board:        board,
		settings:     settings,
		wordMode:     mode,
		controlNames: make(map[string]bool, len(controlNames)),
		controlPass:  controlPassword,
		controlToks:  make(map[string]bool),
		gamePlayers:  make(map[string]string),
		bindings:     make(map[string]string),
		heartbeats:   make(map[string]time.Time),
		kicked:       make(map[string]bool),
		roles:        make(map[string]Role),
		votes:        make(map[string]string),
		startVotes:   make(map[string]bool),
	}
	for _, name := range controlNames {
		s.controlNames[name] = true
	}
	return s
}

// SetEventHook installs an observer for SYSTEM events.
func (s *Session) SetEventHook(fn func(eventType, text string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvent = fn
}

// currentPhase returns the chat queue for the current phase.
func (s *Session) currentPhase() ChatPhase {
	if s.started {
		return ChatGame
	}
	return ChatLobby
}

func (s *Session) event(eventType, text string) {
	s.chat.AddEvent(s.currentPhase(), eventType, text)
	if s.onEvent != nil {
		s.onEvent(eventType, text)
	}
}

func (s *Session) inLobby(name string) bool {
	for _, p := range s.lobbyPlayers {
		if p == name {
			return true
		}
	}
	return false
}

func (s *Session) removeFromLobby(name string) {
	for i, p := range s.lobbyPlayers {
		if p == name {
			s.lobbyPlayers = append(s.lobbyPlayers[:i], s.lobbyPlayers[i+1:]...)
			return
		}
	}
}

// tokenFor returns the session token bound to name, if any.
func (s *Session) tokenFor(name string) (string, bool) {
	for tok, n := range s.bindings {
		if n == name {
			return tok, true
		}
	}
	return "", false
}

// Join adds a player to the lobby and binds their session token. During an
// active game a name that already holds a role is re-bound instead (rejoin).
func (s *Session) Join(token, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return err
	}
	if bound, ok := s.bindings[token]; ok {
		if s.inLobby(bound) || s.gamePlayers[bound] != "" {
			return ErrAlreadyJoined
		}
	}
	if s.started {
		if _, hasRole := s.roles[name]; hasRole && s.gamePlayers[name] == "" {
			return s.rejoinLocked(token, name)
		}
		return ErrGameInProgress
	}
	if s.inLobby(name) {
		return ErrDuplicateName
	}

	s.bindings[token] = name
	s.heartbeats[token] = time.Now()
	s.lobbyPlayers = append(s.lobbyPlayers, name)
	s.event("player_join", fmt.Sprintf("%s joined the lobby", name))
	if len(s.lobbyPlayers) >= s.settings.MinPlayers {
		s.event("lobby_ready", fmt.Sprintf("enough players to start (%d/%d)", len(s.lobbyPlayers), s.settings.MinPlayers))
	}
	return nil
}

// Leave removes a lobby player. Control identities and in-game players stay.
func (s *Session) Leave(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, ok := s.bindings[token]
	if !ok {
		return ErrNotInLobby
	}
	if !s.started && s.inLobby(name) && !s.controlNames[name] {
		s.removeFromLobby(name)
		delete(s.startVotes, name)
		s.event("player_leave", fmt.Sprintf("%s left the lobby", name))
		if len(s.lobbyPlayers) < s.settings.MinPlayers {
			s.event("lobby_not_ready", fmt.Sprintf("not enough players to start (%d/%d)", len(s.lobbyPlayers), s.settings.MinPlayers))
		}
	}
	delete(s.bindings, token)
	delete(s.heartbeats, token)
	return nil
}

// SelectStarter draws the round's starting player: the impostor with
// probability impostorChance, otherwise uniform over the other players.
func SelectStarter(players []string, impostor string, impostorChance float64, rng *rand.Rand) string {
	if rng.Float64() < impostorChance {
		return impostor
	}
	others := make([]string, 0, len(players))
	for _, p := range players {
		if p != impostor {
			others = append(others, p)
		}
	}
	if len(others) == 0 {
		return impostor
	}
	return others[rng.Intn(len(others))]
}

// Start begins a round: picks impostor, word and starter, assigns roles to
// every lobby player and snapshots the bound ones into the game roster.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked()
}

func (s *Session) startLocked() error {
	if s.started {
		return ErrGameInProgress
	}
	if len(s.lobbyPlayers) < s.settings.MinPlayers {
		return ErrNotEnoughPlayers
	}

	s.startVotes = make(map[string]bool)
	word := s.words.PickWord(s.wordMode, s.rng)
	impostor := s.lobbyPlayers[s.rng.Intn(len(s.lobbyPlayers))]
	s.starter = SelectStarter(s.lobbyPlayers, impostor, s.settings.ImpostorStarterChance, s.rng)
	s.secretWord = word

	s.roles = make(map[string]Role, len(s.lobbyPlayers))
	s.gamePlayers = make(map[string]string)
	for _, p := range s.lobbyPlayers {
		if p == impostor {
			s.roles[p] = Role{Impostor: true}
		} else {
			s.roles[p] = Role{Word: word}
		}
		if tok, ok := s.tokenFor(p); ok {
			s.gamePlayers[p] = tok
		}
	}

	s.started = true
	s.ended = false
	s.revealed = false
	s.guessUsed = false
	s.votingActive = false
	s.votes = make(map[string]string)
	s.outcome = nil

	s.event("game_start", "the game has begun")
	s.event("game_start", fmt.Sprintf("%s starts the round", s.starter))
	return nil
}

// Reveal makes each player's own role visible to them. Assignments never
// change, only visibility.
func (s *Session) Reveal() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || len(s.roles) == 0 {
		return ErrGameNotStarted
	}
	if s.ended {
		return ErrGameEnded
	}
	s.revealed = true
	return nil
}

// Rejoin re-binds a session token to a name that holds a role but dropped out
// of the game roster (disconnect, timeout).
func (s *Session) Rejoin(token, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rejoinLocked(token, name)
}

func (s *Session) rejoinLocked(token, name string) error {
	if !s.started {
		return ErrGameNotStarted
	}
	if _, ok := s.roles[name]; !ok {
		return ErrCannotRejoin
	}
	if s.gamePlayers[name] != "" {
		return ErrAlreadyJoined
	}
	// Drop any stale binding left over from the previous connection.
	if old, ok := s.tokenFor(name); ok && old != token {
		delete(s.bindings, old)
		delete(s.heartbeats, old)
	}
	s.bindings[token] = name
	s.gamePlayers[name] = token
	s.heartbeats[token] = time.Now()
	s.event("player_rejoin", fmt.Sprintf("%s rejoined the game", name))
	return nil
}

// StartVote records a lobby player's vote to start. When every lobby player
// has voted and the floor is met, the game starts. Reports whether it did.
func (s *Session) StartVote(token string) (started bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return false, ErrGameInProgress
	}
	name, ok := s.bindings[token]
	if !ok || !s.inLobby(name) {
		return false, ErrNotInLobby
	}
	s.startVotes[name] = true

	voted := 0
	for _, p := range s.lobbyPlayers {
		if s.startVotes[p] {
			voted++
		}
	}
	if voted == len(s.lobbyPlayers) && len(s.lobbyPlayers) >= s.settings.MinPlayers {
		if err := s.startLocked(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// StartVotes returns the names that voted to start and the lobby size.
func (s *Session) StartVotes() (votes []string, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.lobbyPlayers {
		if s.startVotes[p] {
			votes = append(votes, p)
		}
	}
	return votes, len(s.lobbyPlayers)
}

// Kick removes a name from every live container and flags its session token
// so the next poll delivers a removal notice exactly once. Best-effort: a
// name that is nowhere is not an error.
func (s *Session) Kick(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := s.inLobby(name)
	s.removeFromLobby(name)
	if _, ok := s.gamePlayers[name]; ok {
		found = true
		delete(s.gamePlayers, name)
	}
	delete(s.roles, name)
	delete(s.votes, name)
	delete(s.startVotes, name)
	if tok, ok := s.tokenFor(name); ok {
		found = true
		s.kicked[tok] = true
		delete(s.bindings, tok)
		delete(s.heartbeats, tok)
	}
	if found {
		s.event("player_kick", fmt.Sprintf("%s was removed from the game", name))
	}
}

// ConsumeKicked reports and clears the one-shot removal notice for a token.
func (s *Session) ConsumeKicked(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kicked[token] {
		delete(s.kicked, token)
		return true
	}
	return false
}

// WasKicked reports the notice without consuming it.
func (s *Session) WasKicked(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kicked[token]
}

// ReturnToLobby clears all game-scoped state and re-enters the lobby phase.
// The lobby roster, bindings and the leaderboard are untouched.
func (s *Session) ReturnToLobby() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.started = false
	s.ended = false
	s.revealed = false
	s.votingActive = false
	s.guessUsed = false
	s.roles = make(map[string]Role)
	s.votes = make(map[string]string)
	s.outcome = nil
	s.starter = ""
	s.secretWord = ""
	s.gamePlayers = make(map[string]string)
	s.chat.ClearGame()

	s.event("lobby_return", "back in the lobby, a new game can begin")
}

// Reset additionally clears the lobby roster and every session binding and
// presence record, forcing everyone to rejoin.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.event("game_reset", "the game was reset")

	s.lobbyPlayers = nil
	s.started = false
	s.ended = false
	s.revealed = false
	s.votingActive = false
	s.guessUsed = false
	s.roles = make(map[string]Role)
	s.votes = make(map[string]string)
	s.outcome = nil
	s.starter = ""
	s.secretWord = ""
	s.gamePlayers = make(map[string]string)
	s.bindings = make(map[string]string)
	s.heartbeats = make(map[string]time.Time)
	s.startVotes = make(map[string]bool)
	s.chat.ClearGame()
}

// SendMessage appends a chat message for the phase the sender is part of.
func (s *Session) SendMessage(token, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, ok := s.bindings[token]
	if !ok {
		return ErrNotInLobby
	}
	if s.started {
		if s.gamePlayers[name] == "" {
			return ErrNotInGame
		}
	} else if !s.inLobby(name) {
		return ErrNotInLobby
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > 200 {
		return ErrMessageTooLong
	}
	s.chat.AddPlayerMessage(s.currentPhase(), name, text)
	return nil
}

// WordMode returns the active word-pool mode.
func (s *Session) WordMode() WordMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wordMode
}

// SetWordMode switches the word-pool mode.
func (s *Session) SetWordMode(mode WordMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wordMode = mode
}

// Settings returns a copy of the runtime settings.
func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings applies fn to the runtime settings under the session lock.
func (s *Session) UpdateSettings(fn func(*Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.settings)
}

// ControlLogin validates the control password and, on success, marks the
// token as a control session.
func (s *Session) ControlLogin(token, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if password != s.controlPass {
		return false
	}
	s.controlToks[token] = true
	return true
}

// IsControl reports whether a token belongs to a control session or is bound
// to a control-designated name.
func (s *Session) IsControl(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isControlLocked(token)
}

func (s *Session) isControlLocked(token string) bool {
	if s.controlToks[token] {
		return true
	}
	return s.controlNames[s.bindings[token]]
}

// SetControlPassword replaces the control password. Minimum 4 characters.
func (s *Session) SetControlPassword(password string) error {
	password = strings.TrimSpace(password)
	if utf8.RuneCountInString(password) < 4 {
		return fmt.Errorf("password too short (minimum 4 characters)")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controlPass = password
	return nil
}
