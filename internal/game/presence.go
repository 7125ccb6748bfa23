package game

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Touch refreshes the heartbeat for a session token. Unknown tokens get a
// record too, so a client that polls before joining is still tracked.
func (s *Session) Touch(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heartbeats[token] = time.Now()
}

// EvictStale removes every session whose last heartbeat is older than the
// configured timeout. Control identities are exempt. An evicted game player
// keeps their role assignment so they can rejoin.
func (s *Session) EvictStale(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timeout := s.settings.HeartbeatTimeout
	for token, last := range s.heartbeats {
		if now.Sub(last) <= timeout {
			continue
		}
		if s.isControlLocked(token) {
			continue
		}
		if name, bound := s.bindings[token]; bound {
			if !s.started && s.inLobby(name) {
				s.removeFromLobby(name)
				delete(s.startVotes, name)
				delete(s.bindings, token)
				s.event("player_timeout", fmt.Sprintf("%s was removed for inactivity", name))
				if len(s.lobbyPlayers) < s.settings.MinPlayers {
					s.event("lobby_not_ready", fmt.Sprintf("not enough players to start (%d/%d)", len(s.lobbyPlayers), s.settings.MinPlayers))
				}
			}
			if s.started && s.gamePlayers[name] != "" {
				// The binding survives so a returning client is still
				// recognized and offered a rejoin.
				delete(s.gamePlayers, name)
				s.event("player_timeout", fmt.Sprintf("%s was removed from the game for inactivity", name))
			}
			delete(s.votes, name)
		}
		delete(s.heartbeats, token)
	}
}

// Sweeper runs the periodic presence sweep against a session.
type Sweeper struct {
	session *Session
}

// NewSweeper returns a sweeper for the session.
func NewSweeper(session *Session) *Sweeper {
	return &Sweeper{session: session}
}

// Run sweeps until ctx is cancelled. The interval is re-read every cycle so
// runtime settings changes take effect without a restart.
func (sw *Sweeper) Run(ctx context.Context) {
	log.Printf("presence sweeper started (interval %s)", sw.session.Settings().SweepInterval)
	for {
		interval := sw.session.Settings().SweepInterval
		if interval <= 0 {
			interval = 6 * time.Second
		}
		select {
		case <-ctx.Done():
			log.Printf("presence sweeper stopped")
			return
		case <-time.After(interval):
			sw.session.EvictStale(time.Now())
		}
	}
}
