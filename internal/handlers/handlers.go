package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"impostorparty/internal/config"
	"impostorparty/internal/game"
	"impostorparty/internal/leaderboard"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	session  *game.Session
	board    *leaderboard.Store
	eventBus *EventBus
	config   *config.ServerConfig

	// joinURL is what the QR endpoint encodes; set after IP discovery.
	joinURL string
}

// New creates a new handler and hooks the session's event stream into the bus.
func New(session *game.Session, board *leaderboard.Store, cfg *config.ServerConfig) *Handler {
	h := &Handler{
		session:  session,
		board:    board,
		eventBus: NewEventBus(),
		config:   cfg,
	}
	session.SetEventHook(func(eventType, text string) {
		h.eventBus.Publish(Event{Type: eventType, Text: text})
	})
	return h
}

// Session returns the handler's session (for testing)
func (h *Handler) Session() *game.Session {
	return h.session
}

// SetJoinURL sets the address encoded by the QR endpoint.
func (h *Handler) SetJoinURL(url string) {
	h.joinURL = url
}

// getOrCreateSession gets or creates the caller's session token cookie.
func getOrCreateSession(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie("session")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7, // 7 days
	})
	return token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// writeGameError maps the session's sentinel errors onto HTTP statuses:
// validation 400, phase/authorization 403, precondition conflicts 409.
func writeGameError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, game.ErrNotInGame),
		errors.Is(err, game.ErrNotInLobby):
		status = http.StatusForbidden
	case errors.Is(err, game.ErrGameInProgress),
		errors.Is(err, game.ErrGameNotStarted),
		errors.Is(err, game.ErrGameEnded),
		errors.Is(err, game.ErrVotingActive),
		errors.Is(err, game.ErrVotingInactive),
		errors.Is(err, game.ErrNotEnoughPlayers),
		errors.Is(err, game.ErrGuessUsed),
		errors.Is(err, game.ErrNotImpostor):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]any{"success": false, "error": err.Error()})
}

// decodeBody decodes a small JSON request body.
func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}
