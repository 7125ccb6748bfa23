package handlers

import (
	"log"
	"net/http"
	"time"

	"impostorparty/internal/game"
)

// requireControl wraps privileged handlers.
func (h *Handler) requireControl(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := getOrCreateSession(w, r)
		if !h.session.IsControl(token) {
			writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "error": "not authorized"})
			return
		}
		next(w, r)
	}
}

// ControlLogin exchanges the control password for a control session.
func (h *Handler) ControlLogin(w http.ResponseWriter, r *http.Request) {
	token := getOrCreateSession(w, r)

	var body struct {
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}
	if !h.session.ControlLogin(token, body.Password) {
		writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "error": "wrong password"})
		return
	}
	log.Printf("control login from %s", r.RemoteAddr)
	writeOK(w)
}

// ChangePassword replaces the control password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		NewPassword string `json:"new_password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}
	if err := h.session.SetControlPassword(body.NewPassword); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}
	writeOK(w)
}

// Kick removes a named player from every live container.
func (h *Handler) Kick(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PlayerName string `json:"player_name"`
	}
	if err := decodeBody(r, &body); err != nil || body.PlayerName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "no player specified"})
		return
	}
	h.session.Kick(body.PlayerName)
	log.Printf("kicked player %q", body.PlayerName)
	writeOK(w)
}

// Reset clears the whole session, roster included.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.session.Reset()
	log.Printf("session reset")
	writeOK(w)
}

// WordModeGet reports the active word-pool mode.
func (h *Handler) WordModeGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"mode": h.session.WordMode()})
}

// WordModeSet switches the word-pool mode.
func (h *Handler) WordModeSet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode string `json:"mode"`
	}
	if err := decodeBody(r, &body); err != nil || !game.ValidWordMode(body.Mode) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid mode"})
		return
	}
	h.session.SetWordMode(game.WordMode(body.Mode))
	writeOK(w)
}

// SettingsGet reports the runtime settings.
func (h *Handler) SettingsGet(w http.ResponseWriter, r *http.Request) {
	s := h.session.Settings()
	writeJSON(w, http.StatusOK, map[string]any{
		"min_players":         s.MinPlayers,
		"heartbeat_timeout":   int(s.HeartbeatTimeout / time.Second),
		"sweep_interval":      int(s.SweepInterval / time.Second),
		"announce_spicy_mode": s.AnnounceSpicyMode,
	})
}

// SettingsSet applies partial updates to the runtime settings. Timeouts are
// given in seconds; absent fields keep their values.
func (h *Handler) SettingsSet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		HeartbeatTimeout  *int  `json:"heartbeat_timeout"`
		SweepInterval     *int  `json:"sweep_interval"`
		AnnounceSpicyMode *bool `json:"announce_spicy_mode"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}
	h.session.UpdateSettings(func(s *game.Settings) {
		if body.HeartbeatTimeout != nil && *body.HeartbeatTimeout > 0 {
			s.HeartbeatTimeout = time.Duration(*body.HeartbeatTimeout) * time.Second
		}
		if body.SweepInterval != nil && *body.SweepInterval > 0 {
			s.SweepInterval = time.Duration(*body.SweepInterval) * time.Second
		}
		if body.AnnounceSpicyMode != nil {
			s.AnnounceSpicyMode = *body.AnnounceSpicyMode
		}
	})
	writeOK(w)
}

// Stats serves the operator view, impostor included.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Stats())
}

// ResetLeaderboard clears a counter set, leaving session state alone.
func (h *Handler) ResetLeaderboard(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Which string `json:"which"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}
	if err := h.board.Reset(body.Which); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}
	writeOK(w)
}
