package handlers

import "net/http"

// Status serves the full session snapshot a polling client works from. The
// read doubles as a heartbeat.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	token := getOrCreateSession(w, r)
	writeJSON(w, http.StatusOK, h.session.Snapshot(token))
}

// Heartbeat is a bare presence touch for clients between polls.
func (h *Handler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session")
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false})
		return
	}
	h.session.Touch(cookie.Value)
	writeOK(w)
}

// Kicked reports, without consuming, whether the caller was removed.
func (h *Handler) Kicked(w http.ResponseWriter, r *http.Request) {
	token := getOrCreateSession(w, r)
	writeJSON(w, http.StatusOK, map[string]any{"was_kicked": h.session.WasKicked(token)})
}

// Leaderboard serves both win tables, sorted.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"players":   h.board.TopPlayers(0),
		"impostors": h.board.TopImpostors(0),
	})
}
