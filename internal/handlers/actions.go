package handlers

import (
	"log"
	"net/http"
)

// Join binds the caller's session to a name and adds them to the lobby.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	token := getOrCreateSession(w, r)

	var body struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}

	if err := h.session.Join(token, body.Name); err != nil {
		writeGameError(w, err)
		return
	}
	log.Printf("player %q joined", body.Name)
	writeOK(w)
}

// Leave removes the caller from the lobby and drops their binding.
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	token := getOrCreateSession(w, r)
	if err := h.session.Leave(token); err != nil {
		writeGameError(w, err)
		return
	}
	writeOK(w)
}

// StartGame begins a round.
func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Start(); err != nil {
		writeGameError(w, err)
		return
	}
	log.Printf("game started")
	writeOK(w)
}

// StartVote records a lobby vote to start; unanimity starts the game.
func (h *Handler) StartVote(w http.ResponseWriter, r *http.Request) {
	token := getOrCreateSession(w, r)
	started, err := h.session.StartVote(token)
	if err != nil {
		writeGameError(w, err)
		return
	}
	votes, total := h.session.StartVotes()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"started": started,
		"votes":   votes,
		"total":   total,
	})
}

// StartVotes reports the current vote-to-start tally.
func (h *Handler) StartVotes(w http.ResponseWriter, r *http.Request) {
	votes, total := h.session.StartVotes()
	writeJSON(w, http.StatusOK, map[string]any{"votes": votes, "total": total})
}

// Reveal makes roles visible to their owners.
func (h *Handler) Reveal(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Reveal(); err != nil {
		writeGameError(w, err)
		return
	}
	writeOK(w)
}

// Rejoin re-binds the caller to their in-game identity after a disconnect.
func (h *Handler) Rejoin(w http.ResponseWriter, r *http.Request) {
	token := getOrCreateSession(w, r)

	var body struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}
	if err := h.session.Rejoin(token, body.Name); err != nil {
		writeGameError(w, err)
		return
	}
	writeOK(w)
}

// SendMessage appends a chat message to the caller's phase queue.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	token := getOrCreateSession(w, r)
	h.session.Touch(token)

	var body struct {
		Message string `json:"message"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}
	if err := h.session.SendMessage(token, body.Message); err != nil {
		writeGameError(w, err)
		return
	}
	writeOK(w)
}

// OpenVoting activates voting.
func (h *Handler) OpenVoting(w http.ResponseWriter, r *http.Request) {
	if err := h.session.OpenVoting(); err != nil {
		writeGameError(w, err)
		return
	}
	writeOK(w)
}

// CastVote records the caller's vote.
func (h *Handler) CastVote(w http.ResponseWriter, r *http.Request) {
	token := getOrCreateSession(w, r)
	h.session.Touch(token)

	var body struct {
		VotedPlayer string `json:"voted_player"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}
	if err := h.session.CastVote(token, body.VotedPlayer); err != nil {
		writeGameError(w, err)
		return
	}
	writeOK(w)
}

// CloseVoting ends voting manually, resolving over whatever votes exist.
func (h *Handler) CloseVoting(w http.ResponseWriter, r *http.Request) {
	if err := h.session.CloseVoting(); err != nil {
		writeGameError(w, err)
		return
	}
	writeOK(w)
}

// GuessWord resolves the impostor's one-shot word guess.
func (h *Handler) GuessWord(w http.ResponseWriter, r *http.Request) {
	token := getOrCreateSession(w, r)
	h.session.Touch(token)

	var body struct {
		GuessedWord string `json:"guessed_word"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}
	correct, err := h.session.GuessWord(token, body.GuessedWord)
	if err != nil {
		writeGameError(w, err)
		return
	}
	msg := "Wrong! The players win!"
	if correct {
		msg = "Correct! You win!"
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "correct": correct, "message": msg})
}

// ReturnToLobby clears game state and re-enters the lobby.
func (h *Handler) ReturnToLobby(w http.ResponseWriter, r *http.Request) {
	h.session.ReturnToLobby()
	writeOK(w)
}
