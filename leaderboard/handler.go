package leaderboard

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/neon-pong/backend/game"
)

// ErrorResponse is the JSON error body shared across API handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.add(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	mode := game.Mode(r.URL.Query().Get("mode"))
	if mode != "" && !mode.Valid() {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Unknown game mode"})
		return
	}

	limit := DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid limit"})
			return
		}
		limit = n
	}

	entries, err := h.store.List(mode, limit)
	if err != nil {
		log.Printf("[api] leaderboard list failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch leaderboard"})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var entry NewEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := entry.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.store.Add(entry)
	if err != nil {
		log.Printf("[api] leaderboard add failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to add leaderboard entry"})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[api] response encode failed: %v", err)
	}
}
