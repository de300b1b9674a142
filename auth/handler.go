package auth

import (
	"encoding/json"
	"log"
	"net/http"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 20
	minPasswordLength = 6
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves /api/auth/register and /api/auth/login.
type Handler struct {
	users  *UserStore
	tokens *TokenIssuer
}

func NewHandler(users *UserStore, tokens *TokenIssuer) *Handler {
	return &Handler{users: users, tokens: tokens}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if msg := validateCredentials(req); msg != "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	user, err := h.users.Create(req.Username, req.Password)
	if err != nil {
		if err == ErrUsernameTaken {
			respondJSON(w, http.StatusConflict, errorResponse{Error: "Username already exists"})
			return
		}
		log.Printf("[auth] create user failed: %v", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to create user"})
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Printf("[auth] token issue failed: %v", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to generate token"})
		return
	}

	log.Printf("[auth] registered %s", user.Username)
	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Username and password are required"})
		return
	}

	user, err := h.users.Verify(req.Username, req.Password)
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid username or password"})
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Printf("[auth] token issue failed: %v", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to generate token"})
		return
	}

	log.Printf("[auth] login %s", user.Username)
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func validateCredentials(req credentialsRequest) string {
	if len(req.Username) < minUsernameLength || len(req.Username) > maxUsernameLength {
		return "Username must be between 3 and 20 characters"
	}
	if len(req.Password) < minPasswordLength {
		return "Password must be at least 6 characters"
	}
	return ""
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[auth] response encode failed: %v", err)
	}
}
