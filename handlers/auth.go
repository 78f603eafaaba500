package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/vwin2537-arch/FireCheckPointReport/auth"
)

type AuthHandler struct {
	passcodeHash string
	jwtManager   *auth.JWTManager
}

func NewAuthHandler(passcodeHash string, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		passcodeHash: passcodeHash,
		jwtManager:   jwtManager,
	}
}

type LoginRequest struct {
	Passcode string `json:"passcode"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Login checks the shared dashboard passcode and issues a session token.
// There are no per-user accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.passcodeHash == "" {
		writeError(w, "Dashboard login is not configured", http.StatusServiceUnavailable)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Passcode == "" {
		writeError(w, "Passcode is required", http.StatusBadRequest)
		return
	}

	if err := auth.CheckPasscode(req.Passcode, h.passcodeHash); err != nil {
		log.Printf("Login failed: invalid passcode")
		writeError(w, "Invalid passcode", http.StatusUnauthorized)
		return
	}

	token, err := h.jwtManager.GenerateToken(uuid.NewString())
	if err != nil {
		log.Printf("Failed to generate session token: %v", err)
		writeError(w, "Failed to generate session token", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Dashboard session opened")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{Token: token})
}
