package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kiwari-pos/restaurant/internal/auth"
	"github.com/kiwari-pos/restaurant/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles staff login.
type AuthHandler struct {
	staff     []config.StaffMember
	jwtSecret string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(staff []config.StaffMember, jwtSecret string) *AuthHandler {
	return &AuthHandler{staff: staff, jwtSecret: jwtSecret}
}

// RegisterRoutes registers auth endpoints on the given Chi router.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
}

// --- Request / Response types ---

type loginRequest struct {
	Name string `json:"name"`
	Pin  string `json:"pin"`
}

type tokenResponse struct {
	AccessToken string        `json:"access_token"`
	Staff       staffResponse `json:"staff"`
}

type staffResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

// --- Handlers ---

// Login handles name + PIN authentication against the configured staff.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Name == "" || req.Pin == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and pin are required"})
		return
	}

	member, ok := h.findStaff(req.Name)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PINHash), []byte(req.Pin)); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	if !auth.ValidRole(member.Role) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "unknown staff role"})
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, member.ID, member.Name, member.Role)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		Staff: staffResponse{
			ID:   member.ID,
			Name: member.Name,
			Role: member.Role,
		},
	})
}

// --- Helpers ---

func (h *AuthHandler) findStaff(name string) (config.StaffMember, bool) {
	for _, m := range h.staff {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return config.StaffMember{}, false
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}
