package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/restaurant-orders/internal/api/middleware"
	"github.com/example/restaurant-orders/internal/auth"
	"github.com/example/restaurant-orders/internal/user"
)

// AuthHandlers handles registration, login and identity lookup.
type AuthHandlers struct {
	users      *user.Store
	jwtService *auth.JWTService
}

func NewAuthHandlers(users *user.Store, jwtService *auth.JWTService) *AuthHandlers {
	return &AuthHandlers{users: users, jwtService: jwtService}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the public shape of an account; the password hash
// never leaves the store.
type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		respondMessage(w, http.StatusBadRequest, "Name and email are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		respondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	u := &user.User{Name: req.Name, Email: req.Email, PasswordHash: hash}
	if _, err := h.users.Insert(r.Context(), u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			respondMessage(w, http.StatusBadRequest, "User already exists")
			return
		}
		respondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role},
	})
}

func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, ok, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok || !auth.CheckPassword(req.Password, u.PasswordHash) {
		respondMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.jwtService.GenerateToken(u.ID, u.Role)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"role":  u.Role,
		"name":  u.Name,
	})
}

// Me returns the authenticated caller's account details.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	u, ok, err := h.users.FindByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
}
