package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wealthtracker/internal/user"
)

type Handler struct {
	service      Service
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewAuthHandler(
	service Service,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *Handler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &Handler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type loginRequest struct {
	LoginOrEmail string `json:"login_or_email"`
	Password     string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.LoginOrEmail == "" || req.Password == "" {
		h.respondError(w, http.StatusBadRequest, "Login and password are required")
		return
	}

	token, existingUser, err := h.service.Login(req.LoginOrEmail, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			h.respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		log.Printf("Error during login: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"access_token": token,
			"user":         existingUser,
		},
	})
}
