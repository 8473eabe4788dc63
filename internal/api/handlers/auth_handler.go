package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/repfit/workout-tracker-be/internal/auth"
	"github.com/repfit/workout-tracker-be/internal/services"
)

// AuthHandler handles signup, login and identity requests.
type AuthHandler struct {
	service services.UserServiceProvider
	jwt     *auth.JWT
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, jwt *auth.JWT) *AuthHandler {
	return &AuthHandler{service: service, jwt: jwt}
}

// CredentialsPayload defines the structure for signup and login requests.
type CredentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Signup registers a new account and returns a token for it.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		respondMsg(w, http.StatusBadRequest, "email and password required")
		return
	}

	user, err := h.service.CreateUser(payload.Email, payload.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := h.jwt.Generate(user)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate token")
		respondMsg(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respondJSON(w, http.StatusCreated, TokenResponse{AccessToken: token})
}

// Login authenticates credentials and returns a token. Unknown email and
// wrong password are answered identically.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.AuthenticateUser(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		respondMsg(w, http.StatusUnauthorized, "bad email or password")
		return
	}

	token, err := h.jwt.Generate(user)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate token")
		respondMsg(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{AccessToken: token})
}

// Me returns the id and email of the token's user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondMsg(w, http.StatusUnauthorized, "missing auth token")
		return
	}

	user, err := h.service.GetUserByID(claims.UserID)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", claims.UserID).Msg("User from token not found")
		respondMsg(w, http.StatusUnauthorized, "invalid auth token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
	})
}
