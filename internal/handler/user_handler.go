package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"pokedex-api/internal/domain"
	"pokedex-api/internal/middleware"
	"pokedex-api/internal/service"
)

// UserHandler handles signup, login, logout and the current-user endpoint
type UserHandler struct {
	authService *service.AuthService
	sessionTTL  time.Duration
}

// NewUserHandler creates a new user handler. sessionTTL sizes the cookie
// MaxAge to match the session store's idle timeout.
func NewUserHandler(authService *service.AuthService, sessionTTL time.Duration) *UserHandler {
	return &UserHandler{
		authService: authService,
		sessionTTL:  sessionTTL,
	}
}

// SignUpRequest represents the signup request body
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the client-facing account projection. Email is only set
// for the owner's view; the credential hash never appears.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ownerView includes email, which only the owner's own requests receive.
func ownerView(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// SignUp handles POST /user/signup. A successful signup binds a session so
// the new user is immediately logged in.
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}

	user, session, err := h.authService.SignUp(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setSessionCookie(w, session.Token)
	writeJSON(w, http.StatusCreated, ownerView(user))
}

// Login handles POST /user/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}

	user, session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setSessionCookie(w, session.Token)
	writeJSON(w, http.StatusCreated, ownerView(user))
}

// Logout handles POST /user/logout. A session store failure surfaces as a
// 500; the cookie is only cleared once the server-side session is gone.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Not authenticated"})
		return
	}

	if err := h.authService.Logout(r.Context(), session.Token); err != nil {
		writeError(w, r, err)
		return
	}

	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusOK)
}

// Me handles GET /user/. The owner's view includes email.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Not authenticated"})
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ownerView(user))
}

func (h *UserHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *UserHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	})
}
