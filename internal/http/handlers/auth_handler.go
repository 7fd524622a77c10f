package handlers

import (
	"net/http"

	"github.com/Suyash1602/airBNB-clone/internal/domain"
	mw "github.com/Suyash1602/airBNB-clone/internal/http/middleware"
	"github.com/Suyash1602/airBNB-clone/internal/http/response"
	"github.com/Suyash1602/airBNB-clone/internal/service"
	"github.com/Suyash1602/airBNB-clone/pkg/logger"
)

type AuthHandler struct {
	authService service.AuthService
	sessions    *mw.Sessions
}

func NewAuthHandler(authService service.AuthService, sessions *mw.Sessions) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decodeStrict(r, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, user.ToUserInfo())
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeStrict(r, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	user, token, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	h.sessions.SetCookie(w, token)
	response.WriteJSON(w, http.StatusOK, user.ToUserInfo())
}

// Logout clears the cookie and, when a valid session was presented, revokes
// its token id so the token cannot be replayed from a saved copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims := mw.Claims(r); claims != nil {
		if err := h.authService.Logout(r.Context(), claims); err != nil {
			logger.ErrorContext(r.Context(), "Failed to revoke session", "error", err)
		}
	}

	h.sessions.ClearCookie(w)
	response.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Profile is the optional-auth route: an anonymous caller gets 200 null,
// not 401.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)
	if claims == nil {
		response.WriteJSON(w, http.StatusOK, nil)
		return
	}

	user, err := h.authService.Profile(r.Context(), claims.Sub)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, user.ToUserInfo())
}
