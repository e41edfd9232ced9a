package handler

import (
	"net/http"

	"osday/internal/api/middleware"
	"osday/internal/app/service"
	"osday/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterOAuthRoutes hangs the browser-facing OAuth endpoints off the root
// router; they redirect rather than speak JSON.
func (h *AuthHandler) RegisterOAuthRoutes(r chi.Router) {
	r.Get("/auth/github", h.login)
	r.Get("/auth/github/callback", h.callback)
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.Identify).Get("/status", h.status)
	r.Post("/logout", h.logout)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.authService.LoginRedirectURL(), http.StatusFound)
}

func (h *AuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	redirect, err := h.authService.HandleCallback(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Authentication failed: "+err.Error())
		return
	}
	http.Redirect(w, r, redirect, http.StatusFound)
}

type authStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId,omitempty"`
	Handle        string `json:"handle,omitempty"`
}

func (h *AuthHandler) status(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithJSON(w, http.StatusOK, authStatusResponse{Authenticated: false})
		return
	}
	handle, _ := middleware.GetHandleFromContext(r.Context())
	common.RespondWithJSON(w, http.StatusOK, authStatusResponse{
		Authenticated: true,
		UserID:        userID,
		Handle:        handle,
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; the client discards its copy.
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
