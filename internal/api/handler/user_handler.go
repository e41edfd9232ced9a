package handler

import (
	"net/http"

	"osday/internal/api/middleware"
	"osday/internal/app/service"
	"osday/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(us *service.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.Authenticator).Get("/me", h.profile)
}

// RegisterLevelRoutes mounts the levels query, which tolerates anonymous
// callers the same way submit does.
func (h *UserHandler) RegisterLevelRoutes(r chi.Router) {
	r.With(middleware.Identify).Get("/", h.levels)
}

func (h *UserHandler) profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized. Please login first.")
		return
	}

	profile, err := h.userService.Profile(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Could not fetch profile")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) levels(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	levels, err := h.userService.Levels(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Could not fetch levels")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, levels)
}
