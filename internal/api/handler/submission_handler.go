package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"osday/internal/api/middleware"
	"osday/internal/app/service"
	"osday/internal/common"

	"github.com/go-chi/chi/v5"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

func NewSubmissionHandler(ss *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: ss}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	// Submit accepts anonymous requests; the service falls back to the
	// test identity when no user is attached.
	r.With(middleware.Identify).Post("/", h.submit)
}

func (h *SubmissionHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithStatusError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error(), "failed")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())

	result, err := h.submissionService.Submit(r.Context(), userID, req)
	if err != nil {
		common.RespondWithStatusError(w, common.HTTPStatusFromError(err), err.Error(), submitErrorStatus(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

// submitErrorStatus buckets submit failures for the frontend: "duplicate"
// for the duplicate rule, "failed" for user-correctable validation errors,
// "error" for everything else.
func submitErrorStatus(err error) string {
	switch {
	case errors.Is(err, common.ErrDuplicateSubmission):
		return "duplicate"
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrBadRequest):
		return "failed"
	default:
		return "error"
	}
}
