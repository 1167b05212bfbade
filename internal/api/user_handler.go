package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/forum-api/internal/api/shared"
	"github.com/phrazzld/forum-api/internal/platform/logger"
	"github.com/phrazzld/forum-api/internal/platform/metrics"
	"github.com/phrazzld/forum-api/internal/service"
	"github.com/phrazzld/forum-api/internal/service/authz"
)

// UserHandler handles account self-management HTTP requests.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// UpdateUser handles PUT /users/{id} requests. Users may only edit their
// own account; anyone else gets a 403 with no detail about the target.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principalID, userID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userService.UpdateUser(
		r.Context(), principalID, userID, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authz.ErrNotOwner) {
			metrics.OwnershipDenialsTotal.Inc()
			log.Warn("user update denied",
				slog.String("target_user_id", userID.String()),
				slog.String("user_id", principalID.String()))
		}
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// DeleteUser handles DELETE /users/{id} requests, own account only.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principalID, userID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), principalID, userID); err != nil {
		if errors.Is(err, authz.ErrNotOwner) {
			metrics.OwnershipDenialsTotal.Inc()
			log.Warn("user delete denied",
				slog.String("target_user_id", userID.String()),
				slog.String("user_id", principalID.String()))
		}
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
