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

// ReplyHandler handles reply-related HTTP requests.
type ReplyHandler struct {
	replyService service.ReplyService
	logger       *slog.Logger
}

// NewReplyHandler creates a new ReplyHandler.
func NewReplyHandler(replyService service.ReplyService, logger *slog.Logger) *ReplyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReplyHandler{
		replyService: replyService,
		logger:       logger.With(slog.String("component", "reply_handler")),
	}
}

// CreateReply handles POST /topics/{id}/replies requests.
func (h *ReplyHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, topicID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req CreateReplyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	reply, err := h.replyService.CreateReply(r.Context(), userID, topicID, req.Message)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("reply created",
		slog.String("reply_id", reply.ID.String()),
		slog.String("topic_id", topicID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, replyToResponse(reply))
}

// ListReplies handles GET /topics/{id}/replies requests. Public, oldest
// first.
func (h *ReplyHandler) ListReplies(w http.ResponseWriter, r *http.Request) {
	topicID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	replies, err := h.replyService.ListReplies(r.Context(), topicID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	responses := make([]ReplyResponse, 0, len(replies))
	for _, reply := range replies {
		responses = append(responses, replyToResponse(reply))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// UpdateReply handles PUT /replies/{id} requests, author only.
func (h *ReplyHandler) UpdateReply(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, replyID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateReplyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	reply, err := h.replyService.UpdateReply(r.Context(), userID, replyID, req.Message)
	if err != nil {
		if errors.Is(err, authz.ErrNotOwner) {
			metrics.OwnershipDenialsTotal.Inc()
			log.Warn("reply update denied",
				slog.String("reply_id", replyID.String()),
				slog.String("user_id", userID.String()))
		}
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, replyToResponse(reply))
}

// DeleteReply handles DELETE /replies/{id} requests, author only.
func (h *ReplyHandler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, replyID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.replyService.DeleteReply(r.Context(), userID, replyID); err != nil {
		if errors.Is(err, authz.ErrNotOwner) {
			metrics.OwnershipDenialsTotal.Inc()
			log.Warn("reply delete denied",
				slog.String("reply_id", replyID.String()),
				slog.String("user_id", userID.String()))
		}
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkSolution handles POST /replies/{id}/solution requests. Only the
// author of the reply's topic may mark the solution; doing so also moves
// the topic to the solved state.
func (h *ReplyHandler) MarkSolution(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, replyID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	reply, err := h.replyService.MarkSolution(r.Context(), userID, replyID)
	if err != nil {
		if errors.Is(err, authz.ErrNotOwner) {
			metrics.OwnershipDenialsTotal.Inc()
			log.Warn("mark solution denied",
				slog.String("reply_id", replyID.String()),
				slog.String("user_id", userID.String()))
		}
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, replyToResponse(reply))
}
