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

// TopicHandler handles topic-related HTTP requests.
type TopicHandler struct {
	topicService service.TopicService
	logger       *slog.Logger
}

// NewTopicHandler creates a new TopicHandler.
func NewTopicHandler(topicService service.TopicService, logger *slog.Logger) *TopicHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TopicHandler{
		topicService: topicService,
		logger:       logger.With(slog.String("component", "topic_handler")),
	}
}

// CreateTopic handles POST /topics requests.
func (h *TopicHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTopicRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	topic, err := h.topicService.CreateTopic(
		r.Context(), userID, req.CourseName, req.Title, req.Message)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("topic created",
		slog.String("topic_id", topic.ID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, topicToResponse(topic))
}

// ListTopics handles GET /topics requests. The listing is public and
// paginated, newest topics first.
func (h *TopicHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	page := getPageFromQuery(r)

	result, err := h.topicService.ListTopics(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list topics")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, topicPageToResponse(result, page))
}

// GetTopic handles GET /topics/{id} requests.
func (h *TopicHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topicID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	topic, err := h.topicService.GetTopic(r.Context(), topicID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, topicToResponse(topic))
}

// UpdateTopic handles PUT /topics/{id} requests. Only the topic's author
// may edit it; anyone else gets a 403 with no detail about the owner.
func (h *TopicHandler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, topicID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateTopicRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	topic, err := h.topicService.UpdateTopic(
		r.Context(), userID, topicID, req.Title, req.Message, req.CourseName)
	if err != nil {
		if errors.Is(err, authz.ErrNotOwner) {
			metrics.OwnershipDenialsTotal.Inc()
			log.Warn("topic update denied",
				slog.String("topic_id", topicID.String()),
				slog.String("user_id", userID.String()))
		}
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, topicToResponse(topic))
}

// DeleteTopic handles DELETE /topics/{id} requests, author only.
func (h *TopicHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, topicID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.topicService.DeleteTopic(r.Context(), userID, topicID); err != nil {
		if errors.Is(err, authz.ErrNotOwner) {
			metrics.OwnershipDenialsTotal.Inc()
			log.Warn("topic delete denied",
				slog.String("topic_id", topicID.String()),
				slog.String("user_id", userID.String()))
		}
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
