package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/forum-api/internal/api/shared"
	"github.com/phrazzld/forum-api/internal/platform/logger"
	"github.com/phrazzld/forum-api/internal/service"
)

// CourseHandler handles course-related HTTP requests.
type CourseHandler struct {
	courseService service.CourseService
	logger        *slog.Logger
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService service.CourseService, logger *slog.Logger) *CourseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseHandler{
		courseService: courseService,
		logger:        logger.With(slog.String("component", "course_handler")),
	}
}

// CreateCourse handles POST /courses requests.
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if _, ok := getUserIDFromContext(r); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateCourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	course, err := h.courseService.CreateCourse(r.Context(), req.Name, req.Category)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("course created", slog.String("course_id", course.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, courseToResponse(course))
}

// GetCourse handles GET /courses/{id} requests. Public.
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	course, err := h.courseService.GetCourse(r.Context(), courseID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, courseToResponse(course))
}

// ListCourses handles GET /courses requests. Public.
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.ListCourses(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list courses")
		return
	}

	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, courseToResponse(course))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}
