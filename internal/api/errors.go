package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/forum-api/internal/api/shared"
	"github.com/phrazzld/forum-api/internal/domain"
	"github.com/phrazzld/forum-api/internal/service/auth"
	"github.com/phrazzld/forum-api/internal/service/authz"
	"github.com/phrazzld/forum-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// error type, so internal error shapes never dictate the wire contract.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrAuthenticationFailed),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Ownership denials
	case errors.Is(err, authz.ErrNotOwner):
		return http.StatusForbidden

	// Not found errors. The generic sentinel also covers rows that vanish
	// between a service's read and its write, which the store layer reports
	// without an entity-specific wrapper.
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Internal details never pass through to clients. In particular,
// ownership denials reveal nothing about who does own the resource, and
// failed logins never say whether the email or the password was wrong.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrAuthenticationFailed):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, authz.ErrNotOwner):
		return "You do not have permission to modify this resource"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrCourseNotFound):
		return "Course not found"

	case errors.Is(err, store.ErrTopicNotFound):
		return "Topic not found"

	case errors.Is(err, store.ErrReplyNotFound):
		return "Reply not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"

	case errors.Is(err, store.ErrCourseExists):
		return "Course already exists"

	// Generic store sentinels, for paths that report without an
	// entity-specific wrapper.
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, store.ErrInvalidEntity):
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return fmt.Sprintf("Invalid %s: %s", vErr.Field, vErr.Message)
		}
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to a status code and a safe message and writes
// the response, logging the full error with redaction. An explicit
// overrideMessage replaces the mapped message when non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, overrideMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if overrideMessage != "" {
		message = overrideMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError converts a validator library error into a
// user-friendly message without echoing the submitted values.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Validator messages look like:
	// "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly messages.
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
