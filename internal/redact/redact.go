// Package redact removes sensitive information from strings before they are
// logged or returned in error responses. The authentication layer must never
// log plaintext passwords or token values; every error that crosses a logging
// boundary goes through this package first.
package redact

import "regexp"

// Redaction placeholders.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
)

var (
	// Database connection strings with embedded credentials.
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// Password values in key=value or key: value form.
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// Signed tokens in their standard three-part base64url form.
	jwtRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Bearer header values that are not JWTs.
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]{8,}`)

	// Email addresses (user identifiers).
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	replacements = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{dbConnRegex, CredentialPlaceholder},
		{passwordRegex, CredentialPlaceholder},
		{jwtRegex, TokenPlaceholder},
		{bearerRegex, TokenPlaceholder},
		{emailRegex, EmailPlaceholder},
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
