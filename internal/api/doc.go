// Package api exposes the forum over HTTP. It owns routing, request
// decoding and validation, and response shaping, translating HTTP
// concerns into calls on the application services and mapping their
// errors back to status codes.
package api
