// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and stores
// (defined in internal/store) to fulfill application features, and enforces
// the ownership rule for mutating operations.
//
// Services receive dependencies through constructor injection and return
// sentinel errors for expected conditions; the API layer maps those errors
// to HTTP status codes.
package service
