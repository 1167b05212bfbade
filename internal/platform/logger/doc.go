// Package logger provides structured logging functionality for the
// application, including context propagation helpers.
package logger
