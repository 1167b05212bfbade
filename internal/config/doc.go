// Package config defines the application configuration structures
// and loading logic.
package config
