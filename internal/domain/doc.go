// Package domain defines the core forum entities and their validation rules.
package domain
