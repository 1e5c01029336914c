// Package env reads the process environment directly for the few spots
// that run before config.Load, like the logger's format switch.
package env

import "os"

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
