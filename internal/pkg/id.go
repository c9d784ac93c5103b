package pkg

import "github.com/google/uuid"

// GenerateNewSessionID returns a fresh identifier for a browser session.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
