package pkg

import "github.com/google/uuid"

// GenerateNewSessionID - returns an identifier for a player session. Games are stored under it.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
