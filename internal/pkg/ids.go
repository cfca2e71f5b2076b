package pkg

import "github.com/google/uuid"

// GenerateGameID - returns a new random game id.
func GenerateGameID() string {
	return uuid.NewString()
}

// IsValidGameID reports whether id looks like an id made by GenerateGameID.
func IsValidGameID(id string) bool {
	return uuid.Validate(id) == nil
}
