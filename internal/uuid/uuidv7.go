// Package uuid generates the time-ordered identifiers used for session rows.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a new UUIDv7 string. UUIDv7 sorts by creation time, which keeps
// session lookups index-friendly. Falls back to a random v4 if the v7 clock
// source fails.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.NewString()
	}
	return id.String()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
