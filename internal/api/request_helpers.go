package api

import "github.com/google/uuid"

// parseUUIDField parses a UUID carried in a request body field.
func parseUUIDField(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}
