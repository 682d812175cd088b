package ids

import "github.com/google/uuid"

// Generator hands out player ids
type Generator interface {
	NewID() string
}

// UUIDGenerator produces random (version 4) UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a fresh UUIDv4 string
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
