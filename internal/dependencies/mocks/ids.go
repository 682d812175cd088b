package mocks

import (
	"fmt"

	"github.com/mcoot/benched/internal/dependencies/ids"
)

// SequentialIDs hands out predictable ids: p1, p2, ...
type SequentialIDs struct {
	Prefix string
	next   int
}

// Ensure SequentialIDs implements Generator
var _ ids.Generator = (*SequentialIDs)(nil)

// NewSequentialIDs creates a generator with the "p" prefix
func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{Prefix: "p"}
}

// NewID returns the next id in sequence
func (g *SequentialIDs) NewID() string {
	g.next++
	return fmt.Sprintf("%s%d", g.Prefix, g.next)
}
