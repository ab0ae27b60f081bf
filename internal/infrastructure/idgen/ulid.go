package idgen

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates entry ids. ULIDs sort by creation time, so the id tie-break
// in display order agrees with recording order.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
