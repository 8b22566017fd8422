// Package system adapts process-level facilities (wall clock, identifier
// minting) to the application ports.
package system

import (
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/minebot/internal/ports"
)

// Clock reads the wall clock in UTC.
type Clock struct{}

func (Clock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator mints random (version 4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

var (
	_ ports.Clock       = Clock{}
	_ ports.IDGenerator = UUIDGenerator{}
)
