// Package identity supplies ids and timestamps for new users.
package identity

import (
	"time"

	"github.com/google/uuid"

	"taskflow_backend/internal/feature/users/usecase"
)

// TimestampLayout is the storage encoding for user timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Generator mints UUIDv4 identifiers.
type Generator struct{}

// Compile-time check that Generator implements usecase.IDGenerator.
var _ usecase.IDGenerator = Generator{}

// NewID returns a fresh UUIDv4 string.
func (Generator) NewID() string {
	return uuid.NewString()
}

// RealClock renders the wall clock in the storage encoding.
type RealClock struct{}

// Compile-time check that RealClock implements usecase.Clock.
var _ usecase.Clock = RealClock{}

// Now returns the current UTC time as a storage-encoded string.
func (RealClock) Now() string {
	return time.Now().UTC().Format(TimestampLayout)
}
