package game

import (
	"math/rand"

	"github.com/google/uuid"
)

// IDGenerator returns a fresh identifier for each spawn log entry.
type IDGenerator func() string

// RandomIDs draws version 4 UUIDs from crypto/rand.
func RandomIDs() IDGenerator {
	return uuid.NewString
}

// SeededIDs draws version 4 UUIDs from a seeded source so a replayed round
// logs the same identifiers.
func SeededIDs(seed int64) IDGenerator {
	src := rand.New(rand.NewSource(seed))
	return func() string {
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			return uuid.NewString()
		}
		return id.String()
	}
}
