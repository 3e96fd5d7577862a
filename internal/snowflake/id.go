// Package snowflake provides time-ordered 64 bit entity IDs.
package snowflake

import (
	"math/rand"
	"time"
)

// ID is a 64 bit identifier whose high bits encode the creation time, so
// IDs sort in creation order.
type ID uint64

// Now returns a fresh ID for the current time.
func Now() ID {
	return FromTime(time.Now())
}

// FromTime returns an ID whose embedded timestamp is ts.
func FromTime(ts time.Time) ID {
	// 48 bits for time in milliseconds.
	// 16 bits for random.
	return ID(uint64(ts.UnixNano()/int64(time.Millisecond))<<16 | uint64(rand.Intn(1<<16)))
}

// ToTime returns the timestamp embedded in the ID.
func (id ID) ToTime() time.Time {
	return time.Unix(0, int64(id>>16)*1e6)
}
