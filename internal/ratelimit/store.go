// Package ratelimit implements fixed-window request limiting per client.
package ratelimit

import (
	"context"
	"time"
)

// Result describes a key's window after a hit has been counted
type Result struct {
	// Count is the number of hits in the current window, including this one
	Count int64
	// ResetAfter is the time left until the window closes
	ResetAfter time.Duration
}

// Store counts hits per key within a fixed window
type Store interface {
	Take(ctx context.Context, key string) (Result, error)
}
