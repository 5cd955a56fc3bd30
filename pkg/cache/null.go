package cache

import (
	"context"
	"time"
)

// NullCache stores nothing, so every lookup is a miss and the pipeline
// renders from scratch. Reason records why caching is off; the CLI shows it.
type NullCache struct {
	Reason string
}

// NewNullCache returns a NullCache with no reason attached.
func NewNullCache() Cache {
	return &NullCache{}
}

// Disabled returns a NullCache that remembers why caching was turned off.
func Disabled(reason string) *NullCache {
	return &NullCache{Reason: reason}
}

// Get always misses.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set, Delete and Close succeed without doing anything.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }

// String describes the cache for log and status lines.
func (c *NullCache) String() string {
	if c.Reason == "" {
		return "disabled"
	}
	return "disabled (" + c.Reason + ")"
}

var _ Cache = (*NullCache)(nil)
