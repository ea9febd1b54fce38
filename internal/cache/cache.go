package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("key not found in cache")
	ErrInvalidKey = errors.New("invalid cache key")
)

// Cache stores JSON-encodable values.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Get(ctx context.Context, key string, value interface{}) error

	Delete(ctx context.Context, key string) error

	Close() error
}

const DefaultTTL = 24 * time.Hour

// Nop is used when no cache backend is configured. Every Get misses.
type Nop struct{}

func (Nop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Nop) Get(context.Context, string, interface{}) error                { return ErrNotFound }
func (Nop) Delete(context.Context, string) error                          { return nil }
func (Nop) Close() error                                                  { return nil }
