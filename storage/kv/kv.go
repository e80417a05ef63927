// Package kv defines the key-value store the attendance records are persisted in.
package kv

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("key not found")

// Store keeps raw blobs under string keys. Every Put replaces the whole value.
type Store interface {
	// Get returns ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
