// Package kv is the local key-value persistence the favorites store writes
// its serialised list to. Each backend stores opaque blobs under string keys
// and overwrites them wholesale.
package kv

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("kv: key not found")

type Storage interface {
	// Get returns ErrNotFound when key has never been set.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
