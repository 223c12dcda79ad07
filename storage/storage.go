// Package storage provides the durable key-value backends the session store
// mirrors into. Values are opaque strings.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("storage: key not found")

type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Del removes every key in one call. Missing keys are not an error.
	Del(ctx context.Context, keys ...string) error
}
