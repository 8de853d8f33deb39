// internal/store/store.go

// Package store is the persisted collection port: a synchronous key/value
// contract where each key holds one whole serialized collection. Callers read
// and write collections as a unit; there are no cross-key transactions.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when the key has never been written.
var ErrNotFound = errors.New("store: key not found")

type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	Close() error
}

type prefixed struct {
	Store
	prefix string
}

// WithPrefix namespaces every key of s. An empty prefix returns s unchanged.
func WithPrefix(s Store, prefix string) Store {
	if prefix == "" {
		return s
	}
	return &prefixed{Store: s, prefix: prefix}
}

func (p *prefixed) Read(ctx context.Context, key string) ([]byte, error) {
	return p.Store.Read(ctx, p.prefix+key)
}

func (p *prefixed) Write(ctx context.Context, key string, value []byte) error {
	return p.Store.Write(ctx, p.prefix+key, value)
}
