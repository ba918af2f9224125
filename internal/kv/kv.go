// Package kv provides the ordered key-value store that serves as the
// system of record. Keys are opaque strings; values are JSON documents.
// The only query mechanism beyond exact lookup is a key-prefix scan.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key is absent.
	ErrNotFound = errors.New("key not found")
	// ErrUnavailable wraps any underlying storage failure so callers can
	// distinguish "absent" from "storage unreachable".
	ErrUnavailable = errors.New("storage unavailable")
)

// Entry is one key/value pair returned by a prefix scan.
type Entry struct {
	Key   string
	Value []byte
}

// Store is the single-key-atomic contract every implementation honors.
// ScanPrefix returns entries ordered by key so scans are deterministic
// within a process. No multi-key transactions are provided.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	ScanPrefix(ctx context.Context, prefix string) ([]Entry, error)
}
