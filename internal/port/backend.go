package port

import (
	"context"
	"errors"
)

//go:generate mockgen -destination=../service/mocks/backend_mock.go -package=mocks -source=backend.go

// ErrKeyNotFound is returned by Get/GetBinary when the key is absent.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the storage capability the orchestrator is built on.
// Each call is independently durable once it returns; there is no atomicity
// or ordering guarantee across keys. Text and binary values share one
// keyspace and are distinguished by stored type.
type KeyValueStore interface {
	// Get reads a text value. Absent keys return ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// GetBinary reads a binary value. Absent keys return ErrKeyNotFound.
	GetBinary(ctx context.Context, key string) ([]byte, error)

	// Set writes a text value, overwriting any previous value.
	Set(ctx context.Context, key string, value string) error

	// SetBinary writes a binary value, overwriting any previous value.
	SetBinary(ctx context.Context, key string, value []byte) error

	// AppendToList appends a value to the end of a named list.
	AppendToList(ctx context.Context, listKey string, value string) error

	// GetFullList returns all elements of a named list in append order.
	// A missing list reads as empty.
	GetFullList(ctx context.Context, listKey string) ([]string, error)

	// ListKeys resolves keys matching a glob-style pattern. Scalar and
	// list keys are both enumerable (a list appears under its own name,
	// as in Redis); how an implementation stores list elements is never
	// surfaced.
	ListKeys(ctx context.Context, pattern string) ([]string, error)
}
