// Package kv implements the durable key/value area SharkBite keeps its state
// in. It plays the part a browser's local storage plays for a web page.
package kv

import "context"

// Repository is a string-keyed blob store.
//
// Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
