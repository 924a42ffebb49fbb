// Package blobstore provides durable key->binary-object storage for audio
// payloads, kept separate from catalog metadata. One entry per track, keyed
// by the track identifier.
package blobstore

import "context"

// BlobStore is the byte-storage abstraction used by the catalog. All
// implementations are durable across restarts and perform a single attempt
// per call with no internal retry.
type BlobStore interface {
	// Put stores data under key, replacing any previous entry.
	Put(ctx context.Context, key string, data []byte) error
	// Get returns the entry for key, or ok=false when absent.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Delete removes an entry. Missing keys are ignored.
	Delete(ctx context.Context, key string) error
	// Close releases the underlying handle.
	Close() error
}
