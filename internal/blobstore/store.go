// Package blobstore provides the object-store collaborators the export
// reader fetches raw chat exports from.
package blobstore

import "context"

// Store lists and fetches objects within a named bucket.
//
// Implementations return their transport errors as-is; callers are expected
// to surface them without retrying.
type Store interface {
	List(ctx context.Context, bucket string) ([]string, error)
	Get(ctx context.Context, bucket, key string) ([]byte, error)
}
