package blobstore

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Dir is a Store over the local filesystem: each bucket is a subdirectory of
// Root and object keys are slash-separated paths relative to it.
type Dir struct {
	Root string
}

// NewDir creates a directory-backed store rooted at root.
func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

// List returns all regular files under the bucket directory, sorted by key.
func (d *Dir) List(ctx context.Context, bucket string) ([]string, error) {
	base := filepath.Join(d.Root, bucket)
	info, err := os.Stat(base)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("bucket %q is not a directory", bucket)
	}

	var keys []string
	err = filepath.WalkDir(base, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(keys)
	return keys, nil
}

// Get reads one object. Keys escaping the bucket directory are rejected.
func (d *Dir) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	local := filepath.FromSlash(key)
	if !filepath.IsLocal(local) {
		return nil, fmt.Errorf("invalid object key %q", key)
	}
	return os.ReadFile(filepath.Join(d.Root, bucket, local))
}
