// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storage saves converted output to a local file or to
// S3-compatible object storage. Destinations of the form s3://bucket/key go
// to S3; anything else is a filesystem path.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/equilibrium-team/tweekit-go/pkg/types"
)

const s3Scheme = "s3"

// Store writes one object.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Saver routes a destination to the matching Store.
type Saver struct {
	S3 types.S3Config

	// newS3 builds the S3 store for a bucket; tests replace it.
	newS3 func(cfg types.S3Config, bucket string) (Store, error)
}

// NewSaver returns a Saver that uses cfg for s3:// destinations.
func NewSaver(cfg types.S3Config) *Saver {
	return &Saver{S3: cfg, newS3: func(cfg types.S3Config, bucket string) (Store, error) {
		return NewS3Store(cfg, bucket)
	}}
}

// Save writes data to dest.
func (s *Saver) Save(ctx context.Context, dest string, data []byte, contentType string) error {
	bucket, key, isS3, err := ParseS3URL(dest)
	if err != nil {
		return err
	}
	if !isS3 {
		return LocalStore{}.Put(ctx, dest, data, contentType)
	}
	store, err := s.newS3(s.S3, bucket)
	if err != nil {
		return err
	}
	return store.Put(ctx, key, data, contentType)
}

// ParseS3URL splits an s3://bucket/key destination. isS3 is false for any
// other destination. The key is taken verbatim: '?', '#' and '%' are part
// of the object name, not URL syntax.
func ParseS3URL(dest string) (bucket, key string, isS3 bool, err error) {
	rest, ok := strings.CutPrefix(dest, s3Scheme+"://")
	if !ok {
		return "", "", false, nil
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", true, fmt.Errorf("invalid S3 destination %q: want s3://bucket/key", dest)
	}
	return bucket, key, true, nil
}

// LocalStore writes files to the local filesystem, creating parent
// directories as needed.
type LocalStore struct{}

// Put writes data to the file at key.
func (LocalStore) Put(_ context.Context, key string, data []byte, _ string) error {
	if dir := filepath.Dir(key); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(key, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
