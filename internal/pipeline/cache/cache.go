// Package cache is the pipeline's file-based response cache: one file per
// key, named by the key's MD5 so arbitrary URLs and queries stay safe as
// file names.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type Cache struct {
	dir string
}

func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir: %w", err)
	}

	return &Cache{dir: dir}, nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	return data, true
}

func (c *Cache) Put(key string, data []byte) error {
	// Write-then-rename keeps readers away from partial files.
	tmp := c.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("cache: write: %w", err)
	}

	if err := os.Rename(tmp, c.path(key)); err != nil {
		return fmt.Errorf("cache: rename: %w", err)
	}

	return nil
}

func (c *Cache) Has(key string) bool {
	_, err := os.Stat(c.path(key))
	return !errors.Is(err, fs.ErrNotExist)
}

func (c *Cache) path(key string) string {
	sum := md5.Sum([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}
