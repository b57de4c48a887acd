// Package cache keeps compiled assembly on disk, keyed by source content
// and the options that shaped the output.
package cache

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"whilec/internal/project"
)

// SchemaVersion is bumped whenever Payload or the key derivation changes.
const SchemaVersion uint16 = 1

// DiskCache stores payloads under <dir>/asm/<key>.mp. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Payload is what a cache hit restores.
type Payload struct {
	Schema     uint16
	SourcePath string
	SourceHash project.Digest
	OptionsKey string
	Assembly   string
	Blocks     int
	Symbols    []string
}

// Dir returns the default cache directory for app ($XDG_CACHE_HOME/app or ~/.cache/app).
func Dir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// Open returns the cache at the default location for app.
func Open(app string) (*DiskCache, error) {
	dir, err := Dir(app)
	if err != nil {
		return nil, err
	}
	return OpenAt(dir)
}

// OpenAt creates dir if needed.
func OpenAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Key derives the cache key of a source/options pair.
func Key(source project.Digest, optionsKey string) project.Digest {
	var schema project.Digest
	schema[0] = byte(SchemaVersion >> 8)
	schema[1] = byte(SchemaVersion)
	return project.Combine(schema, source, project.HashString(optionsKey))
}

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "asm", hex.EncodeToString(key[:])+".mp")
}

// Put writes payload atomically.
func (c *DiskCache) Put(key project.Digest, payload *Payload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload.Schema = SchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get loads the payload for key. A missing entry or one written by another
// schema is a miss, not an error.
func (c *DiskCache) Get(key project.Digest, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("cache: corrupt entry %s: %w", filepath.Base(f.Name()), err)
	}
	if out.Schema != SchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименовываем и удаляем, чтобы параллельный Put не увидел полупустой каталог
	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
