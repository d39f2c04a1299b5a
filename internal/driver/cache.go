package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"hash"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"hush/internal/rewrite"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest - sha256 всего, что влияет на результат Transform.
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// DiskCache хранит успешные результаты batch-режима по Digest.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached Output.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path string
	Code string
	Map  string

	Visited   int
	Rewritten int
	Skipped   int
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "out", key.String()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
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
		// после Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload.Schema = diskCacheSchemaVersion
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

// Get reads a payload. A missing entry or one written by another schema is a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	// #nosec G304 -- path is derived from the digest
	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		*out = DiskPayload{}
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
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

// cacheKey: H(schema || names || emit options || filename || content).
// Формат ошибок не входит в ключ: кэшируются только успехи.
func (c *Compiler) cacheKey(filename string, content []byte, opts Options) Digest {
	h := sha256.New()
	writeU64(h, uint64(diskCacheSchemaVersion))
	names := c.pass.Names()
	writeU64(h, uint64(len(names)))
	for _, n := range names {
		writeBytes(h, []byte(n))
	}
	writeU64(h, uint64(max(c.emitOpts.IndentWidth, 0)))
	writeBool(h, c.emitOpts.UseTabs)
	writeBool(h, opts.SourceMap)
	writeBytes(h, []byte(filename))
	writeBytes(h, content)

	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func writeU64(h hash.Hash, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = h.Write(buf[:])
}

// writeBytes пишет длину перед данными, чтобы границы полей не склеивались.
func writeBytes(h hash.Hash, b []byte) {
	writeU64(h, uint64(len(b)))
	_, _ = h.Write(b)
}

func writeBool(h hash.Hash, v bool) {
	if v {
		_, _ = h.Write([]byte{1})
		return
	}
	_, _ = h.Write([]byte{0})
}

func payloadFor(path string, out *Output) *DiskPayload {
	return &DiskPayload{
		Path:      path,
		Code:      out.Code,
		Map:       out.Map,
		Visited:   out.Stats.Visited,
		Rewritten: out.Stats.Rewritten,
		Skipped:   out.Stats.Skipped,
	}
}

func (p *DiskPayload) output() *Output {
	return &Output{
		Code: p.Code,
		Map:  p.Map,
		Stats: rewrite.Stats{
			Visited:   p.Visited,
			Rewritten: p.Rewritten,
			Skipped:   p.Skipped,
		},
	}
}
