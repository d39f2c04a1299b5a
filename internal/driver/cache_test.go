package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)

	key := NewCompiler().cacheKey("a.js", []byte("console.log(1)"), Options{})
	var got DiskPayload
	ok, err := cache.Get(key, &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put(key, &DiskPayload{Path: "a.js", Code: "(void 0)(1);\n", Rewritten: 1}))
	ok, err = cache.Get(key, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, diskCacheSchemaVersion, got.Schema)
	assert.Equal(t, "(void 0)(1);\n", got.Code)
	assert.Equal(t, 1, got.output().Stats.Rewritten)

	require.NoError(t, cache.DropAll())
	ok, err = cache.Get(key, &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache
	ok, err := cache.Get(Digest{}, &DiskPayload{})
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, cache.Put(Digest{}, &DiskPayload{}))
	assert.NoError(t, cache.DropAll())
	assert.Empty(t, cache.Dir())
}

func TestCacheKeyInputs(t *testing.T) {
	c := NewCompiler()
	base := c.cacheKey("a.js", []byte("x"), Options{})
	assert.Equal(t, base, c.cacheKey("a.js", []byte("x"), Options{}))
	assert.Equal(t, base, c.cacheKey("a.js", []byte("x"), Options{MaxErrors: 3}))

	assert.NotEqual(t, base, c.cacheKey("b.js", []byte("x"), Options{}))
	assert.NotEqual(t, base, c.cacheKey("a.js", []byte("y"), Options{}))
	assert.NotEqual(t, base, c.cacheKey("a.js", []byte("x"), Options{SourceMap: true}))
	assert.NotEqual(t, base, NewCompiler(WithNames("logger")).cacheKey("a.js", []byte("x"), Options{}))
	assert.NotEqual(t, base, NewCompiler(WithIndent(2, false)).cacheKey("a.js", []byte("x"), Options{}))
	// границы полей не склеиваются
	assert.NotEqual(t, c.cacheKey("ab", []byte("c"), Options{}), c.cacheKey("a", []byte("bc"), Options{}))
}

func TestTransformPathsUsesCache(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.js")
	writeFile(t, path, "console.log(1)\n")

	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	c := NewCompiler()
	opts := BatchOptions{Cache: cache}

	first, err := c.TransformPaths(context.Background(), []string{root}, opts)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.False(t, first[0].Cached)

	second, err := c.TransformPaths(context.Background(), []string{root}, opts)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.True(t, second[0].Cached)
	assert.Equal(t, first[0].Output.Code, second[0].Output.Code)
	assert.Equal(t, 1, second[0].Output.Stats.Rewritten)

	require.NoError(t, os.WriteFile(path, []byte("console.log(2)\n"), 0o600))
	third, err := c.TransformPaths(context.Background(), []string{root}, opts)
	require.NoError(t, err)
	assert.False(t, third[0].Cached)
	assert.Equal(t, "(void 0)(2);\n", third[0].Output.Code)
}
