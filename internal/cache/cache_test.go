package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/assertia/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultKey(t *testing.T) {
	a := ResultKey("ns", "patient denies chest pain", "chest pain")
	assert.True(t, strings.HasPrefix(a, "assertia:v2:"))
	assert.Equal(t, a, ResultKey("ns", "patient denies chest pain", "chest pain"))
	assert.NotEqual(t, a, ResultKey("ns", "patient denies chest pain", "pain"))
	assert.NotEqual(t, a, ResultKey("other", "patient denies chest pain", "chest pain"))

	// the separator keeps ("ab", "c") and ("a", "bc") apart
	assert.NotEqual(t, ResultKey("ns", "c", "ab"), ResultKey("ns", "bc", "a"))
	assert.NotEqual(t, ResultKey("a", "b", "c"), ResultKey("", "ab", "c"))
}

func TestNew(t *testing.T) {
	assert.Nil(t, New(model.CacheConfig{Enabled: false}))
	assert.IsType(t, &MemoryCache{}, New(model.CacheConfig{Enabled: true}))
	assert.IsType(t, &LayeredCache{}, New(model.CacheConfig{Enabled: true, Dir: t.TempDir()}))
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_, ok := c.Get("k")
	assert.False(t, ok)

	require.NoError(t, c.Set("k", []byte("v"), 0))
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete("k"))
	_, ok = c.Get("k")
	assert.False(t, ok)

	require.NoError(t, c.Set("a", []byte("1"), time.Minute))
	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	require.NoError(t, c.Set("k", []byte("v"), time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDiskCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := NewDiskCache(dir, time.Hour)
	key := ResultKey("", "s", "p")

	_, ok := c.Get(key)
	assert.False(t, ok)

	require.NoError(t, c.Set(key, []byte(`{"x":1}`), 0))
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"x":1}`), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files left behind")
	assert.NotContains(t, entries[0].Name(), ":")

	require.NoError(t, c.Delete(key))
	require.NoError(t, c.Delete(key), "deleting a missing entry is not an error")
	_, ok = c.Get(key)
	assert.False(t, ok)
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	require.NoError(t, c.Set("k", []byte("v"), time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
	_, err := os.Stat(c.path("k"))
	assert.True(t, os.IsNotExist(err), "expired entry is removed")
}

func TestDiskCache_NoExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), 0)
	require.NoError(t, c.Set("k", []byte("v"), 0))
	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestDiskCache_Corrupt(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	require.NoError(t, os.WriteFile(c.path("k"), []byte("garbage"), 0o644))
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	first := NewLayeredCache(time.Minute, dir, time.Hour)
	require.NoError(t, first.Set("k", []byte("v"), 0))

	second := NewLayeredCache(time.Minute, dir, time.Hour)
	got, ok := second.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	mem := second.memory.(*MemoryCache)
	assert.Equal(t, 1, mem.Len())

	require.NoError(t, second.Delete("k"))
	_, ok = first.disk.Get("k")
	assert.False(t, ok)

	require.NoError(t, second.Clear())
}
