// Package cache memoizes classification results in memory (go-cache) and,
// optionally, on disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/assertia/internal/model"
)

// Cache stores encoded results by key
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ResultKey derives the cache key of one phrase-in-sentence classification.
// namespace identifies the trigger lists and windows the result was computed
// with, so entries from another configuration are never served.
func ResultKey(namespace, sentence, phrase string) string {
	h := sha256.New()
	h.Write([]byte(namespace))
	h.Write([]byte{0})
	h.Write([]byte(phrase))
	h.Write([]byte{0})
	h.Write([]byte(sentence))
	return "assertia:v2:" + hex.EncodeToString(h.Sum(nil))
}

// New builds the cache described by cfg: nil when disabled, memory only
// when no directory is set, memory over disk otherwise
func New(cfg model.CacheConfig) Cache {
	switch {
	case !cfg.Enabled:
		return nil
	case cfg.Dir == "":
		return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
	default:
		return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
	}
}
