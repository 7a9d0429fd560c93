package classify

import (
	"encoding/json"
	"time"

	"github.com/ppiankov/assertia/internal/cache"
	"github.com/ppiankov/assertia/internal/model"
	"go.uber.org/zap"
)

// CachedClassifier memoizes another classifier's results. Errors are not cached.
type CachedClassifier struct {
	next      Interface
	cache     cache.Cache
	ttl       time.Duration
	namespace string
	logger    *zap.Logger
}

// NewCached wraps next with c. namespace is mixed into every key and should
// be next's fingerprint (see Classifier.Fingerprint). A nil cache returns
// next unchanged.
func NewCached(next Interface, c cache.Cache, ttl time.Duration, namespace string, logger *zap.Logger) Interface {
	if c == nil {
		return next
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedClassifier{next: next, cache: c, ttl: ttl, namespace: namespace, logger: logger}
}

// Classify returns a cached result or classifies and stores it
func (c *CachedClassifier) Classify(sentence, phrase string) (model.ContextResult, error) {
	key := cache.ResultKey(c.namespace, sentence, phrase)

	if data, ok := c.cache.Get(key); ok {
		var result model.ContextResult
		if err := json.Unmarshal(data, &result); err == nil {
			return result, nil
		}
		c.logger.Warn("dropping unreadable cache entry", zap.String("key", key))
		_ = c.cache.Delete(key)
	}

	result, err := c.next.Classify(sentence, phrase)
	if err != nil {
		return result, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("cache encode failed", zap.Error(err))
		return result, nil
	}
	if err := c.cache.Set(key, data, c.ttl); err != nil {
		c.logger.Warn("cache write failed", zap.Error(err))
	}
	return result, nil
}
