// Package triggers loads trigger-term lists and caches them for the life
// of the process.
package triggers

import (
	"sync"
	"sync/atomic"

	"github.com/ppiankov/assertia/internal/model"
	"go.uber.org/zap"
)

// Store is a lazily initialized, read-only trigger cache. The first Load
// populates every category; after that reads take no lock.
type Store struct {
	provider Provider
	logger   *zap.Logger

	mu  sync.Mutex
	set atomic.Pointer[model.TriggerSet]
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for load events and skipped entries
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a store backed by provider. Nothing is read until the first Load.
func NewStore(provider Provider, opts ...Option) *Store {
	s := &Store{
		provider: provider,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultStore = sync.OnceValue(func() *Store {
	return NewStore(EmbeddedProvider())
})

// Default returns the process-wide store over the embedded lists
func Default() *Store {
	return defaultStore()
}

// Load returns the triggers of one category, longest first. The returned
// slice is shared and must not be modified.
func (s *Store) Load(category model.Category) ([]model.TriggerTerm, error) {
	set, err := s.init()
	if err != nil {
		return nil, err
	}
	return set[category], nil
}

// Loaded reports whether the store has been populated
func (s *Store) Loaded() bool {
	return s.set.Load() != nil
}

func (s *Store) init() (model.TriggerSet, error) {
	if set := s.set.Load(); set != nil {
		return *set, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring the lock
	if set := s.set.Load(); set != nil {
		return *set, nil
	}

	set := make(model.TriggerSet, len(model.Categories))
	for _, category := range model.Categories {
		raws, err := s.provider.Entries(category)
		if err != nil {
			s.logger.Error("trigger load failed", zap.Stringer("category", category), zap.Error(err))
			return nil, &model.TermLoadError{Category: category, Err: err}
		}

		terms, skipped := Build(category, raws)
		for _, e := range skipped {
			s.logger.Warn("skipping trigger", zap.Error(e))
		}
		set[category] = terms

		s.logger.Debug("triggers loaded",
			zap.Stringer("category", category),
			zap.Int("terms", len(terms)),
			zap.Int("skipped", len(skipped)))
	}

	s.set.Store(&set)
	return set, nil
}
