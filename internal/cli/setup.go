package cli

import (
	"fmt"

	"github.com/ppiankov/assertia/internal/cache"
	"github.com/ppiankov/assertia/internal/classify"
	"github.com/ppiankov/assertia/internal/model"
	"github.com/ppiankov/assertia/internal/triggers"
)

// newClassifier builds the classifier described by c, wrapped in the result
// cache when caching is enabled
func newClassifier(c *model.Config) (classify.Interface, error) {
	provider, err := triggers.NewProvider(c.Triggers.Path)
	if err != nil {
		return nil, err
	}

	windows, err := c.CategoryWindows()
	if err != nil {
		return nil, err
	}

	store := triggers.NewStore(provider, triggers.WithLogger(logger))
	classifier := classify.New(store,
		classify.WithWindows(windows),
		classify.WithLogger(logger),
	)

	// loads every list, so unreadable triggers fail before any input is processed
	fingerprint, err := classifier.Fingerprint()
	if err != nil {
		return nil, fmt.Errorf("load triggers: %w", err)
	}

	return classify.NewCached(classifier, cache.New(c.Cache), c.Cache.MemoryTTL, fingerprint, logger), nil
}
