// Package classify decides temporality, experiencer and negation for a
// target phrase in a sentence.
package classify

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/ppiankov/assertia/internal/match"
	"github.com/ppiankov/assertia/internal/model"
	"github.com/ppiankov/assertia/internal/normalize"
	"go.uber.org/zap"
)

// TriggerSource supplies the triggers of one category
type TriggerSource interface {
	Load(category model.Category) ([]model.TriggerTerm, error)
}

// Interface is implemented by Classifier and CachedClassifier
type Interface interface {
	Classify(sentence, phrase string) (model.ContextResult, error)
}

// Classifier runs the normalizer and the window matcher for every category.
// It holds no per-call state and is safe for concurrent use.
type Classifier struct {
	triggers TriggerSource
	matcher  *match.Matcher
	logger   *zap.Logger
}

// Option configures a Classifier
type Option func(*Classifier)

// WithWindows overrides the token window per category
func WithWindows(windows map[model.Category]int) Option {
	return func(c *Classifier) {
		c.matcher = match.New(windows)
	}
}

// WithLogger sets the logger used for debug traces
func WithLogger(logger *zap.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a classifier over a trigger source, usually a *triggers.Store
func New(source TriggerSource, opts ...Option) *Classifier {
	c := &Classifier{
		triggers: source,
		matcher:  match.New(nil),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the context attributes of phrase in sentence. It fails
// with *model.TargetNotFoundError if phrase does not occur in sentence and
// with *model.TermLoadError if the triggers cannot be loaded.
func (c *Classifier) Classify(sentence, phrase string) (model.ContextResult, error) {
	ns, err := normalize.Normalize(sentence, phrase)
	if err != nil {
		return model.ContextResult{}, err
	}

	in := match.Input{Sentence: ns, Phrase: phrase, Source: sentence}
	found := make(map[model.Category][]model.ContextFeature, len(model.Categories))
	var features []model.ContextFeature

	for _, category := range model.Categories {
		terms, err := c.triggers.Load(category)
		if err != nil {
			return model.ContextResult{}, err
		}
		matched := c.matcher.Match(in, category, terms)
		found[category] = matched
		features = append(features, matched...)
	}

	result := model.ContextResult{
		Phrase:      phrase,
		Sentence:    sentence,
		Temporality: reduceTemporality(found),
		Experiencer: reduceExperiencer(found),
		Negation:    reduceNegation(found[model.CategoryNegated]),
		Features:    features,
	}

	if ce := c.logger.Check(zap.DebugLevel, "classified"); ce != nil {
		ce.Write(
			zap.String("phrase", phrase),
			zap.String("normalized", ns.Text),
			zap.Stringer("negation", result.Negation),
			zap.Stringer("temporality", result.Temporality),
			zap.Stringer("experiencer", result.Experiencer),
			zap.Int("features", len(features)))
	}

	return result, nil
}

// Fingerprint identifies the loaded triggers and the effective window of
// every category. Classifiers with equal fingerprints return equal results.
func (c *Classifier) Fingerprint() (string, error) {
	h := sha256.New()
	for _, category := range model.Categories {
		terms, err := c.triggers.Load(category)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(h, "%s window=%d\n", category, c.matcher.Window(category))
		for _, t := range terms {
			fmt.Fprintf(h, "%q %s\n", t.Text, t.Key())
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// reduceNegation takes the closest feature; at equal distance a definite
// trigger wins over a possible one
func reduceNegation(features []model.ContextFeature) model.Negation {
	var best *model.ContextFeature
	for i := range features {
		f := &features[i]
		if best == nil || f.Distance < best.Distance ||
			(f.Distance == best.Distance && best.Possible && !f.Possible) {
			best = f
		}
	}

	switch {
	case best == nil:
		return model.NegationAffirmed
	case best.Possible:
		return model.NegationPossible
	default:
		return model.NegationNegated
	}
}

func reduceExperiencer(found map[model.Category][]model.ContextFeature) model.Experiencer {
	if len(found[model.CategoryExperiencer]) > 0 {
		return model.ExperiencerOther
	}
	return model.ExperiencerPatient
}

// historical framing takes precedence over hypothetical
func reduceTemporality(found map[model.Category][]model.ContextFeature) model.Temporality {
	switch {
	case len(found[model.CategoryHistorical]) > 0:
		return model.TemporalityHistorical
	case len(found[model.CategoryHypothetical]) > 0:
		return model.TemporalityHypothetical
	default:
		return model.TemporalityRecent
	}
}
