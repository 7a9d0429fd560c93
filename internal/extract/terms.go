// Package extract finds target terms in free text and attaches their
// contextual attributes.
package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/ppiankov/assertia/internal/classify"
	"github.com/ppiankov/assertia/internal/model"
	"github.com/ppiankov/assertia/internal/textutil"
)

// compiled term rules are shared by every finder
var ruleCache = gocache.New(30*time.Minute, 10*time.Minute)

// Filters restricts which attribute values a finder reports. An empty slice allows every value.
type Filters struct {
	Negation    []model.Negation
	Temporality []model.Temporality
	Experiencer []model.Experiencer
}

// ParseFilters parses attribute names as accepted on the command line
func ParseFilters(negation, temporality, experiencer []string) (Filters, error) {
	var f Filters
	for _, s := range negation {
		v, err := model.ParseNegation(s)
		if err != nil {
			return Filters{}, err
		}
		f.Negation = append(f.Negation, v)
	}
	for _, s := range temporality {
		v, err := model.ParseTemporality(s)
		if err != nil {
			return Filters{}, err
		}
		f.Temporality = append(f.Temporality, v)
	}
	for _, s := range experiencer {
		v, err := model.ParseExperiencer(s)
		if err != nil {
			return Filters{}, err
		}
		f.Experiencer = append(f.Experiencer, v)
	}
	return f, nil
}

// Allow reports whether r passes every filter
func (f Filters) Allow(r model.ContextResult) bool {
	return allowed(f.Negation, r.Negation) &&
		allowed(f.Temporality, r.Temporality) &&
		allowed(f.Experiencer, r.Experiencer)
}

func allowed[T comparable](values []T, v T) bool {
	if len(values) == 0 {
		return true
	}
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// TermFinder locates terms in text and classifies each hit
type TermFinder struct {
	classifier classify.Interface
	terms      []termRule
	excluded   []termRule
	filters    Filters
}

type termRule struct {
	term string
	rule *regexp.Regexp
}

// FinderOption configures a TermFinder
type FinderOption func(*TermFinder)

// WithExcluded drops sentences mentioning any of terms
func WithExcluded(terms ...string) FinderOption {
	return func(f *TermFinder) {
		f.excluded = append(f.excluded, compileTerms(terms)...)
	}
}

// WithFilters limits the reported attribute values
func WithFilters(filters Filters) FinderOption {
	return func(f *TermFinder) {
		f.filters = filters
	}
}

// NewTermFinder creates a finder for terms. Terms are matched
// case-insensitively as whole words; repeated terms are searched once.
func NewTermFinder(classifier classify.Interface, terms []string, opts ...FinderOption) (*TermFinder, error) {
	f := &TermFinder{
		classifier: classifier,
		terms:      compileTerms(terms),
	}
	if len(f.terms) == 0 {
		return nil, fmt.Errorf("no terms to search for")
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Terms returns the normalized search terms
func (f *TermFinder) Terms() []string {
	out := make([]string, len(f.terms))
	for i, t := range f.terms {
		out[i] = t.term
	}
	return out
}

// Find splits text into sentences and returns every term hit that passes
// the filters, ordered by sentence and position.
func (f *TermFinder) Find(text string) ([]model.IdentifiedTerm, error) {
	var found []model.IdentifiedTerm

	for i, sentence := range SplitSentences(text) {
		if f.isExcluded(sentence) {
			continue
		}

		for _, t := range f.terms {
			for _, m := range t.rule.FindAllStringIndex(sentence, -1) {
				if !textutil.OnWordBoundary(sentence, m[0], m[1]) {
					continue
				}
				matched := sentence[m[0]:m[1]]

				result, err := f.classifier.Classify(sentence, matched)
				if err != nil {
					return nil, fmt.Errorf("classify %q in sentence %d: %w", matched, i, err)
				}
				if !f.filters.Allow(result) {
					continue
				}

				found = append(found, model.IdentifiedTerm{
					Sentence:      sentence,
					SentenceIndex: i,
					Term:          matched,
					Negation:      result.Negation,
					Temporality:   result.Temporality,
					Experiencer:   result.Experiencer,
					Start:         m[0],
					End:           m[1],
				})
			}
		}
	}

	sort.SliceStable(found, func(a, b int) bool {
		if found[a].SentenceIndex != found[b].SentenceIndex {
			return found[a].SentenceIndex < found[b].SentenceIndex
		}
		return found[a].Start < found[b].Start
	})

	return found, nil
}

func (f *TermFinder) isExcluded(sentence string) bool {
	for _, t := range f.excluded {
		for _, m := range t.rule.FindAllStringIndex(sentence, -1) {
			if textutil.OnWordBoundary(sentence, m[0], m[1]) {
				return true
			}
		}
	}
	return false
}

func compileTerms(terms []string) []termRule {
	seen := make(map[string]bool)
	var rules []termRule
	for _, raw := range terms {
		term := strings.ToLower(textutil.Clean(raw))
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		rules = append(rules, termRule{term: term, rule: termPattern(term)})
	}
	return rules
}

// termPattern matches term with any run of whitespace between its words
func termPattern(term string) *regexp.Regexp {
	if cached, ok := ruleCache.Get(term); ok {
		return cached.(*regexp.Regexp)
	}
	words := strings.Fields(term)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	rule := regexp.MustCompile(`(?i)` + strings.Join(words, `\s+`))
	ruleCache.SetDefault(term, rule)
	return rule
}
