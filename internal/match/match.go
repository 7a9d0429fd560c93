// Package match finds trigger terms within a token window of the target
// placeholder.
package match

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/assertia/internal/model"
	"github.com/ppiankov/assertia/internal/normalize"
	"github.com/ppiankov/assertia/internal/textutil"
	"github.com/ppiankov/assertia/internal/triggers"
)

// Matcher runs one category's triggers over a normalized sentence
type Matcher struct {
	windows map[model.Category]int
}

// New creates a matcher. Categories missing from windows use model.DefaultWindow.
func New(windows map[model.Category]int) *Matcher {
	w := make(map[model.Category]int, len(windows))
	for k, v := range windows {
		if v > 0 {
			w[k] = v
		}
	}
	return &Matcher{windows: w}
}

// Window returns the token window for a category
func (m *Matcher) Window(category model.Category) int {
	if w, ok := m.windows[category]; ok {
		return w
	}
	return model.DefaultWindow
}

// Input is the per-call data a match needs besides the triggers
type Input struct {
	Sentence normalize.Sentence
	Phrase   string // target phrase as given by the caller
	Source   string // original sentence
}

type occurrence struct {
	start, end int // inclusive token range
	term       model.TriggerTerm
}

const anchorClaim = "\x00anchor"

// Match returns the accepted features for category, closest to the target first
func (m *Matcher) Match(in Input, category model.Category, terms []model.TriggerTerm) []model.ContextFeature {
	tokens := in.Sentence.Tokens
	if len(tokens) == 0 || len(in.Sentence.Anchors) == 0 {
		return nil
	}

	if category == model.CategoryHistorical {
		if extra := recentPeriodStops(in.Sentence.Text); len(extra) > 0 {
			merged := make([]model.TriggerTerm, 0, len(terms)+len(extra))
			merged = append(merged, terms...)
			merged = append(merged, extra...)
			triggers.Sort(merged)
			terms = merged
		}
	}

	pseudo := make(map[string]bool)
	for _, t := range terms {
		if t.Role == model.RolePseudo {
			pseudo[strings.Join(t.Tokens, " ")] = true
		}
	}

	// claimed holds the text of the trigger owning each token; identical
	// texts registered under several roles share an occurrence
	claimed := make([]string, len(tokens))
	for _, a := range in.Sentence.Anchors {
		claimed[a] = anchorClaim
	}

	var stops, candidates []occurrence
	for _, term := range terms {
		size := term.Length()
		if size == 0 {
			continue
		}
		text := strings.Join(term.Tokens, " ")

		for i := 0; i+size <= len(tokens); i++ {
			if !tokensAt(tokens, i, term.Tokens) || !free(claimed, i, size, text) {
				continue
			}
			for j := i; j < i+size; j++ {
				claimed[j] = text
			}

			occ := occurrence{start: i, end: i + size - 1, term: term}
			switch {
			case term.Role == model.RoleStop:
				stops = append(stops, occ)
			case term.Role == model.RolePseudo, pseudo[text]:
				// pseudo triggers only guard their tokens
			default:
				candidates = append(candidates, occ)
			}
			i += size - 1
		}
	}

	window := m.Window(category)
	type scored struct {
		feature model.ContextFeature
		start   int
	}
	var accepted []scored

	for _, c := range candidates {
		best := -1
		for _, a := range in.Sentence.Anchors {
			d, ok := distance(tokens, c, a, stops)
			if !ok || d > window {
				continue
			}
			if best < 0 || d < best {
				best = d
			}
		}
		if best < 0 {
			continue
		}
		accepted = append(accepted, scored{
			start: c.start,
			feature: model.ContextFeature{
				TargetPhrase:       in.Phrase,
				MatchedPhrase:      c.term.Text,
				Sentence:           in.Source,
				NormalizedSentence: in.Sentence.Text,
				Category:           category,
				Role:               c.term.Role,
				Possible:           c.term.Possible,
				Distance:           best,
			},
		})
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].feature.Distance != accepted[j].feature.Distance {
			return accepted[i].feature.Distance < accepted[j].feature.Distance
		}
		return accepted[i].start < accepted[j].start
	})

	features := make([]model.ContextFeature, len(accepted))
	for i, s := range accepted {
		features[i] = s.feature
	}
	return features
}

// distance checks direction and stop barriers for one anchor and returns the
// number of word tokens between the trigger and the anchor, plus one
func distance(tokens []textutil.Token, c occurrence, anchor int, stops []occurrence) (int, bool) {
	role := c.term.Role
	var lo, hi int // exclusive bounds of the gap

	switch {
	case c.end < anchor:
		if role != model.RolePre && role != model.RoleBidirectional {
			return 0, false
		}
		lo, hi = c.end, anchor
	case c.start > anchor:
		if role != model.RolePost && role != model.RoleBidirectional {
			return 0, false
		}
		lo, hi = anchor, c.start
	default:
		return 0, false
	}

	for _, s := range stops {
		if s.start > lo && s.end < hi {
			return 0, false
		}
	}

	d := 1
	for _, t := range tokens[lo+1 : hi] {
		if t.Word {
			d++
		}
	}
	return d, true
}

func tokensAt(tokens []textutil.Token, i int, want []string) bool {
	for k, w := range want {
		if tokens[i+k].Lower != w {
			return false
		}
	}
	return true
}

func free(claimed []string, i, size int, text string) bool {
	for j := i; j < i+size; j++ {
		if claimed[j] != "" && claimed[j] != text {
			return false
		}
	}
	return true
}

// "for the past 2 weeks" describes the current episode; its lead phrase
// stops historical triggers from reaching across it
var recentPeriodRule = regexp.MustCompile(`(?i)\b(within the last|in the last|for the past|for the last|over the past|over the last|for)` +
	`(?:\s+\d+(?:\.\d+)?|(?:\s+[a-z]+){1,5}?)?\s+(?:days?|weeks?|months?|years?)\b`)

func recentPeriodStops(text string) []model.TriggerTerm {
	var stops []model.TriggerTerm
	seen := make(map[string]bool)
	for _, m := range recentPeriodRule.FindAllStringSubmatch(text, -1) {
		lead := strings.ToLower(m[1])
		if seen[lead] {
			continue
		}
		seen[lead] = true
		stops = append(stops, model.TriggerTerm{
			Text:     lead,
			Tokens:   textutil.Lower(lead),
			Category: model.CategoryHistorical,
			Role:     model.RoleStop,
		})
	}
	return stops
}
