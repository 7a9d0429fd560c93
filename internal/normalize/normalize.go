// Package normalize rewrites a sentence and target phrase into the form the
// window matcher runs on.
package normalize

import (
	"regexp"
	"strings"

	"github.com/ppiankov/assertia/internal/model"
	"github.com/ppiankov/assertia/internal/textutil"
)

// Placeholder stands in for every occurrence of the target phrase
const Placeholder = "__target__"

// literal placeholder text in the input is rewritten to this single word
// before substitution so it never becomes an anchor
const escapedPlaceholder = "_target_"

var placeholderRule = regexp.MustCompile(`(?i)\b` + Placeholder + `\b`)

// Span is an inclusive token range
type Span struct {
	Start int
	End   int
}

// Sentence is a normalized sentence with the placeholder positions
type Sentence struct {
	Text    string
	Tokens  []textutil.Token
	Target  Span  // first placeholder
	Anchors []int // token index of every placeholder
}

// Normalize substitutes the target, pads the sentence boundaries and applies
// the dash-as-negation and future-occurrence rewrites, in that order.
func Normalize(sentence, target string) (Sentence, error) {
	text, ok := substitute(escape(textutil.Clean(sentence)), escape(textutil.Clean(target)))
	if !ok {
		return Sentence{}, &model.TargetNotFoundError{Phrase: target, Sentence: sentence}
	}

	text = ". " + text + " ."
	text = rewriteDash(text)
	text = rewriteFutureOccurrence(text)

	tokens := textutil.Tokenize(text)
	var anchors []int
	for i, tok := range tokens {
		if tok.Text == Placeholder {
			anchors = append(anchors, i)
		}
	}
	if len(anchors) == 0 {
		return Sentence{}, &model.TargetNotFoundError{Phrase: target, Sentence: sentence}
	}

	return Sentence{
		Text:    text,
		Tokens:  tokens,
		Target:  Span{Start: anchors[0], End: anchors[0]},
		Anchors: anchors,
	}, nil
}

func escape(s string) string {
	return placeholderRule.ReplaceAllLiteralString(s, escapedPlaceholder)
}

// substitute replaces every case-insensitive occurrence of target, with any
// run of whitespace between its words, by the placeholder. Word-character
// edges of the target must fall on word boundaries in the sentence.
func substitute(sentence, target string) (string, bool) {
	words := strings.Fields(target)
	if len(words) == 0 {
		return sentence, false
	}
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	rule, err := regexp.Compile(`(?i)` + strings.Join(words, `\s+`))
	if err != nil {
		return sentence, false
	}

	var (
		b     strings.Builder
		prev  int
		found bool
	)
	for _, m := range rule.FindAllStringIndex(sentence, -1) {
		if !textutil.OnWordBoundary(sentence, m[0], m[1]) {
			continue
		}
		b.WriteString(sentence[prev:m[0]])
		b.WriteString(Placeholder)
		prev = m[1]
		found = true
	}
	if !found {
		return sentence, false
	}
	b.WriteString(sentence[prev:])
	return b.String(), true
}
