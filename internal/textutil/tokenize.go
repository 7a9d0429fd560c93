// Package textutil holds the token model shared by trigger loading,
// sentence normalization and window matching.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Token is one word or punctuation mark of a text
type Token struct {
	Text  string // as written
	Lower string // lower-cased, used for matching
	Start int    // byte offsets in the tokenized string
	End   int
	Word  bool // false for punctuation
}

// words keep inner apostrophes ("patient's"); every other non-space rune is its own token
var tokenRule = regexp.MustCompile(`[\p{L}\p{N}_]+(?:['’][\p{L}\p{N}_]+)*|[^\s\p{L}\p{N}_]`)

// Tokenize splits s into word and punctuation tokens
func Tokenize(s string) []Token {
	spans := tokenRule.FindAllStringIndex(s, -1)
	tokens := make([]Token, 0, len(spans))
	for _, sp := range spans {
		text := s[sp[0]:sp[1]]
		tokens = append(tokens, Token{
			Text:  text,
			Lower: strings.ToLower(text),
			Start: sp[0],
			End:   sp[1],
			Word:  isWord(text),
		})
	}
	return tokens
}

// Lower returns the lower-cased token texts of s
func Lower(s string) []string {
	tokens := Tokenize(s)
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Lower
	}
	return out
}

// Clean NFC-normalizes s and collapses runs of whitespace to a single space
func Clean(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// IsWordRune reports whether r belongs to a word token
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isWord(s string) bool {
	for _, r := range s {
		if IsWordRune(r) {
			return true
		}
	}
	return false
}

// OnWordBoundary reports whether s[start:end] does not cut through a word:
// a word rune at either edge must not continue outside the span
func OnWordBoundary(s string, start, end int) bool {
	first, _ := utf8.DecodeRuneInString(s[start:end])
	if IsWordRune(first) && start > 0 {
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		if IsWordRune(before) {
			return false
		}
	}
	last, _ := utf8.DecodeLastRuneInString(s[start:end])
	if IsWordRune(last) && end < len(s) {
		after, _ := utf8.DecodeRuneInString(s[end:])
		if IsWordRune(after) {
			return false
		}
	}
	return true
}
