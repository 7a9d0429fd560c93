package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Pt's c/o CP, -SOB __target__.")

	var texts []string
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"Pt's", "c", "/", "o", "CP", ",", "-", "SOB", "__target__", "."}, texts)

	assert.Equal(t, "pt's", tokens[0].Lower)
	assert.True(t, tokens[0].Word)
	assert.False(t, tokens[2].Word)
	assert.Equal(t, 0, tokens[0].Start)
	assert.Equal(t, 4, tokens[0].End)
}

func TestTokenize_Unicode(t *testing.T) {
	assert.Equal(t, []string{"déjà", "vu", "’", "x"}, Lower("Déjà vu ’x"))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "a b c", Clean("  a\t b\n\nc "))
	// decomposed e + combining acute becomes the composed rune
	assert.Equal(t, "caf\u00e9", Clean("cafe\u0301"))
}

func TestOnWordBoundary(t *testing.T) {
	s := "chesty chest (pain)"
	assert.False(t, OnWordBoundary(s, 0, 5), "prefix of chesty")
	assert.True(t, OnWordBoundary(s, 7, 12))
	assert.True(t, OnWordBoundary(s, 13, 19), "punctuation edges need no boundary")
	assert.False(t, OnWordBoundary(s, 14, 17), "prefix of pain")
}
