package normalize

import (
	"errors"
	"testing"

	"github.com/ppiankov/assertia/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Substitution(t *testing.T) {
	s, err := Normalize("Patient denies CHEST  pain.", "chest pain")
	require.NoError(t, err)

	assert.Equal(t, ". Patient denies __target__. .", s.Text)
	assert.Equal(t, []int{3}, s.Anchors)
	assert.Equal(t, Span{Start: 3, End: 3}, s.Target)
	assert.Equal(t, Placeholder, s.Tokens[s.Target.Start].Text)
}

func TestNormalize_EveryOccurrence(t *testing.T) {
	s, err := Normalize("pain in the morning and Pain at night", "pain")
	require.NoError(t, err)
	assert.Len(t, s.Anchors, 2)
}

func TestNormalize_WholeWordsOnly(t *testing.T) {
	_, err := Normalize("chesty cough", "chest")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrTargetNotFound))

	var notFound *model.TargetNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "chest", notFound.Phrase)
}

func TestNormalize_LiteralPlaceholderInSentence(t *testing.T) {
	s, err := Normalize("__target__ no fever", "fever")
	require.NoError(t, err)
	assert.Equal(t, ". _target_ no __target__ .", s.Text)
	assert.Equal(t, []int{3}, s.Anchors)

	s, err = Normalize("__TARGET__ seen, no fever", "fever")
	require.NoError(t, err)
	assert.Len(t, s.Anchors, 1)

	_, err = Normalize("__target__ only", "fever")
	assert.True(t, errors.Is(err, model.ErrTargetNotFound))

	// the literal text can still be the target itself
	s, err = Normalize("value __target__ missing", "__target__")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, s.Anchors)
}

func TestNormalize_EmptyTarget(t *testing.T) {
	_, err := Normalize("anything at all", "  ")
	assert.True(t, errors.Is(err, model.ErrTargetNotFound))
}

func TestNormalize_PunctuationInTarget(t *testing.T) {
	s, err := Normalize("History of c.diff (recurrent).", "c.diff (recurrent)")
	require.NoError(t, err)
	assert.Equal(t, ". History of __target__. .", s.Text)
}

func TestNormalize_Dash(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		target   string
		want     string
	}{
		{"leading", "pt c/o cp, -SOB", "SOB", ". pt c/o cp, no __target__ ."},
		{"leading with space", "cough - fever", "fever", ". cough no __target__ ."},
		{"trailing", "SOB- today", "SOB", ". no __target__ today ."},
		{"hyphenated word untouched", "non-smoker", "smoker", ". non-__target__ ."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Normalize(tt.sentence, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Text)
		})
	}
}

func TestNormalize_FutureOccurrence(t *testing.T) {
	tests := []struct {
		sentence string
		target   string
	}{
		{"if fever develops, return to clinic", "fever"},
		{"Take Tylenol for headache", "headache"},
		{"if the patient develops shortness of breath call us", "shortness of breath"},
		{"in case of bleeding apply pressure", "bleeding"},
		{"watch out for rash", "rash"},
		{"should there be chills, come back", "chills"},
	}

	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			s, err := Normalize(tt.sentence, tt.target)
			require.NoError(t, err)
			assert.Contains(t, s.Text, "no "+Placeholder)
		})
	}
}

func TestNormalize_PresentOccurrenceUntouched(t *testing.T) {
	s, err := Normalize("fever developed yesterday", "fever")
	require.NoError(t, err)
	assert.Equal(t, ". __target__ developed yesterday .", s.Text)
}
