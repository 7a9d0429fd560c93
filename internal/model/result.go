package model

import (
	"fmt"
	"strings"
)

// Temporality of a mention
type Temporality int

const (
	TemporalityRecent Temporality = iota
	TemporalityHistorical
	TemporalityHypothetical
)

func (t Temporality) String() string {
	switch t {
	case TemporalityHistorical:
		return "Historical"
	case TemporalityHypothetical:
		return "Hypothetical"
	default:
		return "Recent"
	}
}

// ParseTemporality parses a temporality name, case-insensitively
func ParseTemporality(s string) (Temporality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "recent":
		return TemporalityRecent, nil
	case "historical":
		return TemporalityHistorical, nil
	case "hypothetical":
		return TemporalityHypothetical, nil
	default:
		return 0, fmt.Errorf("unknown temporality: %q", s)
	}
}

func (t Temporality) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Temporality) UnmarshalText(b []byte) error {
	v, err := ParseTemporality(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Experiencer of a mention
type Experiencer int

const (
	ExperiencerPatient Experiencer = iota
	ExperiencerOther
)

func (e Experiencer) String() string {
	if e == ExperiencerOther {
		return "Other"
	}
	return "Patient"
}

// ParseExperiencer parses an experiencer name, case-insensitively
func ParseExperiencer(s string) (Experiencer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "patient":
		return ExperiencerPatient, nil
	case "other":
		return ExperiencerOther, nil
	default:
		return 0, fmt.Errorf("unknown experiencer: %q", s)
	}
}

func (e Experiencer) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Experiencer) UnmarshalText(b []byte) error {
	v, err := ParseExperiencer(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Negation status of a mention
type Negation int

const (
	NegationAffirmed Negation = iota
	NegationNegated
	NegationPossible
)

func (n Negation) String() string {
	switch n {
	case NegationNegated:
		return "Negated"
	case NegationPossible:
		return "Possible"
	default:
		return "Affirmed"
	}
}

// ParseNegation parses a negation name, case-insensitively
func ParseNegation(s string) (Negation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "affirmed":
		return NegationAffirmed, nil
	case "negated":
		return NegationNegated, nil
	case "possible":
		return NegationPossible, nil
	default:
		return 0, fmt.Errorf("unknown negation: %q", s)
	}
}

func (n Negation) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Negation) UnmarshalText(b []byte) error {
	v, err := ParseNegation(string(b))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// ContextFeature records one accepted trigger match
type ContextFeature struct {
	TargetPhrase       string   `json:"target_phrase"`
	MatchedPhrase      string   `json:"matched_phrase"`      // trigger text as registered
	Sentence           string   `json:"sentence"`            // source sentence
	NormalizedSentence string   `json:"normalized_sentence"` // sentence the matcher ran on
	Category           Category `json:"category"`
	Role               Role     `json:"role"`
	Possible           bool     `json:"possible,omitempty"`
	Distance           int      `json:"distance"` // word tokens to the target, 1 = adjacent
}

// ContextResult is the outcome of classifying one target phrase in one sentence
type ContextResult struct {
	Phrase      string      `json:"phrase"`
	Sentence    string      `json:"sentence"`
	Temporality Temporality `json:"temporality"`
	Experiencer Experiencer `json:"experiencer"`
	Negation    Negation    `json:"negation"`

	Features []ContextFeature `json:"features,omitempty"` // for debugging
}

func (r ContextResult) String() string {
	return fmt.Sprintf("ContextResult(%s, %s, %s, %s, %s)", r.Phrase, r.Sentence, r.Temporality, r.Experiencer, r.Negation)
}
