package model

import (
	"path/filepath"
	"strings"
	"time"
)

// Report represents the complete output of a batch or document run
type Report struct {
	Subject     string    `json:"subject"`      // Subject of the report (usually the input file name)
	Source      string    `json:"source"`       // Path that was processed
	GeneratedAt time.Time `json:"generated_at"` // When the run finished

	Results []ContextResult  `json:"results,omitempty"` // Batch classifications
	Terms   []IdentifiedTerm `json:"terms,omitempty"`   // Term finder hits
	Errors  []string         `json:"errors,omitempty"`  // Per-row failures (batch only)

	Summary Summary `json:"summary"`
}

// Summary counts attribute values over every classified mention
type Summary struct {
	Total       int            `json:"total"`
	Failed      int            `json:"failed"`
	Negation    map[string]int `json:"negation"`
	Temporality map[string]int `json:"temporality"`
	Experiencer map[string]int `json:"experiencer"`
}

// NewSummary returns a summary with every attribute value present at zero
func NewSummary() Summary {
	return Summary{
		Negation: map[string]int{
			NegationAffirmed.String(): 0,
			NegationNegated.String():  0,
			NegationPossible.String(): 0,
		},
		Temporality: map[string]int{
			TemporalityRecent.String():       0,
			TemporalityHistorical.String():   0,
			TemporalityHypothetical.String(): 0,
		},
		Experiencer: map[string]int{
			ExperiencerPatient.String(): 0,
			ExperiencerOther.String():   0,
		},
	}
}

// Add counts one classification
func (s *Summary) Add(n Negation, t Temporality, e Experiencer) {
	s.Total++
	s.Negation[n.String()]++
	s.Temporality[t.String()]++
	s.Experiencer[e.String()]++
}

// SubjectFromPath extracts a reasonable subject name from an input path
func SubjectFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
