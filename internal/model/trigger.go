package model

import (
	"fmt"
	"strings"
)

// Category is one of the four trigger classes a mention is checked against
type Category int

const (
	CategoryNegated Category = iota
	CategoryExperiencer
	CategoryHistorical
	CategoryHypothetical
)

// Categories lists every category in evaluation order
var Categories = []Category{
	CategoryNegated,
	CategoryExperiencer,
	CategoryHistorical,
	CategoryHypothetical,
}

func (c Category) String() string {
	switch c {
	case CategoryNegated:
		return "negated"
	case CategoryExperiencer:
		return "experiencer"
	case CategoryHistorical:
		return "historical"
	case CategoryHypothetical:
		return "hypothetical"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory resolves a category key. The legacy spelling "experiencier" is accepted.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "negated", "negation", "negex":
		return CategoryNegated, nil
	case "experiencer", "experiencier":
		return CategoryExperiencer, nil
	case "historical", "history":
		return CategoryHistorical, nil
	case "hypothetical":
		return CategoryHypothetical, nil
	default:
		return 0, fmt.Errorf("unknown category: %q", s)
	}
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Role controls on which side of the target a trigger may fire
type Role int

const (
	RolePre           Role = iota // must precede the target
	RolePost                      // must follow the target
	RoleBidirectional             // either side
	RolePseudo                    // matches but never fires
	RoleStop                      // bounds the window, never fires
)

func (r Role) String() string {
	switch r {
	case RolePre:
		return "pre"
	case RolePost:
		return "post"
	case RoleBidirectional:
		return "bidirectional"
	case RolePseudo:
		return "pseudo"
	case RoleStop:
		return "stop"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Fires reports whether a trigger with this role can produce a feature
func (r Role) Fires() bool {
	return r == RolePre || r == RolePost || r == RoleBidirectional
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	for _, candidate := range []Role{RolePre, RolePost, RoleBidirectional, RolePseudo, RoleStop} {
		if strings.EqualFold(candidate.String(), string(b)) {
			*r = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown role: %q", b)
}

// TriggerTerm is a single loaded trigger phrase. Immutable once built.
type TriggerTerm struct {
	Text     string   `json:"text" yaml:"text"`
	Tokens   []string `json:"-" yaml:"-"` // lower-cased token sequence matched against sentences
	Category Category `json:"category" yaml:"category"`
	Role     Role     `json:"role" yaml:"role"`
	Possible bool     `json:"possible,omitempty" yaml:"possible,omitempty"` // possible/probable qualifier, negation only
}

// Length returns the token count of the trigger
func (t TriggerTerm) Length() int {
	return len(t.Tokens)
}

// Key identifies a trigger for de-duplication
func (t TriggerTerm) Key() string {
	return fmt.Sprintf("%s|%s|%t", strings.Join(t.Tokens, " "), t.Role, t.Possible)
}

// TriggerSet maps each category to its triggers, longest first
type TriggerSet map[Category][]TriggerTerm
