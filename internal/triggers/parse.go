package triggers

import (
	"sort"
	"strings"

	"github.com/ppiankov/assertia/internal/model"
	"github.com/ppiankov/assertia/internal/textutil"
)

// ParseTag maps a role tag to a role and possible flag. Negex tags
// ([PREN], [POST], [PREP], [POSP], [PSEU], [CONJ], [FSTT]) and the
// plain role names are recognized; an empty tag means pre.
func ParseTag(tag string) (role model.Role, possible bool, ok bool) {
	t := strings.ToUpper(strings.TrimSpace(tag))
	t = strings.TrimSuffix(strings.TrimPrefix(t, "["), "]")

	switch t {
	case "", "PREN", "PRE":
		return model.RolePre, false, true
	case "POST":
		return model.RolePost, false, true
	case "PREP":
		return model.RolePre, true, true
	case "POSP":
		return model.RolePost, true, true
	case "FSTT", "BIDIRECTIONAL", "BIDI":
		return model.RoleBidirectional, false, true
	case "PSEU", "PSEUDO":
		return model.RolePseudo, false, true
	case "CONJ", "STOP":
		return model.RoleStop, false, true
	default:
		return 0, false, false
	}
}

// Build turns raw entries into sorted trigger terms. Entries with an
// unknown tag are skipped and returned as *model.MalformedTriggerError.
// Duplicates are first-wins.
func Build(category model.Category, raws []RawTrigger) ([]model.TriggerTerm, []error) {
	var (
		terms   []model.TriggerTerm
		skipped []error
		seen    = make(map[string]bool)
	)

	for _, raw := range raws {
		role, possible, ok := ParseTag(raw.Tag)
		if !ok {
			skipped = append(skipped, &model.MalformedTriggerError{
				Category: category,
				Line:     raw.Line,
				Text:     raw.Text,
				Tag:      raw.Tag,
			})
			continue
		}

		text := textutil.Clean(raw.Text)
		tokens := textutil.Lower(text)
		if len(tokens) == 0 {
			continue
		}

		term := model.TriggerTerm{
			Text:     text,
			Tokens:   tokens,
			Category: category,
			Role:     role,
			Possible: possible || raw.Possible,
		}
		// possible only qualifies negation triggers
		if category != model.CategoryNegated {
			term.Possible = false
		}

		if key := term.Key(); !seen[key] {
			seen[key] = true
			terms = append(terms, term)
		}
	}

	Sort(terms)
	return terms, skipped
}

// Sort orders triggers longest first (tokens, then characters). At equal
// length pseudo and stop triggers come before the triggers they guard.
func Sort(terms []model.TriggerTerm) {
	sort.SliceStable(terms, func(i, j int) bool {
		a, b := terms[i], terms[j]
		if a.Length() != b.Length() {
			return a.Length() > b.Length()
		}
		if len(a.Text) != len(b.Text) {
			return len(a.Text) > len(b.Text)
		}
		return !a.Role.Fires() && b.Role.Fires()
	})
}
