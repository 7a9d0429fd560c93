package match

import (
	"testing"

	"github.com/ppiankov/assertia/internal/model"
	"github.com/ppiankov/assertia/internal/normalize"
	"github.com/ppiankov/assertia/internal/triggers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func terms(t *testing.T, category model.Category, entries ...string) []model.TriggerTerm {
	t.Helper()
	var raws []triggers.RawTrigger
	for i := 0; i+1 < len(entries); i += 2 {
		raws = append(raws, triggers.RawTrigger{Text: entries[i], Tag: entries[i+1]})
	}
	built, skipped := triggers.Build(category, raws)
	require.Empty(t, skipped)
	return built
}

func run(t *testing.T, m *Matcher, sentence, phrase string, category model.Category, list []model.TriggerTerm) []model.ContextFeature {
	t.Helper()
	s, err := normalize.Normalize(sentence, phrase)
	require.NoError(t, err)
	return m.Match(Input{Sentence: s, Phrase: phrase, Source: sentence}, category, list)
}

func TestWindow_Defaults(t *testing.T) {
	m := New(map[model.Category]int{model.CategoryNegated: 5, model.CategoryHistorical: 0})
	assert.Equal(t, 5, m.Window(model.CategoryNegated))
	assert.Equal(t, model.DefaultWindow, m.Window(model.CategoryHistorical))
	assert.Equal(t, model.DefaultWindow, m.Window(model.CategoryExperiencer))
}

func TestMatch_WindowBoundary(t *testing.T) {
	list := terms(t, model.CategoryNegated, "denies", "[PREN]")

	exact := New(map[model.Category]int{model.CategoryNegated: 3})
	features := run(t, exact, "denies any recent fever", "fever", model.CategoryNegated, list)
	require.Len(t, features, 1)
	assert.Equal(t, 3, features[0].Distance)

	beyond := New(map[model.Category]int{model.CategoryNegated: 2})
	assert.Empty(t, run(t, beyond, "denies any recent fever", "fever", model.CategoryNegated, list))
}

func TestMatch_PunctuationNotCounted(t *testing.T) {
	list := terms(t, model.CategoryNegated, "denies", "[PREN]")
	features := run(t, New(nil), "denies: (fever)", "fever", model.CategoryNegated, list)
	require.Len(t, features, 1)
	assert.Equal(t, 1, features[0].Distance)
}

func TestMatch_Direction(t *testing.T) {
	list := terms(t, model.CategoryNegated, "denies", "[PREN]", "resolved", "[POST]")
	m := New(nil)

	assert.Empty(t, run(t, m, "fever denies", "fever", model.CategoryNegated, list), "pre trigger after target")
	assert.Empty(t, run(t, m, "resolved fever", "fever", model.CategoryNegated, list), "post trigger before target")

	features := run(t, m, "fever resolved", "fever", model.CategoryNegated, list)
	require.Len(t, features, 1)
	assert.Equal(t, model.RolePost, features[0].Role)
}

func TestMatch_StopTruncatesWindow(t *testing.T) {
	list := terms(t, model.CategoryNegated, "resolved", "[FSTT]", "but", "[CONJ]")
	m := New(map[model.Category]int{model.CategoryNegated: 5})

	features := run(t, m, "fever resolved but cough continues", "fever", model.CategoryNegated, list)
	require.Len(t, features, 1)
	assert.Equal(t, "resolved", features[0].MatchedPhrase)

	assert.Empty(t, run(t, m, "fever resolved but cough continues", "cough", model.CategoryNegated, list))
}

func TestMatch_PseudoSuppresses(t *testing.T) {
	list := terms(t, model.CategoryNegated,
		"no", "[PREN]",
		"no increase", "[PSEU]",
		"ruled out", "[POST]",
		"not ruled out", "[PSEU]",
	)
	m := New(nil)

	assert.Empty(t, run(t, m, "no increase in pain", "pain", model.CategoryNegated, list))
	assert.Empty(t, run(t, m, "pneumonia not ruled out", "pneumonia", model.CategoryNegated, list))

	features := run(t, m, "pneumonia ruled out", "pneumonia", model.CategoryNegated, list)
	require.Len(t, features, 1)
}

func TestMatch_IdenticalPseudoSuppresses(t *testing.T) {
	list := terms(t, model.CategoryHistorical, "history", "[PREN]", "history", "[PSEU]")
	assert.Empty(t, run(t, New(nil), "history diabetes", "diabetes", model.CategoryHistorical, list))
}

func TestMatch_IdenticalTextSharesOccurrence(t *testing.T) {
	list := terms(t, model.CategoryNegated, "resolved", "[PREN]", "resolved", "[POST]")
	m := New(nil)

	before := run(t, m, "resolved fever", "fever", model.CategoryNegated, list)
	require.Len(t, before, 1)
	assert.Equal(t, model.RolePre, before[0].Role)

	after := run(t, m, "fever resolved", "fever", model.CategoryNegated, list)
	require.Len(t, after, 1)
	assert.Equal(t, model.RolePost, after[0].Role)
}

func TestMatch_LongestTriggerClaimsTokens(t *testing.T) {
	list := terms(t, model.CategoryNegated, "no evidence of", "[PREN]", "evidence", "[PREP]")
	features := run(t, New(nil), "no evidence of fever", "fever", model.CategoryNegated, list)
	require.Len(t, features, 1)
	assert.Equal(t, "no evidence of", features[0].MatchedPhrase)
	assert.False(t, features[0].Possible)
}

func TestMatch_TargetTokensNeverMatch(t *testing.T) {
	list := terms(t, model.CategoryNegated, "no", "[PREN]")
	assert.Empty(t, run(t, New(nil), "no", "no", model.CategoryNegated, list))
}

func TestMatch_SortedByDistance(t *testing.T) {
	list := terms(t, model.CategoryNegated, "denies", "[PREN]", "possible", "[PREP]")
	features := run(t, New(map[model.Category]int{model.CategoryNegated: 8}),
		"denies any possible fever", "fever", model.CategoryNegated, list)

	require.Len(t, features, 2)
	assert.Equal(t, "possible", features[0].MatchedPhrase)
	assert.Equal(t, 1, features[0].Distance)
	assert.Equal(t, "denies", features[1].MatchedPhrase)
	assert.Equal(t, 3, features[1].Distance)
}

func TestMatch_NearestAnchor(t *testing.T) {
	list := terms(t, model.CategoryNegated, "denies", "[PREN]")
	features := run(t, New(nil), "fever earlier, now denies fever", "fever", model.CategoryNegated, list)
	require.Len(t, features, 1)
	assert.Equal(t, 1, features[0].Distance)
	assert.Equal(t, "fever earlier, now denies fever", features[0].Sentence)
	assert.Equal(t, "fever", features[0].TargetPhrase)
}

func TestMatch_RecentPeriodStopsHistorical(t *testing.T) {
	list := terms(t, model.CategoryHistorical, "history", "[PREN]")
	m := New(map[model.Category]int{model.CategoryHistorical: 8})

	assert.Empty(t, run(t, m, "history: for the past two weeks fever", "fever", model.CategoryHistorical, list))
	assert.Len(t, run(t, m, "history: since 2010 fever", "fever", model.CategoryHistorical, list), 1)

	// the extra stops only apply to the historical pass
	neg := terms(t, model.CategoryNegated, "denies", "[PREN]")
	assert.Len(t, run(t, m, "denies for the past 2 weeks fever", "fever", model.CategoryNegated, neg), 0, "beyond default window")
}

func TestMatch_EmptyTerms(t *testing.T) {
	assert.Empty(t, run(t, New(nil), "fever", "fever", model.CategoryNegated, nil))
}
