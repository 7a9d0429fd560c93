package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ppiankov/assertia/internal/classify"
	"github.com/ppiankov/assertia/internal/model"
	"github.com/ppiankov/assertia/internal/triggers"
)

// mockClassifier echoes the phrase and fails on "missing"
type mockClassifier struct {
	calls int32
}

func (m *mockClassifier) Classify(sentence, phrase string) (model.ContextResult, error) {
	atomic.AddInt32(&m.calls, 1)
	if phrase == "missing" {
		return model.ContextResult{}, &model.TargetNotFoundError{Phrase: phrase, Sentence: sentence}
	}
	return model.ContextResult{Phrase: phrase, Sentence: sentence}, nil
}

func mentions(n int) []model.Mention {
	out := make([]model.Mention, n)
	for i := range out {
		out[i] = model.Mention{Sentence: "s", Phrase: strings.Repeat("p", i+1), Line: i + 1}
	}
	return out
}

func TestBatchProcessor_Process_Order(t *testing.T) {
	classifier := &mockClassifier{}
	processor := NewBatchProcessor(classifier, 4, 0, 0)

	input := mentions(50)
	results := processor.Process(context.Background(), input)

	if len(results) != len(input) {
		t.Fatalf("expected %d results, got %d", len(input), len(results))
	}
	for i, r := range results {
		if r.Index != i || r.Result.Phrase != input[i].Phrase {
			t.Errorf("result %d out of order: %+v", i, r)
		}
		if r.Error != nil {
			t.Errorf("unexpected error at %d: %v", i, r.Error)
		}
	}
	if classifier.calls != int32(len(input)) {
		t.Errorf("expected %d calls, got %d", len(input), classifier.calls)
	}
}

func TestBatchProcessor_Process_Error(t *testing.T) {
	processor := NewBatchProcessor(&mockClassifier{}, 2, 0, 0)

	input := []model.Mention{
		{Sentence: "a", Phrase: "a", Line: 1},
		{Sentence: "b", Phrase: "missing", Line: 2},
		{Sentence: "c", Phrase: "c", Line: 3},
	}
	results := processor.Process(context.Background(), input)

	if results[1].Error == nil || !errors.Is(results[1].Error, model.ErrTargetNotFound) {
		t.Errorf("expected target-not-found for row 2, got %v", results[1].Error)
	}
	if !strings.Contains(results[1].Error.Error(), "line 2") {
		t.Errorf("expected line number in error, got %v", results[1].Error)
	}
	if results[0].Error != nil || results[2].Error != nil {
		t.Error("one failing mention must not affect the others")
	}
}

func TestBatchProcessor_Process_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockClassifier{}, 2, 0, 0)
	if results := processor.Process(context.Background(), nil); len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_Process_Cancelled(t *testing.T) {
	processor := NewBatchProcessor(&mockClassifier{}, 2, 0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := processor.Process(ctx, mentions(5))
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Error == nil && r.Result.Phrase == "" {
			t.Errorf("result %d has neither result nor error", i)
		}
	}
}

func TestBatchProcessor_RealClassifier(t *testing.T) {
	processor := NewBatchProcessor(classify.New(triggers.Default()), 4, 0, 0)

	results := processor.Process(context.Background(), []model.Mention{
		{Sentence: "patient denies chest pain", Phrase: "chest pain"},
		{Sentence: "mother has breast cancer", Phrase: "breast cancer"},
		{Sentence: "history of diabetes in 2010", Phrase: "diabetes"},
	})

	if results[0].Result.Negation != model.NegationNegated {
		t.Errorf("expected Negated, got %s", results[0].Result.Negation)
	}
	if results[1].Result.Experiencer != model.ExperiencerOther {
		t.Errorf("expected Other, got %s", results[1].Result.Experiencer)
	}
	if results[2].Result.Temporality != model.TemporalityHistorical {
		t.Errorf("expected Historical, got %s", results[2].Result.Temporality)
	}
}

func writeTSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mentions.tsv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

func TestReadMentions(t *testing.T) {
	path := writeTSV(t, "# sentence\tphrase\n\npatient denies chest pain\tchest pain\r\nmother has asthma\tasthma\n")

	got, err := ReadMentions(path)
	if err != nil {
		t.Fatalf("ReadMentions failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 mentions, got %d", len(got))
	}
	if got[0].Phrase != "chest pain" || got[0].Line != 3 || got[0].Source != path {
		t.Errorf("unexpected first mention: %+v", got[0])
	}
	if got[1].Phrase != "asthma" {
		t.Errorf("expected CR to be trimmed, got %q", got[1].Phrase)
	}
}

func TestReadMentions_Deduplication(t *testing.T) {
	path := writeTSV(t, "a b\tb\na b\tb\na b\ta\n")

	got, err := ReadMentions(path)
	if err != nil {
		t.Fatalf("ReadMentions failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 unique mentions, got %d", len(got))
	}
}

func TestReadMentions_Malformed(t *testing.T) {
	path := writeTSV(t, "ok\tok\nno tab here\n")

	_, err := ReadMentions(path)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error naming line 2, got %v", err)
	}
}

func TestReadMentions_NonExistent(t *testing.T) {
	if _, err := ReadMentions("/non/existent/file.tsv"); err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestBatchProcessor_ProcessFiles(t *testing.T) {
	a := writeTSV(t, "s1\tp1\n")
	b := filepath.Join(t.TempDir(), "b.tsv")
	if err := os.WriteFile(b, []byte("s2\tp2\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	processor := NewBatchProcessor(&mockClassifier{}, 2, 0, 0)
	results, err := processor.ProcessFiles(context.Background(), []string{a, b})
	if err != nil {
		t.Fatalf("ProcessFiles failed: %v", err)
	}
	if len(results) != 2 || results[0].Mention.Source != a || results[1].Mention.Source != b {
		t.Errorf("unexpected results: %+v", results)
	}

	if _, err := processor.ProcessFiles(context.Background(), []string{"/non/existent.tsv"}); err == nil {
		t.Error("expected error for missing file")
	}
}
