package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/assertia/internal/classify"
	"github.com/ppiankov/assertia/internal/model"
)

// MentionResult is the outcome of one batch row
type MentionResult struct {
	Index   int // position in the input
	Mention model.Mention
	Result  model.ContextResult
	Error   error
}

// BatchProcessor classifies many mentions concurrently
type BatchProcessor struct {
	classifier  classify.Interface
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. perSecond <= 0 disables throttling.
func NewBatchProcessor(classifier classify.Interface, concurrency int, perSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		classifier:  classifier,
		concurrency: concurrency,
		limiter:     NewLimiter(perSecond, burst),
	}
}

// SetSourceRate overrides the limit for mentions read from source
func (b *BatchProcessor) SetSourceRate(source string, perSecond float64, burst int) {
	b.limiter.SetSourceRate(source, perSecond, burst)
}

// Process classifies mentions and returns one result per mention, in input order.
// Mentions not reached before ctx is done carry ctx's error.
func (b *BatchProcessor) Process(ctx context.Context, mentions []model.Mention) []MentionResult {
	results := make([]MentionResult, len(mentions))
	if len(mentions) == 0 {
		return results
	}

	pool := NewPool[MentionResult](ctx, b.concurrency)
	pool.Start()

	done := make([]bool, len(mentions))
	for i, m := range mentions {
		if !pool.Submit(b.job(i, m)) {
			break
		}
	}

	for _, r := range pool.Wait() {
		results[r.Index] = r
		done[r.Index] = true
	}

	for i, m := range mentions {
		if done[i] {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		results[i] = MentionResult{Index: i, Mention: m, Error: err}
	}

	return results
}

func (b *BatchProcessor) job(i int, m model.Mention) Job[MentionResult] {
	return func(ctx context.Context) MentionResult {
		if err := b.limiter.Wait(ctx, m.Source); err != nil {
			return MentionResult{Index: i, Mention: m, Error: err}
		}
		result, err := b.classifier.Classify(m.Sentence, m.Phrase)
		if err != nil {
			return MentionResult{Index: i, Mention: m, Error: fmt.Errorf("line %d: %w", m.Line, err)}
		}
		return MentionResult{Index: i, Mention: m, Result: result}
	}
}

// ProcessFiles reads every file and classifies all of their mentions
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) ([]MentionResult, error) {
	var mentions []model.Mention
	for _, path := range paths {
		m, err := ReadMentions(path)
		if err != nil {
			return nil, fmt.Errorf("read mentions: %w", err)
		}
		mentions = append(mentions, m...)
	}

	return b.Process(ctx, mentions), nil
}

// ReadMentions reads "sentence<TAB>phrase" rows. Empty lines and lines
// starting with '#' are skipped and repeated rows are read once.
func ReadMentions(filePath string) ([]model.Mention, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var mentions []model.Mention
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		sentence, phrase, ok := strings.Cut(line, "\t")
		sentence, phrase = strings.TrimSpace(sentence), strings.TrimSpace(phrase)
		if !ok || sentence == "" || phrase == "" {
			return nil, fmt.Errorf("%s line %d: expected \"sentence<TAB>phrase\"", filePath, lineNo)
		}

		key := sentence + "\t" + phrase
		if seen[key] {
			continue
		}
		seen[key] = true

		mentions = append(mentions, model.Mention{
			Sentence: sentence,
			Phrase:   phrase,
			Source:   filePath,
			Line:     lineNo,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return mentions, nil
}
