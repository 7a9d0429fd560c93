package model

import (
	"errors"
	"fmt"
)

var (
	ErrTermLoad         = errors.New("term list load failed")
	ErrTargetNotFound   = errors.New("target phrase not found in sentence")
	ErrMalformedTrigger = errors.New("malformed trigger entry")
)

// TermLoadError is returned when the term-list provider has no data or
// malformed data for a required category
type TermLoadError struct {
	Category Category
	Err      error
}

func (e *TermLoadError) Error() string {
	return fmt.Sprintf("load %s triggers: %v", e.Category, e.Err)
}

func (e *TermLoadError) Unwrap() error { return e.Err }

func (e *TermLoadError) Is(target error) bool { return target == ErrTermLoad }

// TargetNotFoundError is returned when the target phrase does not occur in the sentence
type TargetNotFoundError struct {
	Phrase   string
	Sentence string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("target phrase %q not found in sentence %q", e.Phrase, e.Sentence)
}

func (e *TargetNotFoundError) Is(target error) bool { return target == ErrTargetNotFound }

// MalformedTriggerError describes a single trigger entry that was skipped
type MalformedTriggerError struct {
	Category Category
	Line     int // 1-based, 0 when the provider has no line information
	Text     string
	Tag      string
}

func (e *MalformedTriggerError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s triggers line %d: unrecognized role tag %q for %q", e.Category, e.Line, e.Tag, e.Text)
	}
	return fmt.Sprintf("%s triggers: unrecognized role tag %q for %q", e.Category, e.Tag, e.Text)
}

func (e *MalformedTriggerError) Is(target error) bool { return target == ErrMalformedTrigger }
