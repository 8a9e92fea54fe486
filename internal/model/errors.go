package model

import "fmt"

// ValidationError reports a missing or malformed form field. It is surfaced
// to the candidate next to the offending field; the form stays on screen for
// re-submission.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// LLMRequestError wraps a network or API failure from the question
// generator so the UI can offer a retry prompt. Generation is never
// retried automatically.
type LLMRequestError struct {
	Err error
}

func (e *LLMRequestError) Error() string {
	return fmt.Sprintf("question generation failed: %v", e.Err)
}

func (e *LLMRequestError) Unwrap() error {
	return e.Err
}
