package model

import "errors"

// Application-wide standard errors
var (
	// Common Resource/DB Errors
	ErrNotFound = errors.New("resource not found") // General not found

	// Story & Job Errors
	ErrStoryNotFound = errors.New("story not found")
	ErrRootNotFound  = errors.New("story root node not found")
	ErrJobNotFound   = errors.New("story job not found")

	// Generation Pipeline Errors
	ErrInvalidModelOutput = errors.New("model returned invalid output")
	ErrStoryTooDeep       = errors.New("story tree exceeds maximum depth")
	ErrStoryTooLarge      = errors.New("story tree exceeds maximum node count")
)

// Error codes carried in API error responses.
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeStoryNotFound = "STORY_NOT_FOUND"
	ErrCodeJobNotFound   = "JOB_NOT_FOUND"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InvalidModelOutputError is returned when the model response cannot be
// parsed into a story tree. It keeps a snippet of the offending text so
// operators can diagnose what the model actually produced.
type InvalidModelOutputError struct {
	Reason  string
	Snippet string
	Err     error // optional underlying cause, e.g. ErrStoryTooDeep
}

func (e *InvalidModelOutputError) Error() string {
	if e.Snippet == "" {
		return "invalid model output: " + e.Reason
	}
	return "invalid model output: " + e.Reason + ": " + e.Snippet
}

// Unwrap makes the error match ErrInvalidModelOutput (and the
// underlying cause, when present) via errors.Is.
func (e *InvalidModelOutputError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidModelOutput, e.Err}
	}
	return []error{ErrInvalidModelOutput}
}
