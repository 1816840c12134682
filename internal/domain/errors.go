package domain

import "errors"

var (
	ErrEmptyWish          = errors.New("wish text must not be empty")
	ErrInvalidWish        = errors.New("wish must have an id and content")
	ErrDuplicateWish      = errors.New("wish id already exists")
	ErrNotComposing       = errors.New("compose form is not open")
	ErrSubmissionInFlight = errors.New("a wish is already being submitted")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnknownLanguage    = errors.New("unknown language")
	ErrUpstreamLLM        = errors.New("upstream LLM failure")
	ErrInvalidLLMJSON     = errors.New("LLM returned invalid JSON")
)
