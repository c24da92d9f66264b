package slack

import (
	"errors"
	"fmt"
)

// ErrTokenNotFound is returned when no API token could be derived from the environment or any of
// the fallback token files.
var ErrTokenNotFound = errors.New("Slack API token not found. Set SLACK_API_KEY env var, or place token in ~/.slack/api-token or /etc/slack/api-token")

// ErrNoMessage is returned when there is no message text to send.
var ErrNoMessage = errors.New("No message provided")

// UNKNOWN_API_ERROR is reported when the Slack API returns "ok": false without an "error" property.
const UNKNOWN_API_ERROR string = "unknown error"

type InvalidColorError struct {
	Color string
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid color '%s': expected #RRGGBB or keyword (good, success, warning, danger, error)", e.Color)
}

type TokenReadError struct {
	Source string
	Err    error
}

func (e *TokenReadError) Error() string {
	return fmt.Sprintf("Failed to read token from '%s', %v", e.Source, e.Err)
}

func (e *TokenReadError) Unwrap() error {
	return e.Err
}

type StdinError struct {
	Err error
}

func (e *StdinError) Error() string {
	return fmt.Sprintf("Failed to read stdin, %v", e.Err)
}

func (e *StdinError) Unwrap() error {
	return e.Err
}

// HTTPError wraps failures talking to the Slack API: connection errors, timeouts, unexpected
// status codes and malformed responses.
type HTTPError struct {
	Err error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP request failed, %v", e.Err)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// APIError is returned when the Slack API replies with "ok": false.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Slack API error: %s", e.Message)
}

type InvalidBlocksError struct {
	Reason string
}

func (e *InvalidBlocksError) Error() string {
	return fmt.Sprintf("invalid blocks JSON: %s", e.Reason)
}
