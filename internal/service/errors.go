package service

import "fmt"

// FetchError reports a failed profile scrape.
type FetchError struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("linkedin scraping failed for %s: %s", e.URL, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ScoreError reports a failed call to a scoring backend.
type ScoreError struct {
	Backend    string
	StatusCode int
	Message    string
	Cause      error
}

func (e *ScoreError) Error() string {
	msg := fmt.Sprintf("%s scoring failed: %s", e.Backend, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ScoreError) Unwrap() error {
	return e.Cause
}
