package services

import (
	"errors"
	"fmt"

	"ytConvertBot/utils"
)

// MaxDiagnosticLength bounds engine messages forwarded to the chat.
const MaxDiagnosticLength = 200

// ErrNotSupportedURL is wrapped by ValidationError for links that are not
// recognised video URLs.
var ErrNotSupportedURL = errors.New("not a supported video link")

// ValidationError: the user input cannot start a download flow.
type ValidationError struct {
	Input string
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %q: %v", e.Input, e.Cause)
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// MetadataError: the engine could not describe the video.
type MetadataError struct {
	URL   string
	Cause error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("failed to fetch metadata for %s: %v", e.URL, e.Cause)
}

func (e *MetadataError) Unwrap() error { return e.Cause }

// RetrievalErrorKind distinguishes why a retrieval produced nothing usable.
type RetrievalErrorKind string

const (
	RetrievalNotFound      RetrievalErrorKind = "not_found"
	RetrievalEngineFailure RetrievalErrorKind = "engine_failure"
)

// RetrievalError carries a diagnostic already truncated to MaxDiagnosticLength.
type RetrievalError struct {
	Kind    RetrievalErrorKind
	Message string
	Cause   error
}

func newEngineFailure(cause error) *RetrievalError {
	return &RetrievalError{
		Kind:    RetrievalEngineFailure,
		Message: utils.Truncate(cause.Error(), MaxDiagnosticLength),
		Cause:   cause,
	}
}

func newNotFound(hint string) *RetrievalError {
	return &RetrievalError{
		Kind:    RetrievalNotFound,
		Message: utils.Truncate(fmt.Sprintf("no output file found (engine reported %q)", hint), MaxDiagnosticLength),
	}
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed (%s): %s", e.Kind, e.Message)
}

func (e *RetrievalError) Unwrap() error { return e.Cause }

// SizeExceededError: the resolved file is larger than the transport accepts.
type SizeExceededError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("file %s is %s, limit is %s", e.Path, utils.FormatFileSize(e.Size), utils.FormatFileSize(e.Limit))
}

// DeliveryError: the transport rejected the upload.
type DeliveryError struct {
	Path  string
	Cause error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver %s: %v", e.Path, e.Cause)
}

func (e *DeliveryError) Unwrap() error { return e.Cause }
