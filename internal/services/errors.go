package services

import (
	"errors"
	"strings"
)

var (
	ErrToolFailure     = errors.New("external tool failure")
	ErrMalformedOutput = errors.New("malformed tool output")
	ErrReplaceFailed   = errors.New("replace failed")
	ErrIOFailure       = errors.New("i/o failure")
	ErrTimeout         = errors.New("timeout")
	ErrConfiguration   = errors.New("configuration error")
)

// Pipeline stage names used to tag errors and log lines.
const (
	StageProbe   = "probe"
	StageExtract = "extract"
	StageRemux   = "remux"
	StageArchive = "archive"
)

// Error is a stage failure tagged with one of the sentinel markers above.
// errors.Is matches both the marker and the wrapped cause.
type Error struct {
	Marker    error
	Stage     string
	Operation string
	Message   string
	Err       error
}

func (e *Error) Error() string {
	detail := buildDetail(e.Stage, e.Operation, e.Message)
	marker := e.Marker
	if marker == nil {
		marker = ErrToolFailure
	}
	if e.Err != nil {
		return marker.Error() + ": " + detail + ": " + e.Err.Error()
	}
	return marker.Error() + ": " + detail
}

func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Marker != nil {
		out = append(out, e.Marker)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Wrap builds an error that includes stage context while tagging it with the
// provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	if marker == nil {
		marker = ErrToolFailure
	}
	return &Error{
		Marker:    marker,
		Stage:     strings.TrimSpace(stage),
		Operation: strings.TrimSpace(operation),
		Message:   strings.TrimSpace(message),
		Err:       err,
	}
}

// StageOf reports the stage recorded on err, or "" when err carries none.
func StageOf(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Stage
	}
	return ""
}

// FailureReason condenses err into the short label shown in summaries.
func FailureReason(err error) string {
	if err == nil {
		return ""
	}
	var label string
	switch {
	case errors.Is(err, ErrTimeout):
		label = "timed out"
	case errors.Is(err, ErrMalformedOutput):
		label = "malformed output"
	case errors.Is(err, ErrReplaceFailed):
		label = "replace failed"
	case errors.Is(err, ErrIOFailure):
		label = "i/o failure"
	case errors.Is(err, ErrToolFailure):
		label = "tool failure"
	case errors.Is(err, ErrConfiguration):
		label = "configuration"
	default:
		return err.Error()
	}
	if stage := StageOf(err); stage != "" {
		return stage + ": " + label
	}
	return label
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage != "" {
		parts = append(parts, stage)
	}
	if operation != "" {
		parts = append(parts, operation)
	}
	if message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
