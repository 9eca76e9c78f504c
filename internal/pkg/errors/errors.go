package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// New creates a new instance of the base error
func New(msg string) error {
	return fmt.Errorf("%s: %s", msg, filePath())
}

// Wrap creates a new error of the wrapped error
func Wrap(err error, msg string) error {
	return fmt.Errorf("%s %s \ncaused by: %w", msg, filePath(), err)
}

// Is checks if the error is equal to the target
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

// As returns the wrapped error
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

func Errorf(format string, args ...interface{}) error {
	args = append(args, filePath())
	return fmt.Errorf(format+` %s`, args...)
}

func filePath() string {
	pc, f, l, ok := runtime.Caller(2)
	fn := `unknown`
	if ok {
		fn = runtime.FuncForPC(pc).Name()
	}
	return fmt.Sprintf("at %s\n\t%s:%d", fn, f, l)
}

// InvalidURLError marks caller input that never reached the network: the raw
// string did not parse as an absolute http(s) URL.
type InvalidURLError struct {
	Raw string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid url: %q", e.Raw)
}

// FetchError is a non-2xx response from the target site. The status is
// surfaced to the caller, so it maps to a 400 rather than a server fault.
type FetchError struct {
	Status     int
	StatusText string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch url: %d %s", e.Status, e.StatusText)
}

// AuditError is a failure reported for one device run of the external audit
// API. Message is already user-presentable.
type AuditError struct {
	Strategy string
	Message  string
}

func (e *AuditError) Error() string {
	return fmt.Sprintf("audit failed (%s): %s", e.Strategy, e.Message)
}
