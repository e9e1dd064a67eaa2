package router

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/pkg/errors"

	"github.com/Philipp01105/logz/handler/filehandler"
)

var (
	// ErrNotConfigured is returned by Terminate before any Configure.
	ErrNotConfigured = errors.New("log router is not configured")

	// ErrLogDirNotFound is returned when a log file's directory is missing.
	ErrLogDirNotFound = filehandler.ErrDirNotFound

	// ErrReported marks an error the body already logged. Run does not
	// log it a second time.
	ErrReported = errors.New("error already reported")
)

type reportedError struct {
	err error
}

// Reported marks err as already logged. It returns nil for a nil err.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// IsReported reports whether err or any error it wraps was marked by
// Reported.
func IsReported(err error) bool {
	return errors.Is(err, ErrReported)
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func (e *reportedError) Is(target error) bool { return target == ErrReported }

func (e *reportedError) Format(s fmt.State, verb rune) {
	if f, ok := e.err.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}
	_, _ = io.WriteString(s, e.err.Error())
}

// PanicError is returned by Run when the body panics.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func newPanicError(v interface{}) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Format prints the goroutine stack of the panic for %+v.
func (e *PanicError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, e.Error())
			_, _ = io.WriteString(s, "\n")
			_, _ = s.Write(e.Stack)
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}
