package router

import (
	"go.uber.org/multierr"

	"github.com/Philipp01105/logz/core"
	"github.com/Philipp01105/logz/logger"
)

// UnexpectedFailure is the message logged for errors and panics that
// escape a Run body.
const UnexpectedFailure = "FATAL ERROR: UNEXPECTED FAILURE OCCURRED!"

// Target selects where Run sends records. Dir takes precedence over
// File; the zero Target logs to the console only.
type Target struct {
	// Dir receives a timestamped log file
	Dir string
	// File is an explicit log file path
	File string
}

// Open configures the router for t and writes the start banner.
func (r *Router) Open(t Target, origin string) (*logger.Logger, error) {
	if t.Dir != "" {
		return r.InitWithTimestampedFile(t.Dir, origin)
	}

	log, err := r.Configure(t.File)
	if err != nil {
		return nil, err
	}
	if err := r.Start(log, origin); err != nil {
		return nil, err
	}
	return log, nil
}

// Run configures the router for t, runs body and writes the ending
// banner on every exit path.
//
// An error returned by body is logged at ERROR with its trace unless it
// was marked with Reported, and is returned. A panic is logged at
// CRITICAL and returned as *PanicError. Configuration errors are returned
// without running body.
func (r *Router) Run(t Target, origin string, body func(*logger.Logger) error) (err error) {
	log, err := r.Open(t, origin)
	if err != nil {
		return err
	}

	defer func() {
		if v := recover(); v != nil {
			perr := newPanicError(v)
			err = multierr.Append(perr, log.LogError(core.CriticalLevel, UnexpectedFailure, perr))
		}
		err = multierr.Append(err, r.Terminate(log, origin))
	}()

	if err := body(log); err != nil {
		if IsReported(err) {
			return err
		}
		return multierr.Append(err, log.Exception(UnexpectedFailure, err))
	}
	return nil
}
