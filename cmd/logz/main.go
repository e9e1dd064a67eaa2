// Command logz runs a short demonstration workload through a log router.
//
//	logz [--logdir DIR | --lfpn FILE] [--tes] [--teu] [--level L] [--format text|json]
//
// With --logdir the records go to a timestamped file in DIR, with --lfpn
// to FILE, and otherwise to the console only. --tes triggers a failure
// the workload reports itself; --teu one it leaves to the router. The
// exit status is 1 on any failure.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/Philipp01105/logz/config"
	"github.com/Philipp01105/logz/handler/zaphandler"
	"github.com/Philipp01105/logz/logger"
	"github.com/Philipp01105/logz/router"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := pflag.NewFlagSet("logz", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(stderr, "logz: %v\n", err)
		return 1
	}

	r, err := router.New(append(cfg.RouterOptions(), router.WithConsoleWriter(stderr))...)
	if err != nil {
		fmt.Fprintf(stderr, "logz: %v\n", err)
		return 1
	}

	origin := filepath.Base(os.Args[0])
	err = r.Run(cfg.Target(), origin, func(log *logger.Logger) error {
		return workload(log, cfg.Test)
	})
	if closeErr := r.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		if r.State() == router.Unconfigured {
			// Nothing was logged
			fmt.Fprintf(stderr, "logz: %v\n", err)
		}
		return 1
	}
	return 0
}

// workload emits one record per level through each logging front end,
// then takes the requested failure path.
func workload(log *logger.Logger, test config.TestConfig) error {
	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		_ = log.Debugf(format, args...)
	}))
	defer undo()
	if err != nil {
		if logErr := log.Exception("failed to set GOMAXPROCS", err); logErr != nil {
			return logErr
		}
	}

	for _, emit := range []func(string, ...interface{}) error{
		log.Debugf, log.Infof, log.Warningf, log.Errorf, log.Criticalf,
	} {
		if err := emit("%s", "LEVEL TEST"); err != nil {
			return err
		}
	}

	worker := log.Named("worker").With(logger.Int("gomaxprocs", runtime.GOMAXPROCS(0)))
	if err := worker.Info("worker ready"); err != nil {
		return err
	}

	zl := zaphandler.New(log.Handler(), log.Name(), log.Level()).Named("zap")
	zl.Info("message through zap", zap.String("bridge", "zapcore"))

	log.Slog().Info("message through slog", "bridge", "slog")

	if test.ExceptionSpecified {
		if _, err := divide(1, 0); err != nil {
			if logErr := log.Exception("SPECIFIED EXCEPTION: DIVISION BY ZERO", err); logErr != nil {
				return logErr
			}
			return router.Reported(err)
		}
	}
	if test.ExceptionUnspecified {
		return errors.New("UNSPECIFIED EXCEPTION RAISED")
	}
	return nil
}

// divide converts the runtime panic of an integer division by zero into
// an error.
func divide(a, b int) (q int, err error) {
	defer func() {
		if v := recover(); v != nil {
			re, ok := v.(runtime.Error)
			if !ok {
				panic(v)
			}
			err = errors.WithStack(re)
		}
	}()
	return a / b, nil
}
