package benchmark

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/Philipp01105/logz/core"
	"github.com/Philipp01105/logz/formatter"
	"github.com/Philipp01105/logz/handler"
	"github.com/Philipp01105/logz/handler/consolehandler"
	"github.com/Philipp01105/logz/handler/filehandler"
	"github.com/Philipp01105/logz/logger"
	"github.com/Philipp01105/logz/router"
)

// discardWriter is a no-op writer for benchmarking
type discardWriter struct{}

func (w discardWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

var sinkBytes []byte

// newConsoleRouter returns a router configured for the console only.
func newConsoleRouter(b *testing.B, opts ...router.Option) (*router.Router, *logger.Logger) {
	b.Helper()
	r, err := router.New(append([]router.Option{router.WithConsoleWriter(discardWriter{})}, opts...)...)
	if err != nil {
		b.Fatal(err)
	}
	log, err := r.Configure("")
	if err != nil {
		b.Fatal(err)
	}
	return r, log
}

// newFileRouter returns a router writing to a file in a temp directory.
func newFileRouter(b *testing.B, opts ...router.Option) (*router.Router, *logger.Logger) {
	b.Helper()
	r, err := router.New(append([]router.Option{router.WithConsoleWriter(discardWriter{})}, opts...)...)
	if err != nil {
		b.Fatal(err)
	}
	log, err := r.Configure(filepath.Join(b.TempDir(), "bench.log"))
	if err != nil {
		b.Fatal(err)
	}
	return r, log
}

// Benchmark logger creation
func BenchmarkLoggerCreation(b *testing.B) {
	h := newNoopHandler()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = logger.NewBuilder().
			WithHandler(h).
			WithLevel(core.InfoLevel).
			Build()
	}
}

// Benchmark With() and Named() (creating child loggers)
func BenchmarkChildLoggers(b *testing.B) {
	log := logger.NewBuilder().WithHandler(newNoopHandler()).Build()

	b.Run("With", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = log.With(logger.String("request_id", "12345"))
		}
	})

	b.Run("Named", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = log.Named("db").Named("pool")
		}
	})
}

// Benchmark each tier on the console sinks
func BenchmarkConsoleTiers(b *testing.B) {
	r, log := newConsoleRouter(b)
	defer r.Close()

	b.Run("Info", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			log.Info("test message", logger.String("key", "value"))
		}
	})

	b.Run("Alert", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			log.Error("test message", logger.String("key", "value"))
		}
	})

	b.Run("Exception", func(b *testing.B) {
		err := errors.New("connection reset")
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			log.Exception("test message", err)
		}
	})
}

// Benchmark the file sinks in both formats
func BenchmarkFileSinks(b *testing.B) {
	for _, format := range []router.Format{router.FormatText, router.FormatJSON} {
		b.Run(string(format), func(b *testing.B) {
			r, log := newFileRouter(b, router.WithFormat(format))
			defer r.Close()

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				log.Info("file log",
					logger.String("method", "GET"),
					logger.Int("status", 200),
					logger.Duration("latency", 150*time.Millisecond),
				)
			}
		})
	}
}

// Benchmark the level gate when records are filtered out
func BenchmarkDisabledLevel(b *testing.B) {
	r, log := newConsoleRouter(b, router.WithLevel(core.ErrorLevel))
	defer r.Close()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		log.Debug("skipped", logger.String("key", "value"))
	}
}

// Benchmark fan-out cost with duplicated sink sets
func BenchmarkSinkSets(b *testing.B) {
	for _, sets := range []int{1, 2, 4} {
		b.Run(fmt.Sprintf("%dSets", sets), func(b *testing.B) {
			r, log := newConsoleRouter(b)
			defer r.Close()
			for i := 1; i < sets; i++ {
				if _, err := r.ConfigureAppend(""); err != nil {
					b.Fatal(err)
				}
			}

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				log.Info("fan out")
			}
		})
	}
}

// Benchmark formatters directly
func BenchmarkFormatters(b *testing.B) {
	entry := &core.Entry{
		Time:    time.Now(),
		Logger:  "bench",
		Level:   core.ErrorLevel,
		Message: "test message",
		Fields: []core.Field{
			logger.String("key1", "value1"),
			logger.Int("key2", 42),
		},
		Caller: core.GetCaller(0),
		Origin: core.GetOrigin(),
	}

	formatters := map[string]formatter.Formatter{
		"Info":  formatter.NewInfoFormatter(formatter.Config{WithTag: true}),
		"Alert": formatter.NewAlertFormatter(formatter.Config{WithTag: true}),
		"JSON":  formatter.NewJSONFormatter(formatter.Config{WithTag: true}),
	}

	for name, f := range formatters {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				sinkBytes, _ = f.Format(entry)
			}
		})
	}
}

// Benchmark concurrent logging through one shared destination
func BenchmarkConcurrentLogging(b *testing.B) {
	dest := consolehandler.NewDestination(io.Discard)
	info, alert := filehandler.NewTierHandlers(dest, filehandler.TextFormats(formatter.Config{}))
	log := logger.NewBuilder().
		WithHandler(handler.NewMultiHandler(info, alert)).
		WithLevel(core.InfoLevel).
		Build()

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			log.Info("test message",
				logger.String("key1", "value1"),
				logger.Int("key2", 42),
			)
		}
	})
}

// Benchmark the logger with a handler that does no work
func BenchmarkParallel_NoopHandler(b *testing.B) {
	log := logger.NewBuilder().
		WithHandler(newNoopHandler()).
		WithLevel(core.InfoLevel).
		Build()

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			log.Info("parallel log")
		}
	})
}

// Benchmark the entry pool round trip
func BenchmarkEntryPool(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e := core.GetEntry()
		core.PutEntry(e)
	}
}

// Benchmark caller and origin capture used by alert blocks
func BenchmarkCallerCapture(b *testing.B) {
	b.Run("Caller", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = core.GetCaller(0)
		}
	})

	b.Run("Origin", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = core.GetOrigin()
		}
	})
}
