package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Philipp01105/logz/core"
	"github.com/Philipp01105/logz/handler/filehandler"
	"github.com/Philipp01105/logz/logger"
)

var fixedTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

const stamp = "2024-01-02 03:04:05 +0000"

func newTestRouter(t *testing.T, console *bytes.Buffer, opts ...Option) *Router {
	t.Helper()
	base := []Option{
		WithConsoleWriter(console),
		WithClock(func() time.Time { return fixedTime }),
		WithHostInfo(func() string { return "test-os" }),
	}
	r, err := New(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestTimestampedPath(t *testing.T) {
	tests := []struct {
		dir, origin, want string
	}{
		{"D", "foo.py", filepath.Join("D", "foo-20240102030405.log")},
		{"D", "/src/app/foo.tar.gz", filepath.Join("D", "foo-20240102030405.log")},
		{"logs", "cmd/logz", filepath.Join("logs", "logz-20240102030405.log")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimestampedPath(tt.dir, tt.origin, fixedTime), tt.origin)
	}
}

func TestInitWithTimestampedFile(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)
	dir := t.TempDir()

	log, err := r.InitWithTimestampedFile(dir, "foo.py")
	require.NoError(t, err)
	assert.Equal(t, Configured, r.State())

	path := filepath.Join(dir, "foo-20240102030405.log")
	content := readFile(t, path)

	banner := "\n" + stamp + " - root - [⬛] INFO: \n" +
		"OPERATING SYSTEM: test-os\n" +
		"GO VERSION: " + runtime.Version() + "\n" +
		"SESSION: " + r.Session() + "\n" +
		"FILE: foo.py\n" +
		"========== STARTING ==========\n"
	assert.Equal(t, banner, content, "start banner is the first record")
	assert.Empty(t, console.String(), "informational records stay out of the console")

	require.NoError(t, log.Debug("probe"))
	content = readFile(t, path)
	assert.Contains(t, content, "\n"+stamp+" - root - [⚪] DEBUG: probe\n")
	assert.NotContains(t, console.String(), "probe")
}

func TestConfigure_FileRouting(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := r.Configure(path)
	require.NoError(t, err)

	require.NoError(t, log.Info("hello"))
	require.NoError(t, log.Critical("meltdown"))

	content := readFile(t, path)
	assert.Contains(t, content, "[⬛] INFO: hello")
	assert.Contains(t, content, "\n[🟥🟥] meltdown\n"+stamp+" - root - CRITICAL\n")
	assert.Equal(t, 1, strings.Count(content, "meltdown"), "file alert record written once")

	out := console.String()
	assert.Contains(t, out, "\nmeltdown\n"+stamp+" - root - CRITICAL\n")
	assert.Contains(t, out, "router_test.go\n→ router → TestConfigure_FileRouting @ ")
	assert.NotContains(t, out, "hello")
	assert.NotContains(t, out, "🟥", "console records are untagged")
}

func TestConfigure_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)

	log, err := r.Configure("")
	require.NoError(t, err)

	require.NoError(t, log.Debug("details"))
	require.NoError(t, log.Warning("careful"))

	out := console.String()
	assert.Contains(t, out, "\n"+stamp+" - root - DEBUG: details\n")
	assert.Contains(t, out, "\ncareful\n"+stamp+" - root - WARNING\ngoroutine ")
	assert.Equal(t, 1, strings.Count(out, "careful"))
	assert.Equal(t, 1, strings.Count(out, "details"))
}

func TestConfigure_MissingDirectory(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)
	dir := filepath.Join(t.TempDir(), "missing")

	log, err := r.Configure(filepath.Join(dir, "app.log"))
	assert.Nil(t, log)
	assert.True(t, errors.Is(err, ErrLogDirNotFound), "got %v", err)
	assert.Equal(t, Unconfigured, r.State())

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "directory must not be created")

	_, err = r.InitWithTimestampedFile(dir, "foo.py")
	assert.True(t, errors.Is(err, ErrLogDirNotFound), "got %v", err)
}

func TestConfigure_ReplacesSinks(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)

	_, err := r.Configure("")
	require.NoError(t, err)
	log, err := r.Configure("")
	require.NoError(t, err)

	require.NoError(t, log.Info("once"))
	assert.Equal(t, 1, strings.Count(console.String(), "once"))
}

func TestConfigureAppend_Duplicates(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)

	_, err := r.Configure("")
	require.NoError(t, err)
	log, err := r.ConfigureAppend("")
	require.NoError(t, err)

	require.NoError(t, log.Info("twice"))
	require.NoError(t, log.Error("alert twice"))

	assert.Equal(t, 2, strings.Count(console.String(), "INFO: twice"))
	assert.Equal(t, 2, strings.Count(console.String(), "\nalert twice\n"))
}

func TestConfigureAppend_SameFileSharesDestination(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)
	path := filepath.Join(t.TempDir(), "app.log")

	_, err := r.Configure(path)
	require.NoError(t, err)
	log, err := r.ConfigureAppend(path)
	require.NoError(t, err)

	require.NoError(t, log.Info("dup"))
	assert.Equal(t, 2, strings.Count(readFile(t, path), "INFO: dup"))
	assert.Len(t, r.files, 1)
}

func TestConfigure_ClosesReplacedFile(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)
	path := filepath.Join(t.TempDir(), "app.log")

	_, err := r.Configure(path)
	require.NoError(t, err)
	dest := r.files[mustAbs(t, path)]
	require.NotNil(t, dest)

	log, err := r.Configure("")
	require.NoError(t, err)
	assert.Empty(t, r.files)

	_, err = dest.Write([]byte("late"))
	assert.Error(t, err, "replaced destination is closed")

	require.NoError(t, log.Info("console now"))
	assert.NotContains(t, readFile(t, path), "console now")
	assert.Contains(t, console.String(), "console now")
}

func mustAbs(t *testing.T, path string) string {
	t.Helper()
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	return abs
}

func TestTerminate(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)

	assert.ErrorIs(t, r.Terminate(nil, "foo.py"), ErrNotConfigured)

	log, err := r.Configure("")
	require.NoError(t, err)
	require.NoError(t, r.Terminate(log, "foo.py"))

	assert.Contains(t, console.String(), "INFO: \n========== ENDING ==========\nFILE: foo.py\n")
	assert.Equal(t, Terminated, r.State())

	// A new session reconfigures the router
	_, err = r.Configure("")
	require.NoError(t, err)
	assert.Equal(t, Configured, r.State())
}

func TestRun_Success(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)
	dir := t.TempDir()

	err := r.Run(Target{Dir: dir}, "job.go", func(log *logger.Logger) error {
		return log.Info("working")
	})
	require.NoError(t, err)

	content := readFile(t, filepath.Join(dir, "job-20240102030405.log"))
	starting := strings.Index(content, "STARTING")
	working := strings.Index(content, "working")
	ending := strings.Index(content, "ENDING")
	assert.True(t, starting >= 0 && starting < working && working < ending, "records in order: %s", content)
	assert.Equal(t, Terminated, r.State())
}

func TestRun_BodyError(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)
	path := filepath.Join(t.TempDir(), "job.log")

	bodyErr := errors.New("unspecified failure")
	err := r.Run(Target{File: path}, "job.go", func(*logger.Logger) error {
		return bodyErr
	})
	assert.True(t, errors.Is(err, bodyErr), "got %v", err)

	content := readFile(t, path)
	assert.Contains(t, content, "[🟥] "+UnexpectedFailure+"\n")
	assert.Contains(t, content, "unspecified failure")
	assert.Contains(t, content, "TestRun_BodyError", "error trace is written")
	assert.Contains(t, content, "========== ENDING ==========\nFILE: job.go")
	assert.Contains(t, console.String(), UnexpectedFailure)
}

func TestRun_ReportedError(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)

	err := r.Run(Target{}, "job.go", func(log *logger.Logger) error {
		cause := errors.New("division by zero")
		_ = log.Exception("specified failure", cause)
		return Reported(cause)
	})
	assert.True(t, IsReported(err))
	assert.Equal(t, "division by zero", err.Error())

	out := console.String()
	assert.Contains(t, out, "specified failure")
	assert.NotContains(t, out, UnexpectedFailure)
	assert.Contains(t, out, "========== ENDING ==========")
}

func TestRun_Panic(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)
	path := filepath.Join(t.TempDir(), "job.log")

	err := r.Run(Target{File: path}, "job.go", func(*logger.Logger) error {
		panic("boom")
	})

	var perr *PanicError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, "boom", perr.Value)
	assert.Contains(t, string(perr.Stack), "TestRun_Panic")

	content := readFile(t, path)
	assert.Contains(t, content, "[🟥🟥] "+UnexpectedFailure+"\n")
	assert.Contains(t, content, "panic: boom")
	assert.Contains(t, content, "========== ENDING ==========")
}

func TestRun_ConfigureError(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)

	ran := false
	err := r.Run(Target{Dir: filepath.Join(t.TempDir(), "missing")}, "job.go", func(*logger.Logger) error {
		ran = true
		return nil
	})
	assert.True(t, errors.Is(err, ErrLogDirNotFound))
	assert.False(t, ran)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("stream closed") }

func TestWriteErrorsReachCaller(t *testing.T) {
	r, err := New(WithConsoleWriter(failingWriter{}), WithHostInfo(func() string { return "x" }))
	require.NoError(t, err)

	log, err := r.Configure("")
	require.NoError(t, err)

	err = log.Info("lost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stream closed")
	assert.Contains(t, err.Error(), "console-info")
}

func TestConcurrentFileWrites(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := r.Configure(path)
	require.NoError(t, err)

	const goroutines, perG = 10, 50
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			child := log.Named("worker")
			for i := 0; i < perG; i++ {
				assert.NoError(t, child.Info("tick", logger.Int("g", g), logger.Int("i", i)))
			}
		}(g)
	}
	wg.Wait()

	records := strings.Split(strings.TrimSpace(readFile(t, path)), "\n\n")
	require.Len(t, records, goroutines*perG)
	for _, rec := range records {
		require.True(t, strings.HasPrefix(rec, stamp+" - worker - [⬛] INFO: tick g="), "torn record: %q", rec)
		require.NotContains(t, rec, "\n")
	}
}

func TestJSONFormat(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console, WithFormat(FormatJSON))
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := r.Configure(path)
	require.NoError(t, err)
	require.NoError(t, log.Info("hello", logger.String("user", "alice")))

	var rec map[string]interface{}
	line := strings.TrimSpace(readFile(t, path))
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "⬛", rec["tag"])
	assert.Equal(t, "alice", rec["user"])
}

func TestNew_InvalidFormat(t *testing.T) {
	_, err := New(WithFormat("xml"))
	assert.Error(t, err)
}

func TestRotation(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console, WithRotation(filehandler.Rotation{MaxSizeMB: 1, MaxBackups: 2}))
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := r.Configure(path)
	require.NoError(t, err)
	require.NoError(t, log.Info("rotating"))
	assert.Contains(t, readFile(t, path), "rotating")
}

func writtenCount(t *testing.T, reg *prometheus.Registry, sink, level string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "logz_sink_records_written_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["sink"] == sink && labels["level"] == level {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestMetricsRegistration(t *testing.T) {
	var console bytes.Buffer
	reg := prometheus.NewRegistry()
	r := newTestRouter(t, &console, WithRegisterer(reg))

	log, err := r.Configure("")
	require.NoError(t, err)
	require.NoError(t, log.Info("counted"))
	require.NoError(t, log.Info("counted"))

	n, err := testutil.GatherAndCount(reg, "logz_sink_records_written_total")
	require.NoError(t, err)
	assert.Positive(t, n)
	assert.Equal(t, 2.0, writtenCount(t, reg, "console-info", "INFO"))

	// Replaced sinks keep contributing their totals
	log, err = r.Configure("")
	require.NoError(t, err)
	assert.Equal(t, 2.0, writtenCount(t, reg, "console-info", "INFO"))
	require.NoError(t, log.Info("counted"))
	assert.Equal(t, 3.0, writtenCount(t, reg, "console-info", "INFO"))

	path := filepath.Join(t.TempDir(), "app.log")
	log, err = r.Configure(path)
	require.NoError(t, err)
	require.NoError(t, log.Info("to file"))
	assert.Equal(t, 3.0, writtenCount(t, reg, "console-info", "INFO"))
	assert.Equal(t, 1.0, writtenCount(t, reg, "file-info", "INFO"))

	require.NoError(t, r.Close())
	assert.Equal(t, 1.0, writtenCount(t, reg, "file-info", "INFO"))
}

func TestConfigure_ConcurrentWithLogging(t *testing.T) {
	var console bytes.Buffer
	r := newTestRouter(t, &console)
	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "a.log"), filepath.Join(dir, "b.log")}

	log, err := r.Configure(paths[0])
	require.NoError(t, err)

	const (
		goroutines = 8
		records    = 200
	)
	var wg sync.WaitGroup
	errs := make(chan error, goroutines*records)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < records; i++ {
				if err := log.Info("concurrent record"); err != nil {
					errs <- err
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		_, err := r.Configure(paths[i%2])
		require.NoError(t, err)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("record lost during reconfigure: %v", err)
	}
	total := strings.Count(readFile(t, paths[0]), "INFO: concurrent record") +
		strings.Count(readFile(t, paths[1]), "INFO: concurrent record")
	assert.Equal(t, goroutines*records, total)
}

func TestLevelRouting(t *testing.T) {
	configs := []struct {
		name string
		file bool
		// sinks that must receive a record, by tier
		info, alert []string
	}{
		{"console", false, []string{"console-info"}, []string{"console-alert"}},
		{"file", true, []string{"file-info"}, []string{"file-alert", "console-alert"}},
	}

	for _, cfg := range configs {
		for _, level := range core.Levels {
			t.Run(cfg.name+"/"+level.String(), func(t *testing.T) {
				var console bytes.Buffer
				r := newTestRouter(t, &console)
				path := ""
				if cfg.file {
					path = filepath.Join(t.TempDir(), "app.log")
				}
				log, err := r.Configure(path)
				require.NoError(t, err)

				msg := "routed " + level.String()
				require.NoError(t, log.Log(level, msg))

				want := cfg.info
				if level.IsAlert() {
					want = cfg.alert
				}
				got := map[string]uint64{}
				for _, sp := range r.SinkStats() {
					if n := sp.Stats().Written[level]; n > 0 {
						got[sp.Name()] += n
					}
				}
				expected := map[string]uint64{}
				for _, name := range want {
					expected[name] = 1
				}
				assert.Equal(t, expected, got)

				consoleCount := 0
				if !cfg.file || level.IsAlert() {
					consoleCount = 1
				}
				assert.Equal(t, consoleCount, strings.Count(console.String(), msg))
				assert.NotContains(t, console.String(), level.Tag())

				if cfg.file {
					content := readFile(t, path)
					assert.Equal(t, 1, strings.Count(content, msg))
					if level.IsAlert() {
						assert.Contains(t, content, "["+level.Tag()+"] "+msg+"\n"+stamp+" - root - "+level.String()+"\n")
					} else {
						assert.Contains(t, content, "["+level.Tag()+"] "+level.String()+": "+msg+"\n")
					}
				}
			})
		}
	}
}

func TestPanicErrorFormat(t *testing.T) {
	perr := newPanicError(errors.New("inner"))
	assert.Equal(t, "panic: inner", perr.Error())
	assert.EqualError(t, errors.Unwrap(perr), "inner")
	assert.Contains(t, fmt.Sprintf("%+v", perr), "goroutine")
}

func TestReported(t *testing.T) {
	assert.Nil(t, Reported(nil))
	cause := errors.New("cause")
	wrapped := errors.Wrap(Reported(cause), "context")
	assert.True(t, IsReported(wrapped))
	assert.True(t, errors.Is(wrapped, cause))
	assert.False(t, IsReported(cause))
}
