package router

import (
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/Philipp01105/logz/core"
	"github.com/Philipp01105/logz/formatter"
	"github.com/Philipp01105/logz/handler"
	"github.com/Philipp01105/logz/handler/consolehandler"
	"github.com/Philipp01105/logz/handler/filehandler"
	"github.com/Philipp01105/logz/logger"
	"github.com/Philipp01105/logz/metrics"
)

// State is the lifecycle state of a Router.
type State int32

const (
	Unconfigured State = iota
	Configured
	Terminated
)

func (s State) String() string {
	switch s {
	case Unconfigured:
		return "unconfigured"
	case Configured:
		return "configured"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

const (
	bannerRule = "=========="

	// FileTimestampFormat is the layout of the timestamp in log file names.
	FileTimestampFormat = "20060102150405"
)

// Router owns the sink set behind a single logger. Loggers handed out
// before a reconfigure write to the new sinks.
type Router struct {
	name            string
	level           core.Level
	format          Format
	rotation        filehandler.Rotation
	consoleWriter   io.Writer
	timestampFormat string
	clock           func() time.Time
	hostInfo        func() string
	registerer      prometheus.Registerer
	session         string

	mu      sync.Mutex // serializes configuration changes
	console *handler.Destination
	files   map[string]*handler.Destination
	sinks   []*handler.Sink
	retired map[string]*handler.Stats // totals of replaced sinks, by name
	state   atomic.Int32

	dispatch *dispatcher
	log      *logger.Logger
}

// New creates an unconfigured Router.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		name:     logger.RootName,
		level:    core.DebugLevel,
		format:   FormatText,
		clock:    time.Now,
		hostInfo: DescribeHost,
		session:  newSessionID(),
		files:    make(map[string]*handler.Destination),
		retired:  make(map[string]*handler.Stats),
	}
	for _, opt := range opts {
		opt(r)
	}

	switch r.format {
	case FormatText, FormatJSON:
	default:
		return nil, errors.Errorf("unknown log format %q", r.format)
	}

	r.console = consolehandler.NewDestination(r.consoleWriter)
	r.dispatch = &dispatcher{router: r, current: handler.NewMultiHandler()}
	r.log = logger.NewBuilder().
		WithName(r.name).
		WithLevel(r.level).
		WithHandler(r.dispatch).
		WithClock(r.clock).
		Build()

	if r.registerer != nil {
		if err := r.registerer.Register(metrics.NewCollector(r)); err != nil {
			return nil, errors.Wrap(err, "register sink metrics")
		}
	}
	return r, nil
}

// Logger returns the router's logger. It discards records until the
// router is configured.
func (r *Router) Logger() *logger.Logger {
	return r.log
}

// Session returns the session id written in the start banner.
func (r *Router) Session() string {
	return r.session
}

// State returns the lifecycle state.
func (r *Router) State() State {
	return State(r.state.Load())
}

// Configure replaces the active sinks and returns the router's logger.
//
// Alert records (WARNING and above) always go to the console alert sink.
// With an empty path, informational records go to the console info sink.
// Otherwise both tiers are also written, tagged, to the file at path,
// and informational records go only to the file. The file's directory
// must exist. File destinations no longer in use are closed; the logger
// is valid even when that close fails.
func (r *Router) Configure(path string) (*logger.Logger, error) {
	return r.configure(path, false)
}

// ConfigureAppend adds a new sink set next to the active one. Every
// record is then emitted once per set.
func (r *Router) ConfigureAppend(path string) (*logger.Logger, error) {
	return r.configure(path, true)
}

func (r *Router) configure(path string, appendSet bool) (*logger.Logger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, err := r.buildSinks(path)
	if err != nil {
		return nil, err
	}

	if appendSet {
		set = append(r.sinks[:len(r.sinks):len(r.sinks)], set...)
	}
	err = r.replaceSinks(set)
	r.state.Store(int32(Configured))

	return r.log, errors.Wrap(err, "close replaced log file")
}

// replaceSinks installs set and retires the sinks it drops. In-flight
// records finish on the old set before its files are closed. Callers
// hold r.mu.
func (r *Router) replaceSinks(set []*handler.Sink) error {
	return r.dispatch.replace(set, func() error {
		kept := make(map[*handler.Sink]bool, len(set))
		for _, s := range set {
			kept[s] = true
		}
		for _, s := range r.sinks {
			if !kept[s] {
				r.retire(s)
			}
		}
		r.sinks = set
		return r.closeUnused()
	})
}

// retire folds a dropped sink's counters into the totals for its name so
// exported counters never go down.
func (r *Router) retire(s *handler.Sink) {
	st, ok := r.retired[s.Name()]
	if !ok {
		st = handler.NewStats()
		r.retired[s.Name()] = st
	}
	st.Add(s.Stats())
}

func (r *Router) buildSinks(path string) ([]*handler.Sink, error) {
	fc := formatter.Config{TimestampFormat: r.timestampFormat}
	alert := consolehandler.NewAlertHandler(r.console, fc)
	if path == "" {
		return []*handler.Sink{consolehandler.NewInfoHandler(r.console, fc), alert}, nil
	}

	dest, err := r.fileDestination(path)
	if err != nil {
		return nil, err
	}

	formats := filehandler.TextFormats(fc)
	if r.format == FormatJSON {
		formats = filehandler.JSONFormats(fc)
	}
	fileInfo, fileAlert := filehandler.NewTierHandlers(dest, formats)
	return []*handler.Sink{fileInfo, fileAlert, alert}, nil
}

// fileDestination returns the open destination for path, opening it on
// first use so that every sink on one file shares one write lock.
func (r *Router) fileDestination(path string) (*handler.Destination, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve log file %s", path)
	}
	if dest, ok := r.files[key]; ok {
		return dest, nil
	}

	dest, err := filehandler.Open(filehandler.FileConfig{Filename: path, Rotation: r.rotation})
	if err != nil {
		return nil, errors.Wrapf(err, "configure log file %s", path)
	}
	r.files[key] = dest
	return dest, nil
}

// closeUnused closes file destinations no active sink writes to.
func (r *Router) closeUnused() error {
	inUse := make(map[*handler.Destination]bool, len(r.sinks))
	for _, s := range r.sinks {
		inUse[s.Destination()] = true
	}

	var err error
	for key, dest := range r.files {
		if !inUse[dest] {
			err = multierr.Append(err, dest.Close())
			delete(r.files, key)
		}
	}
	return err
}

// TimestampedPath returns the log file path for origin under dir: the
// base name of origin up to its first dot, a dash, t as YYYYMMDDHHMMSS
// and ".log".
func TimestampedPath(dir, origin string, t time.Time) string {
	base := filepath.Base(origin)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return filepath.Join(dir, base+"-"+t.Format(FileTimestampFormat)+".log")
}

// InitWithTimestampedFile configures a file named by TimestampedPath
// under dir and writes the start banner as its first record.
func (r *Router) InitWithTimestampedFile(dir, origin string) (*logger.Logger, error) {
	path := TimestampedPath(dir, origin, r.clock())
	log, err := r.Configure(path)
	if err != nil {
		return nil, err
	}
	if err := r.Start(log, origin); err != nil {
		return nil, err
	}
	return log, nil
}

// Start writes the start banner with host, Go version, session and origin.
func (r *Router) Start(log *logger.Logger, origin string) error {
	if r.State() == Unconfigured {
		return ErrNotConfigured
	}
	if log == nil {
		log = r.log
	}

	var b strings.Builder
	b.WriteString("\nOPERATING SYSTEM: ")
	b.WriteString(r.hostInfo())
	b.WriteString("\nGO VERSION: ")
	b.WriteString(runtime.Version())
	b.WriteString("\nSESSION: ")
	b.WriteString(r.session)
	b.WriteString("\nFILE: ")
	b.WriteString(origin)
	b.WriteString("\n" + bannerRule + " STARTING " + bannerRule)

	return errors.Wrap(log.Info(b.String()), "write start banner")
}

// Terminate writes the ending banner for origin at INFO. Sinks stay open.
func (r *Router) Terminate(log *logger.Logger, origin string) error {
	if r.State() == Unconfigured {
		return ErrNotConfigured
	}
	if log == nil {
		log = r.log
	}

	err := log.Info("\n" + bannerRule + " ENDING " + bannerRule + "\nFILE: " + origin)
	r.state.Store(int32(Terminated))
	return errors.Wrap(err, "write ending banner")
}

// SinkStats returns the active sinks for metrics collection, plus the
// accumulated totals of sinks replaced by earlier configurations.
func (r *Router) SinkStats() []handler.StatsProvider {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]handler.StatsProvider, 0, len(r.sinks)+len(r.retired))
	for _, s := range r.sinks {
		out = append(out, s)
	}
	for name, st := range r.retired {
		out = append(out, retiredSink{name: name, stats: st})
	}
	return out
}

type retiredSink struct {
	name  string
	stats *handler.Stats
}

func (s retiredSink) Name() string { return s.name }
func (s retiredSink) Stats() handler.Snapshot { return s.stats.GetSnapshot() }

// Close closes every file destination. The console stream is left open.
func (r *Router) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.replaceSinks(nil)
}

// dispatcher is the Handler behind the router's logger. It forwards to
// the current sink set. Records hold the read lock for the whole write,
// so a replacement waits for them before retiring the old set.
type dispatcher struct {
	router *Router

	mu      sync.RWMutex
	current *handler.MultiHandler
}

// replace swaps in sinks and runs retire while no record is in flight.
func (d *dispatcher) replace(sinks []*handler.Sink, retire func() error) error {
	handlers := make([]handler.Handler, len(sinks))
	for i, s := range sinks {
		handlers[i] = s
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = handler.NewMultiHandler(handlers...)
	return retire()
}

func (d *dispatcher) Handle(entry *core.Entry) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current.Handle(entry)
}

// Close closes the router's file destinations.
func (d *dispatcher) Close() error {
	return d.router.Close()
}
