package filehandler

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Philipp01105/logz/formatter"
	"github.com/Philipp01105/logz/handler"
)

// ErrDirNotFound is returned when the log file's parent directory does not exist.
var ErrDirNotFound = errors.New("log directory does not exist")

// Rotation configures size-based rotation. The zero value disables it.
type Rotation struct {
	// MaxSizeMB is the size in megabytes at which the file is rotated
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep (0 = keep all)
	MaxBackups int
	// MaxAgeDays removes rotated files older than this (0 = never)
	MaxAgeDays int
	// Compress gzips rotated files
	Compress bool
}

// Enabled reports whether rotation is configured.
func (r Rotation) Enabled() bool {
	return r.MaxSizeMB > 0
}

// FileConfig holds configuration for a file destination
type FileConfig struct {
	// Filename is the path to the log file; its directory must exist
	Filename string
	// Rotation enables size-based rotation (default: none)
	Rotation Rotation
}

// Open opens cfg.Filename for appending and returns a destination that
// owns the file. The parent directory is not created.
func Open(cfg FileConfig) (*handler.Destination, error) {
	if cfg.Filename == "" {
		return nil, errors.New("filename is required")
	}

	dir := filepath.Dir(cfg.Filename)
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return nil, errors.Wrap(ErrDirNotFound, dir)
	case err != nil:
		return nil, errors.Wrapf(err, "stat log directory %s", dir)
	case !info.IsDir():
		return nil, errors.Errorf("log directory %s is not a directory", dir)
	}

	// Open file
	file, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "open log file")
	}

	if !cfg.Rotation.Enabled() {
		return handler.NewOwnedDestination(cfg.Filename, file), nil
	}

	// The probe open above surfaces permission errors now; lumberjack
	// itself opens lazily on first write.
	if err := file.Close(); err != nil {
		return nil, errors.Wrap(err, "close probe handle")
	}
	return handler.NewOwnedDestination(cfg.Filename, &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.Rotation.MaxSizeMB,
		MaxBackups: cfg.Rotation.MaxBackups,
		MaxAge:     cfg.Rotation.MaxAgeDays,
		LocalTime:  true,
		Compress:   cfg.Rotation.Compress,
	}), nil
}

// Formats selects the formatters of the file tiers.
type Formats struct {
	Info  formatter.Formatter
	Alert formatter.Formatter
}

// TextFormats returns the tagged text formatters.
func TextFormats(fc formatter.Config) Formats {
	fc.WithTag = true
	return Formats{
		Info:  formatter.NewInfoFormatter(fc),
		Alert: formatter.NewAlertFormatter(fc),
	}
}

// JSONFormats returns JSON formatters; alerts carry the error trace.
func JSONFormats(fc formatter.Config) Formats {
	fc.WithTag = true
	return Formats{
		Info:  formatter.NewJSONFormatter(fc),
		Alert: formatter.NewJSONTraceFormatter(fc),
	}
}

// NewTierHandlers returns the file-info and file-alert sinks. Both write
// to dest, so their records share one write lock.
func NewTierHandlers(dest *handler.Destination, f Formats) (info, alert *handler.Sink) {
	info = handler.NewSink(handler.SinkConfig{
		Name:        "file-info",
		Destination: dest,
		Filter:      handler.InfoTier,
		Formatter:   f.Info,
	})
	alert = handler.NewSink(handler.SinkConfig{
		Name:        "file-alert",
		Destination: dest,
		Filter:      handler.AlertTier,
		Formatter:   f.Alert,
	})
	return info, alert
}
