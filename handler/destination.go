package handler

import (
	"io"
	"sync"

	"github.com/pkg/errors"
)

// ErrDestinationClosed is returned by writes after Close.
var ErrDestinationClosed = errors.New("destination closed")

// Destination serializes writes to an underlying writer. Each record is
// passed in a single Write call, so holding mu for that call keeps
// records from interleaving. Sinks that target the same stream or file
// must share one Destination.
type Destination struct {
	name   string
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	closed bool
}

// NewDestination wraps a writer the destination does not own, such as
// os.Stderr. Close marks it closed but leaves w open.
func NewDestination(name string, w io.Writer) *Destination {
	return &Destination{name: name, w: w}
}

// NewOwnedDestination wraps a writer the destination owns; Close closes it.
func NewOwnedDestination(name string, wc io.WriteCloser) *Destination {
	return &Destination{name: name, w: wc, closer: wc}
}

// Name returns the destination name (a stream name or file path).
func (d *Destination) Name() string {
	return d.name
}

// Write writes p with a single call to the underlying writer.
func (d *Destination) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, errors.Wrap(ErrDestinationClosed, d.name)
	}
	n, err := d.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

// Close closes the destination. It is safe to call more than once.
func (d *Destination) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}
