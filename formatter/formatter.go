package formatter

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/Philipp01105/logz/core"
)

// DefaultTimestampFormat renders as "2024-01-02 03:04:05 +0000".
const DefaultTimestampFormat = "2006-01-02 15:04:05 -0700"

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes
	Format(entry *core.Entry) ([]byte, error)
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatEntry formats a log entry into the given buffer.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// Config holds common formatter configuration
type Config struct {
	// TimestampFormat specifies the time layout (empty for DefaultTimestampFormat)
	TimestampFormat string
	// WithTag prefixes the level's display tag
	WithTag bool
}

func (c Config) withDefaults() Config {
	if c.TimestampFormat == "" {
		c.TimestampFormat = DefaultTimestampFormat
	}
	return c
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

// GetBuffer returns an empty pooled buffer.
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns buf to the pool.
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// format runs fn on a pooled buffer and returns a copy of the result.
func format(entry *core.Entry, fn func(*core.Entry, *bytes.Buffer)) []byte {
	buf := GetBuffer()
	defer PutBuffer(buf)

	fn(entry, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result
}

func writeTimestamp(buf *bytes.Buffer, entry *core.Entry, layout string) {
	buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), layout))
}

func writeTag(buf *bytes.Buffer, level core.Level) {
	buf.WriteByte('[')
	buf.WriteString(level.Tag())
	buf.WriteString("] ")
}

// writeTrace writes the attached error with %+v so that stack traces
// recorded by github.com/pkg/errors are included.
func writeTrace(buf *bytes.Buffer, err error) {
	if err == nil {
		return
	}
	buf.WriteByte('\n')
	fmt.Fprintf(buf, "%+v", err)
}
