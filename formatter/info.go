package formatter

import (
	"bytes"

	"github.com/Philipp01105/logz/core"
)

// InfoFormatter renders the short single-line form used by the
// informational tier:
//
//	TIMESTAMP - LOGGER - [TAG] LEVEL: MESSAGE key=value
//
// Every record is preceded by a blank line.
type InfoFormatter struct {
	Config
}

// NewInfoFormatter creates a new informational formatter
func NewInfoFormatter(cfg Config) *InfoFormatter {
	return &InfoFormatter{Config: cfg.withDefaults()}
}

// Format formats an entry as a single line
func (f *InfoFormatter) Format(entry *core.Entry) ([]byte, error) {
	return format(entry, f.FormatEntry), nil
}

// FormatEntry formats an entry into buf (implements BufferFormatter).
func (f *InfoFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	buf.WriteByte('\n')
	writeTimestamp(buf, entry, f.TimestampFormat)
	buf.WriteString(" - ")
	buf.WriteString(entry.Logger)
	buf.WriteString(" - ")
	if f.WithTag {
		writeTag(buf, entry.Level)
	}
	buf.WriteString(entry.Level.String())
	buf.WriteString(": ")
	buf.WriteString(entry.Message)
	core.AppendFields(buf, entry.Fields)
	writeTrace(buf, entry.Err)
	buf.WriteByte('\n')
}
