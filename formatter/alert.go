package formatter

import (
	"bytes"
	"strconv"

	"github.com/Philipp01105/logz/core"
)

// AlertFormatter renders the multi-line diagnostic block used by the
// alert tier:
//
//	[TAG] MESSAGE key=value
//	TIMESTAMP - LOGGER - LEVEL
//	goroutine N → PROCESS[PID]
//	/path/to/file.go
//	→ package → function @ line
//	error trace, when attached
type AlertFormatter struct {
	Config
}

// NewAlertFormatter creates a new alert formatter
func NewAlertFormatter(cfg Config) *AlertFormatter {
	return &AlertFormatter{Config: cfg.withDefaults()}
}

// Format formats an entry as a diagnostic block
func (f *AlertFormatter) Format(entry *core.Entry) ([]byte, error) {
	return format(entry, f.FormatEntry), nil
}

// FormatEntry formats an entry into buf (implements BufferFormatter).
func (f *AlertFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	buf.WriteByte('\n')
	if f.WithTag {
		writeTag(buf, entry.Level)
	}
	buf.WriteString(entry.Message)
	core.AppendFields(buf, entry.Fields)
	buf.WriteByte('\n')

	writeTimestamp(buf, entry, f.TimestampFormat)
	buf.WriteString(" - ")
	buf.WriteString(entry.Logger)
	buf.WriteString(" - ")
	buf.WriteString(entry.Level.String())
	buf.WriteByte('\n')

	buf.WriteString("goroutine ")
	buf.Write(strconv.AppendUint(buf.AvailableBuffer(), entry.Origin.Goroutine, 10))
	buf.WriteString(" → ")
	buf.WriteString(entry.Origin.Process)
	buf.WriteByte('[')
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Origin.PID), 10))
	buf.WriteString("]\n")

	if entry.Caller.Defined {
		buf.WriteString(entry.Caller.File)
		buf.WriteString("\n→ ")
		buf.WriteString(entry.Caller.Package)
		buf.WriteString(" → ")
		buf.WriteString(entry.Caller.Function)
		buf.WriteString(" @ ")
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Caller.Line), 10))
	} else {
		buf.WriteString("?\n→ ? → ? @ 0")
	}

	writeTrace(buf, entry.Err)
	buf.WriteByte('\n')
}
