package core

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Entry represents a log entry with all its metadata
type Entry struct {
	Time    time.Time
	Logger  string
	Level   Level
	Message string
	Fields  []Field
	Caller  CallerInfo
	Origin  Origin
	Err     error
}

// CallerInfo contains information about the caller
type CallerInfo struct {
	File      string
	ShortFile string
	Package   string
	Function  string
	Line      int
	Defined   bool
}

// Origin identifies the goroutine and process that emitted an entry.
type Origin struct {
	Goroutine uint64
	Process   string
	PID       int
}

// entryPool is a pool of Entry objects to reduce allocations
var entryPool = sync.Pool{
	New: func() interface{} {
		return &Entry{
			Fields: make([]Field, 0, 8), // Pre-allocate for 8 fields
		}
	},
}

// GetEntry retrieves an Entry from the pool
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.Time = time.Now()
	e.Fields = e.Fields[:0]
	e.Caller = CallerInfo{}
	e.Origin = Origin{}
	return e
}

// PutEntry returns an Entry to the pool
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	// Re-slice to zero length; GC handles reference cleanup
	e.Fields = e.Fields[:0]
	e.Message = ""
	e.Logger = ""
	e.Err = nil
	e.Caller = CallerInfo{}
	e.Origin = Origin{}
	entryPool.Put(e)
}

// GetCaller retrieves caller information
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallerInfo{}
	}

	var name string
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
	}
	return CallerFromFrame(name, file, line)
}

// CallerFromFrame builds CallerInfo from a fully qualified function name
// and source position, as reported by runtime.Frame.
func CallerFromFrame(function, file string, line int) CallerInfo {
	pkg, funcName := splitFuncName(function)
	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Package:   pkg,
		Function:  funcName,
		Line:      line,
		Defined:   true,
	}
}

// splitFuncName splits "github.com/a/b.(*T).M" into "b" and "(*T).M".
func splitFuncName(full string) (pkg, fn string) {
	slash := strings.LastIndexByte(full, '/')
	rest := full[slash+1:]
	dot := strings.IndexByte(rest, '.')
	if dot < 0 {
		return rest, ""
	}
	return rest[:dot], rest[dot+1:]
}

var (
	processName = filepath.Base(os.Args[0])
	processID   = os.Getpid()
)

// GetOrigin returns the origin of the calling goroutine.
func GetOrigin() Origin {
	return Origin{
		Goroutine: goroutineID(),
		Process:   processName,
		PID:       processID,
	}
}

var goroutinePrefix = []byte("goroutine ")

// goroutineID parses the id from the first line of runtime.Stack output.
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
