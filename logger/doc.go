// Package logger is the logging API handed out by the router package.
//
// A Logger is immutable after construction. The name, level, fields and
// handler are set once via the Builder and never modified, so a Logger
// is safe for concurrent use without locking on the read path.
//
//	log := logger.NewBuilder().
//	    WithHandler(h).
//	    WithLevel(logger.DebugLevel).
//	    Build()
//
// Every logging method returns the write error of the handler, so a
// full disk or closed file reaches the caller instead of being dropped.
//
// Child loggers are derived with With (extra fields) and Named (dotted
// names). Children of the root logger take the bare name:
//
//	db := log.Named("db")          // "db"
//	pool := db.Named("pool")       // "db.pool"
//
// Exception logs at ERROR with an error attached; alert sinks print the
// error with %+v, which includes stack traces recorded by
// github.com/pkg/errors.
//
// Level checks happen before any allocation, so filtered-out
// messages cost only a single integer comparison.
package logger
