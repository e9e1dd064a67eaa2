// Package consolehandler provides console sinks that write formatted
// records to a stream (default: os.Stderr).
//
// NewInfoHandler and NewAlertHandler build the two console tiers the
// router attaches; both omit the level tag. Pass the same Destination to
// both so their records share one write lock.
package consolehandler
