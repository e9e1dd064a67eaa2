// Package router configures where log records go.
//
// A Router owns one logger and the sinks behind it. Records are split
// into two tiers: informational (DEBUG, INFO) and alert (WARNING and
// above). Alerts always reach the console as a multi-line block with
// goroutine, process and call site. Informational records go to the
// console when no file is configured, and only to the file otherwise.
// File records carry a level tag.
//
//	r, _ := router.New()
//	err := r.Run(router.Target{Dir: "logs"}, os.Args[0], func(log *logger.Logger) error {
//	    return log.Info("working")
//	})
//
// Run writes a start banner, runs the body, logs an escaping error or
// panic, and always writes the ending banner. Write failures are
// returned, never dropped.
package router
