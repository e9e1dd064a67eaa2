package handler

import (
	"go.uber.org/multierr"

	"github.com/Philipp01105/logz/core"
)

// MultiHandler sends log entries to multiple handlers
type MultiHandler struct {
	handlers []Handler
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Handle sends the entry to every handler. A failing handler does not
// stop delivery to the rest; all failures are combined.
func (h *MultiHandler) Handle(entry *core.Entry) error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Handle(entry))
	}
	return err
}

// Handlers returns the child handlers in dispatch order.
func (h *MultiHandler) Handlers() []Handler {
	return h.handlers
}

// Len returns the number of child handlers.
func (h *MultiHandler) Len() int {
	return len(h.handlers)
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Close())
	}
	return err
}
