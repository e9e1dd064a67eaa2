package benchmark

import (
	"github.com/Philipp01105/logz/core"
	"github.com/Philipp01105/logz/handler"
)

// noopHandler accepts every entry without formatting or writing, to
// measure the logger's own overhead.
type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Handle(e *core.Entry) error {
	_ = len(e.Message)
	return nil
}

func (h *noopHandler) Close() error {
	return nil
}
