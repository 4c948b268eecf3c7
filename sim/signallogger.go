package sim

import (
	"log"
)

// SignalLogger is a hook that prints every committed signal change.
type SignalLogger struct {
	LogHookBase
}

// NewSignalLogger returns a new SignalLogger which will write into the
// logger.
func NewSignalLogger(logger *log.Logger) *SignalLogger {
	h := new(SignalLogger)
	h.Logger = logger
	return h
}

// Func writes the committed signal change into the logger.
func (h *SignalLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosSignalCommit {
		return
	}

	s, ok := ctx.Item.(*Signal)
	if !ok {
		return
	}

	h.Logger.Printf("%.10f, %s, commit %v", ctx.Now, s.Name(), ctx.Detail)
}
