package sim

import (
	"log"
)

// ProcessLogger is a hook that prints process scheduling information.
type ProcessLogger struct {
	LogHookBase
}

// NewProcessLogger returns a new ProcessLogger which will write into the
// logger.
func NewProcessLogger(logger *log.Logger) *ProcessLogger {
	h := new(ProcessLogger)
	h.Logger = logger
	return h
}

// Func writes the process scheduling information into the logger.
func (h *ProcessLogger) Func(ctx HookCtx) {
	p, ok := ctx.Item.(*Process)
	if !ok {
		return
	}

	switch ctx.Pos {
	case HookPosProcessResume:
		h.Logger.Printf("%.10f, %s, resume", ctx.Now, p.Name())
	case HookPosProcessSuspend:
		h.Logger.Printf("%.10f, %s, suspend on %s", ctx.Now, p.Name(),
			ctx.Detail)
	case HookPosProcessTerminate:
		h.Logger.Printf("%.10f, %s, terminate", ctx.Now, p.Name())
	}
}
