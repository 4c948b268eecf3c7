package tlm

import (
	"log"

	"github.com/sarchlab/noctlm/sim"
)

// TransactionLogger is a hook that prints every transaction call an endpoint
// makes or receives. Attach it to any Endpoint.
type TransactionLogger struct {
	sim.LogHookBase
}

// NewTransactionLogger returns a TransactionLogger that writes into the
// logger.
func NewTransactionLogger(logger *log.Logger) *TransactionLogger {
	h := new(TransactionLogger)
	h.Logger = logger
	return h
}

// Func writes the transaction record into the logger.
func (h *TransactionLogger) Func(ctx sim.HookCtx) {
	t, ok := ctx.Item.(Transaction)
	if !ok {
		return
	}

	dir := "send"
	if ctx.Pos == HookPosTLMRecv {
		dir = "recv"
	}

	domain := ctx.Domain.(Endpoint)

	h.Logger.Printf("%.10f, %s, %s, src %s, dest %s, %s, %s",
		ctx.Now, domain.Name(), dir, t.Src, t.Dest, t.Packet, t.Err)
}
