package tlm

import (
	"fmt"

	"github.com/sarchlab/noctlm/noc/protocol"
	"github.com/sarchlab/noctlm/sim"
)

// An Endpoint is any simulated entity that takes part in transactions:
// routers, channels, and ipcores. The engines hold each other through this
// interface, never by concrete type.
//
// Send is invoked only by the endpoint's own processes when a packet is
// ready to move. Recv is invoked only by a peer's Send and must never block:
// when it cannot accept the packet now it returns an error and the packet
// remains the caller's responsibility. Both calls complete within one
// virtual-time instant.
//
// src and dest name the transaction parties: an address (int), or another
// Endpoint. Unresolvable parties yield ErrBadCallSend or ErrBadCallRecv.
type Endpoint interface {
	sim.Named
	sim.Hookable

	Send(src, dest any, pkt *protocol.Packet, attrs map[string]any) ErrCode
	Recv(src, dest any, pkt *protocol.Packet, attrs map[string]any) ErrCode

	// RegisterProcesses adds the endpoint's processes to its engine. The
	// simulation calls it exactly once per endpoint, before Run.
	RegisterProcesses()
}

// HookPosTLMSend triggers after every Send call, successful or not.
var HookPosTLMSend = &sim.HookPos{Name: "TLMSend"}

// HookPosTLMRecv triggers after every Recv call, successful or not.
var HookPosTLMRecv = &sim.HookPos{Name: "TLMRecv"}

// A Transaction is the diagnostic record that accompanies every transaction
// call. It is a side channel: hooks observing it must never influence
// control flow.
type Transaction struct {
	Src    string
	Dest   string
	Packet *protocol.Packet
	Err    ErrCode
}

// tlmBase carries the component plumbing shared by all endpoint engines.
type tlmBase struct {
	*sim.ComponentBase
}

// transact emits the one diagnostic record that accompanies a transaction
// call: a log line on the endpoint's sink and one hook invocation.
func (b *tlmBase) transact(
	domain Endpoint,
	pos *sim.HookPos,
	src, dest any,
	pkt *protocol.Packet,
	err ErrCode,
) {
	b.Logf("%s, src %s, dest %s, %s, %s",
		pos.Name, partyName(src), partyName(dest), pkt, err)

	if b.NumHooks() > 0 {
		b.InvokeHook(sim.HookCtx{
			Domain: domain,
			Now:    b.Engine().CurrentTime(),
			Pos:    pos,
			Item: Transaction{
				Src:    partyName(src),
				Dest:   partyName(dest),
				Packet: pkt,
				Err:    err,
			},
		})
	}
}

// partyName renders a transaction party for diagnostics.
func partyName(party any) string {
	switch p := party.(type) {
	case nil:
		return "nil"
	case int:
		return fmt.Sprintf("addr %d", p)
	case sim.Named:
		return p.Name()
	default:
		return fmt.Sprintf("%v", p)
	}
}
