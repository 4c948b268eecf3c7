package tlm

import (
	"fmt"

	"github.com/sarchlab/noctlm/sim"
)

// A Port is one neighbor connection of a router: the channel toward the
// peer, a bounded input FIFO, a bounded output FIFO, and one "data arrived"
// signal per FIFO direction. Ports are keyed by the peer's address; the
// router's own address keys the port toward its local ipcore, so routers,
// ipcores, and neighbors share one address namespace.
type Port struct {
	Addr    int
	Channel *ChannelEngine

	FIFOIn  sim.Buffer
	FIFOOut sim.Buffer

	InEvent  *sim.Signal
	OutEvent *sim.Signal
}

func newPort(
	engine sim.Engine,
	routerName string,
	addr int,
	ch *ChannelEngine,
	fifoLen int,
) *Port {
	name := fmt.Sprintf("%s.Port[%d]", routerName, addr)

	return &Port{
		Addr:     addr,
		Channel:  ch,
		FIFOIn:   sim.NewBuffer(name+".FIFOIn", fifoLen),
		FIFOOut:  sim.NewBuffer(name+".FIFOOut", fifoLen),
		InEvent:  engine.NewSignal(name+".InEvent", false),
		OutEvent: engine.NewSignal(name+".OutEvent", false),
	}
}
