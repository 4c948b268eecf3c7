package tlm

import (
	"sort"

	"github.com/sarchlab/noctlm/noc"
	"github.com/sarchlab/noctlm/noc/protocol"
	"github.com/sarchlab/noctlm/noc/routing"
	"github.com/sarchlab/noctlm/sim"
	"github.com/sarchlab/noctlm/tracing"
)

// RouterConfig holds the fixed parameters of a router. All delays are
// abstract virtual-time units.
type RouterConfig struct {
	// FIFOLen bounds every input and output FIFO of the router.
	FIFOLen int

	// RoutingDelay is the cost of one routing decision.
	RoutingDelay sim.VTime

	// ForwardDelay is the cost of moving a packet from an output FIFO to
	// the wire.
	ForwardDelay sim.VTime
}

// DefaultRouterConfig returns the stock router parameters.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		FIFOLen:      4,
		RoutingDelay: 5,
		ForwardDelay: 2,
	}
}

// A RouterEngine is the store-and-forward engine of one router. It owns one
// port per neighbor plus the local ipcore port, and contributes two
// processes: the routing process, which drains input FIFOs and places
// packets on the output FIFO toward their next hop, and the flush process,
// which moves packets from output FIFOs onto the wire.
type RouterEngine struct {
	tlmBase

	network *noc.Network
	desc    *noc.Router
	cfg     RouterConfig
	table   *routing.Table

	ports     map[int]*Port
	portAddrs []int
	inEvents  []*sim.Signal
	outEvents []*sim.Signal
}

func newRouterEngine(
	engine sim.Engine,
	network *noc.Network,
	desc *noc.Router,
	cfg RouterConfig,
	table *routing.Table,
) *RouterEngine {
	r := &RouterEngine{
		network: network,
		desc:    desc,
		cfg:     cfg,
		table:   table,
		ports:   make(map[int]*Port),
	}
	r.ComponentBase = sim.NewComponentBase(engine, desc.Name)

	return r
}

// Address returns the router's address.
func (r *RouterEngine) Address() int {
	return r.desc.Address
}

// Port returns the port keyed by the given neighbor address. The router's
// own address keys the local ipcore port.
func (r *RouterEngine) Port(addr int) (*Port, bool) {
	p, found := r.ports[addr]
	return p, found
}

// Buffers returns every FIFO of the router, for the monitor.
func (r *RouterEngine) Buffers() []sim.Buffer {
	buffers := make([]sim.Buffer, 0, 2*len(r.portAddrs))
	for _, addr := range r.portAddrs {
		buffers = append(buffers, r.ports[addr].FIFOIn, r.ports[addr].FIFOOut)
	}

	return buffers
}

// addPort wires one neighbor connection. The system builder calls it once
// per channel of the router, then finalizePorts.
func (r *RouterEngine) addPort(addr int, ch *ChannelEngine) {
	if _, taken := r.ports[addr]; taken {
		panic("two neighbors of " + r.Name() + " share one address")
	}

	r.ports[addr] = newPort(r.Engine(), r.Name(), addr, ch, r.cfg.FIFOLen)
}

// finalizePorts freezes the port scan order. Ports are always scanned in
// ascending address order so runs are reproducible.
func (r *RouterEngine) finalizePorts() {
	r.portAddrs = r.portAddrs[:0]
	for addr := range r.ports {
		r.portAddrs = append(r.portAddrs, addr)
	}
	sort.Ints(r.portAddrs)

	r.inEvents = r.inEvents[:0]
	r.outEvents = r.outEvents[:0]
	for _, addr := range r.portAddrs {
		r.inEvents = append(r.inEvents, r.ports[addr].InEvent)
		r.outEvents = append(r.outEvents, r.ports[addr].OutEvent)
	}
}

// RegisterProcesses adds the routing process and the flush process.
func (r *RouterEngine) RegisterProcesses() {
	r.Engine().AddProcess(r.Name()+".Routing", r.routingLoop)
	r.Engine().AddProcess(r.Name()+".Flush", r.flushLoop)
}

// routingLoop drains input FIFOs in port order, looks up the preferred next
// hop for each packet, and moves the packet to the output FIFO toward that
// hop after the routing delay.
func (r *RouterEngine) routingLoop(proc *sim.Process) {
	for {
		for _, addr := range r.portAddrs {
			port := r.ports[addr]

			for port.FIFOIn.Size() > 0 {
				if !port.InEvent.Bool() {
					r.Logf("routing, port %d fifo not empty without trigger",
						addr)
				}

				pkt := port.FIFOIn.Pop().(*protocol.Packet)
				if port.FIFOIn.Size() == 0 {
					port.InEvent.SetNext(false)
				}

				r.routePacket(proc, addr, pkt)
			}
		}

		// A packet that arrived on an already-scanned port during a routing
		// delay left its in event committed true; no commit will wake this
		// process for it. Rescan until a full pass finds every input empty.
		if r.inFIFOsPending() {
			continue
		}

		proc.Wait(r.inEvents...)
	}
}

func (r *RouterEngine) inFIFOsPending() bool {
	for _, addr := range r.portAddrs {
		if r.ports[addr].FIFOIn.Size() > 0 {
			return true
		}
	}

	return false
}

func (r *RouterEngine) routePacket(
	proc *sim.Process,
	inPort int,
	pkt *protocol.Packet,
) {
	dst := pkt.Dst()

	next, found := r.table.NextHop(dst)
	if !found {
		r.Logf("routing, no route from port %d to dst %d, packet %s dropped",
			inPort, dst, pkt)
		return
	}

	out, found := r.ports[next]
	if !found {
		r.Logf("routing, next hop %d of dst %d has no port", next, dst)
		return
	}

	proc.Delay(r.cfg.RoutingDelay)

	out.FIFOOut.Push(pkt)
	if out.OutEvent.Bool() {
		r.Logf("routing, possible missed event, port %d out event already set",
			next)
	}
	out.OutEvent.SetNext(true)

	tracing.AddTaskStep(pkt.ID, r, "route")
}

// flushLoop moves packets from output FIFOs onto the wire. A packet the
// downstream refuses goes back to the front of the same FIFO, so
// backpressure never drops packets; it can stall a port until the
// downstream drains.
func (r *RouterEngine) flushLoop(proc *sim.Process) {
	for {
		stalled := false

		for _, addr := range r.portAddrs {
			port := r.ports[addr]

			for port.FIFOOut.Size() > 0 {
				if !port.OutEvent.Bool() {
					r.Logf("flush, port %d fifo not empty without trigger",
						addr)
				}

				pkt := port.FIFOOut.Pop().(*protocol.Packet)

				proc.Delay(r.cfg.ForwardDelay)

				err := r.Send(r, port.Channel, pkt, nil)
				if err != ErrNone {
					r.Logf("flush, port %d failed with %s, packet back to fifo",
						addr, err)
					port.FIFOOut.PushFront(pkt)
					stalled = true
					break
				}

				if port.FIFOOut.Size() == 0 {
					port.OutEvent.SetNext(false)
				}
			}
		}

		// A refused packet sits at the front of its FIFO with the out event
		// still raised, so no further commit will wake this process. Poll
		// until the downstream drains.
		if stalled {
			proc.Delay(r.cfg.ForwardDelay)
			continue
		}

		// A packet that landed on an already-scanned port during a forward
		// delay has the same committed-true out event; rescan until a full
		// pass finds every output empty.
		if r.outFIFOsPending() {
			continue
		}

		proc.Wait(r.outEvents...)
	}
}

func (r *RouterEngine) outFIFOsPending() bool {
	for _, addr := range r.portAddrs {
		if r.ports[addr].FIFOOut.Size() > 0 {
			return true
		}
	}

	return false
}

// Recv accepts a packet from a channel into the input FIFO of the port the
// packet arrived on. It never blocks: a full FIFO refuses the packet with
// ErrFullFIFO and the FIFO is left untouched.
func (r *RouterEngine) Recv(
	src, dest any,
	pkt *protocol.Packet,
	attrs map[string]any,
) ErrCode {
	err := r.doRecv(src, pkt)
	r.transact(r, HookPosTLMRecv, src, r, pkt, err)

	return err
}

func (r *RouterEngine) doRecv(src any, pkt *protocol.Packet) ErrCode {
	if pkt == nil || !pkt.Protocol().HasRoutingFields() {
		return ErrBadPacket
	}

	srcAddr, err := r.resolveSrcAddr(src)
	if err != ErrNone {
		return err
	}

	port, found := r.ports[srcAddr]
	if !found {
		r.Logf("recv, src addr %d has no port", srcAddr)
		return ErrBadCallRecv
	}

	if port.FIFOIn.Size() == r.cfg.FIFOLen {
		return ErrFullFIFO
	}

	port.FIFOIn.Push(pkt)
	if port.InEvent.Bool() {
		r.Logf("recv, possible missed event, port %d in event already set",
			srcAddr)
	}
	port.InEvent.SetNext(true)

	return ErrNone
}

// resolveSrcAddr maps a transaction source to the port address it arrived
// on. A channel source resolves to its endpoint opposite this router; an
// ipcore on the other end resolves to the router's own address.
func (r *RouterEngine) resolveSrcAddr(src any) (int, ErrCode) {
	switch s := src.(type) {
	case int:
		return s, ErrNone
	case *RouterEngine:
		return s.Address(), ErrNone
	case *ChannelEngine:
		opposite, found := s.Opposite(r)
		if !found {
			r.Logf("recv, channel %s does not reach this router", s.Name())
			return 0, ErrBadCallRecv
		}

		switch o := opposite.(type) {
		case *RouterEngine:
			return o.Address(), ErrNone
		case *IPCoreEngine:
			return r.desc.Address, ErrNone
		default:
			r.Logf("recv, unknown endpoint kind on channel %s", s.Name())
			return 0, ErrBadCallRecv
		}
	default:
		r.Logf("recv, unresolvable src %s", partyName(src))
		return 0, ErrBadCallRecv
	}
}

// Send resolves dest to a channel and hands the packet to that channel's
// Recv. It is invoked only by the router's own flush process.
func (r *RouterEngine) Send(
	src, dest any,
	pkt *protocol.Packet,
	attrs map[string]any,
) ErrCode {
	ch, err := r.resolveDestChannel(dest)
	if err == ErrNone {
		err = ch.Recv(r, ch, pkt, attrs)
	}

	r.transact(r, HookPosTLMSend, r, dest, pkt, err)

	return err
}

func (r *RouterEngine) resolveDestChannel(dest any) (*ChannelEngine, ErrCode) {
	switch d := dest.(type) {
	case int:
		port, found := r.ports[d]
		if !found {
			r.Logf("send, dest addr %d has no port", d)
			return nil, ErrBadCallSend
		}
		return port.Channel, ErrNone
	case *RouterEngine:
		port, found := r.ports[d.Address()]
		if !found {
			r.Logf("send, dest router %s is not a neighbor", d.Name())
			return nil, ErrBadCallSend
		}
		return port.Channel, ErrNone
	case *ChannelEngine:
		return d, ErrNone
	default:
		r.Logf("send, unresolvable dest %s", partyName(dest))
		return nil, ErrBadCallSend
	}
}
