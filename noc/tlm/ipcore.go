package tlm

import (
	"github.com/sarchlab/noctlm/noc"
	"github.com/sarchlab/noctlm/noc/protocol"
	"github.com/sarchlab/noctlm/sim"
	"github.com/sarchlab/noctlm/tracing"
)

// IPCoreConfig holds the fixed parameters of an ipcore adapter.
type IPCoreConfig struct {
	// LocalBusDelay is the cost of moving a packet over the local bus
	// between the compute core and its channel.
	LocalBusDelay sim.VTime
}

// DefaultIPCoreConfig returns the stock ipcore parameters.
func DefaultIPCoreConfig() IPCoreConfig {
	return IPCoreConfig{LocalBusDelay: 1}
}

// A GeneratorFunc is the body of an external compute-core process. It
// receives the adapter's two packet signals: din carries packets delivered
// to the core, dout is where the core places packets to inject into the
// network.
type GeneratorFunc func(proc *sim.Process, din, dout *sim.Signal)

type generator struct {
	name string
	fn   GeneratorFunc
}

// An IPCoreEngine bridges a compute core to the network. Its Outgoing
// signal injects packets toward the local channel; its Incoming signal
// carries delivered packets to whatever generators the core registered.
type IPCoreEngine struct {
	tlmBase

	desc    *noc.IPCore
	cfg     IPCoreConfig
	localch *ChannelEngine

	Incoming *sim.Signal
	Outgoing *sim.Signal

	generators []generator
}

func newIPCoreEngine(
	engine sim.Engine,
	desc *noc.IPCore,
	cfg IPCoreConfig,
) *IPCoreEngine {
	c := &IPCoreEngine{
		desc: desc,
		cfg:  cfg,
	}
	c.ComponentBase = sim.NewComponentBase(engine, desc.Name)

	c.Incoming = engine.NewSignal(desc.Name+".Incoming", (*protocol.Packet)(nil))
	c.Outgoing = engine.NewSignal(desc.Name+".Outgoing", (*protocol.Packet)(nil))

	return c
}

// connect wires the local channel. The system builder calls it once.
func (c *IPCoreEngine) connect(localch *ChannelEngine) {
	c.localch = localch
}

// LocalChannel returns the channel between the ipcore and its router.
func (c *IPCoreEngine) LocalChannel() *ChannelEngine {
	return c.localch
}

// RegisterGenerator attaches an external compute-core process to the
// adapter's signals. Registered generators become kernel processes when
// the simulation is configured.
func (c *IPCoreEngine) RegisterGenerator(name string, fn GeneratorFunc) {
	c.generators = append(c.generators, generator{name: name, fn: fn})
}

// RegisterProcesses adds the outgoing process plus every registered
// generator.
func (c *IPCoreEngine) RegisterProcesses() {
	c.Engine().AddProcess(c.Name()+".Outgoing", c.outgoingLoop)

	for _, g := range c.generators {
		fn := g.fn
		c.Engine().AddProcess(c.Name()+"."+g.name, func(proc *sim.Process) {
			fn(proc, c.Incoming, c.Outgoing)
		})
	}
}

// outgoingLoop pushes every packet the core places on the Outgoing signal
// over the local bus into the network.
func (c *IPCoreEngine) outgoingLoop(proc *sim.Process) {
	for {
		proc.Wait(c.Outgoing)

		pkt, ok := c.Outgoing.Value().(*protocol.Packet)
		if !ok || pkt == nil {
			continue
		}

		tracing.StartTask(pkt.ID, "", c, "packet", "transit", pkt)

		if c.cfg.LocalBusDelay > 0 {
			proc.Delay(c.cfg.LocalBusDelay)
		}

		retval := c.Send(c, c.localch, pkt, nil)
		if retval != ErrNone {
			c.Logf("outgoing, injection failed with %s", retval)
		}
	}
}

// Recv delivers a packet to the compute core by updating the Incoming
// signal. The attached generators are responsible for consuming it.
func (c *IPCoreEngine) Recv(
	src, dest any,
	pkt *protocol.Packet,
	attrs map[string]any,
) ErrCode {
	if pkt == nil {
		c.transact(c, HookPosTLMRecv, src, c, pkt, ErrBadPacket)
		return ErrBadPacket
	}

	if prev, ok := c.Incoming.Value().(*protocol.Packet); ok && prev == pkt {
		c.Logf("recv, possible missed event, incoming already carries %s", pkt)
	}

	c.Incoming.SetNext(pkt)

	tracing.EndTask(pkt.ID, c)

	c.transact(c, HookPosTLMRecv, src, c, pkt, ErrNone)

	return ErrNone
}

// Send hands a packet to the local channel. It is invoked only by the
// adapter's own outgoing process.
func (c *IPCoreEngine) Send(
	src, dest any,
	pkt *protocol.Packet,
	attrs map[string]any,
) ErrCode {
	err := c.localch.Recv(c, c.localch, pkt, attrs)

	c.transact(c, HookPosTLMSend, c, dest, pkt, err)

	return err
}
