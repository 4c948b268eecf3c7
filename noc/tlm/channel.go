package tlm

import (
	"github.com/sarchlab/noctlm/noc"
	"github.com/sarchlab/noctlm/noc/protocol"
	"github.com/sarchlab/noctlm/sim"
)

// ChannelConfig holds the fixed parameters of a channel.
type ChannelConfig struct {
	// Delay is the transmission delay of the wire. Zero makes the channel
	// a stateless pass-through relay.
	Delay sim.VTime
}

// timedPacket is one in-flight packet of a delayed channel, stamped with
// the virtual time it is due on the far end.
type timedPacket struct {
	dueAt sim.VTime
	dest  Endpoint
	pkt   *protocol.Packet
	attrs map[string]any
}

// A ChannelEngine relays transactions between its two endpoints. It owns no
// queue in the zero-delay case; with a transmission delay it holds packets
// in a relay queue until they are due.
type ChannelEngine struct {
	tlmBase

	desc *noc.Channel
	cfg  ChannelConfig
	ends [2]Endpoint

	relay      []timedPacket
	relayEvent *sim.Signal
}

func newChannelEngine(
	engine sim.Engine,
	desc *noc.Channel,
	cfg ChannelConfig,
) *ChannelEngine {
	c := &ChannelEngine{
		desc: desc,
		cfg:  cfg,
	}
	c.ComponentBase = sim.NewComponentBase(engine, desc.Name)

	if cfg.Delay > 0 {
		c.relayEvent = engine.NewSignal(desc.Name+".RelayEvent", false)
	}

	return c
}

// connect wires the two endpoints. The system builder calls it once.
func (c *ChannelEngine) connect(a, b Endpoint) {
	c.ends[0] = a
	c.ends[1] = b
}

// Ends returns the two endpoints of the channel.
func (c *ChannelEngine) Ends() [2]Endpoint {
	return c.ends
}

// Opposite returns the endpoint on the other side of e.
func (c *ChannelEngine) Opposite(e Endpoint) (Endpoint, bool) {
	if c.ends[0] == e {
		return c.ends[1], true
	}

	if c.ends[1] == e {
		return c.ends[0], true
	}

	return nil, false
}

// RegisterProcesses adds the relay process of a delayed channel. A
// zero-delay channel contributes no process.
func (c *ChannelEngine) RegisterProcesses() {
	if c.cfg.Delay > 0 {
		c.Engine().AddProcess(c.Name()+".Relay", c.relayLoop)
	}
}

// relayLoop delivers queued packets once their transmission delay elapsed.
func (c *ChannelEngine) relayLoop(proc *sim.Process) {
	for {
		for len(c.relay) > 0 {
			tp := c.relay[0]
			c.relay = c.relay[1:]

			if residual := tp.dueAt - proc.Now(); residual > 0 {
				proc.Delay(residual)
			}

			err := c.Send(c, tp.dest, tp.pkt, tp.attrs)
			if err != ErrNone {
				c.Logf("relay, delivery failed with %s", err)
			}
		}

		c.relayEvent.SetNext(false)

		// Sleep until the event rises again; the self-inflicted falling
		// commit must not count as a wake-up.
		for {
			proc.Wait(c.relayEvent)
			if c.relayEvent.Bool() {
				break
			}
		}
	}
}

// Recv takes a packet from one endpoint and relays it to the opposite one,
// immediately or, on a delayed channel, once the transmission delay
// elapsed.
func (c *ChannelEngine) Recv(
	src, dest any,
	pkt *protocol.Packet,
	attrs map[string]any,
) ErrCode {
	srcEnd, err := c.resolveEnd(src, ErrBadCallRecv)
	if err == ErrNone {
		opposite, _ := c.Opposite(srcEnd)

		if c.cfg.Delay > 0 {
			c.relay = append(c.relay, timedPacket{
				dueAt: c.Engine().CurrentTime() + c.cfg.Delay,
				dest:  opposite,
				pkt:   pkt,
				attrs: attrs,
			})
			c.relayEvent.SetNext(true)
		} else {
			err = c.Send(c, opposite, pkt, attrs)
		}
	}

	c.transact(c, HookPosTLMRecv, src, c, pkt, err)

	return err
}

// Send delivers a packet to one of the channel's endpoints. It is invoked
// by Recv on a zero-delay channel and by the relay process otherwise.
func (c *ChannelEngine) Send(
	src, dest any,
	pkt *protocol.Packet,
	attrs map[string]any,
) ErrCode {
	destEnd, err := c.resolveEnd(dest, ErrBadCallSend)
	if err == ErrNone {
		err = destEnd.Recv(c, destEnd, pkt, attrs)
	}

	c.transact(c, HookPosTLMSend, c, dest, pkt, err)

	return err
}

// resolveEnd maps a transaction party to one of the channel's endpoints.
// Addresses match a router endpoint with that address.
func (c *ChannelEngine) resolveEnd(party any, badCall ErrCode) (Endpoint, ErrCode) {
	switch p := party.(type) {
	case int:
		for _, end := range c.ends {
			if r, ok := end.(*RouterEngine); ok && r.Address() == p {
				return end, ErrNone
			}
		}
		c.Logf("addr %d is not an endpoint of this channel", p)
		return nil, badCall
	case Endpoint:
		if c.ends[0] == p || c.ends[1] == p {
			return p, ErrNone
		}
		c.Logf("%s is not an endpoint of this channel", p.Name())
		return nil, badCall
	default:
		c.Logf("unresolvable party %s", partyName(party))
		return nil, badCall
	}
}
