package traffic

import (
	"github.com/sarchlab/noctlm/noc/protocol"
	"github.com/sarchlab/noctlm/noc/tlm"
	"github.com/sarchlab/noctlm/sim"
)

// An Arrival is one packet delivery observed by a sink.
type Arrival struct {
	Time   sim.VTime
	Packet *protocol.Packet
}

// A Sink records every packet delivered to one ipcore. With a positive
// expectation it terminates the simulation once that many packets arrived,
// so a run ends as soon as all traffic is accounted for.
type Sink struct {
	expect    int
	collector *Collector
	arrivals  []Arrival
}

// NewSink creates a sink that terminates the simulation after expect
// deliveries. Zero records forever.
func NewSink(expect int) *Sink {
	return &Sink{expect: expect}
}

// A Collector aggregates deliveries across several sinks and terminates the
// simulation once the expected total arrived, wherever the packets land.
type Collector struct {
	expect int
	total  int
}

// NewCollector creates a collector expecting the given total of deliveries.
func NewCollector(expect int) *Collector {
	return &Collector{expect: expect}
}

// Total returns the number of deliveries seen by all attached sinks.
func (c *Collector) Total() int {
	return c.total
}

// NewSink creates a sink that reports into this collector.
func (c *Collector) NewSink() *Sink {
	return &Sink{collector: c}
}

// Arrivals returns the recorded deliveries in arrival order.
func (s *Sink) Arrivals() []Arrival {
	return s.arrivals
}

// Attach registers the sink on an ipcore adapter.
func (s *Sink) Attach(core *tlm.IPCoreEngine) {
	core.RegisterGenerator("Sink", s.run)
}

func (s *Sink) run(proc *sim.Process, din, dout *sim.Signal) {
	for {
		proc.Wait(din)

		pkt, ok := din.Value().(*protocol.Packet)
		if !ok || pkt == nil {
			continue
		}

		s.arrivals = append(s.arrivals, Arrival{
			Time:   proc.Now(),
			Packet: pkt,
		})

		if s.collector != nil {
			s.collector.total++
			if s.collector.total >= s.collector.expect {
				proc.Engine().Terminate()
				return
			}
		}

		if s.expect > 0 && len(s.arrivals) >= s.expect {
			proc.Engine().Terminate()
			return
		}
	}
}
