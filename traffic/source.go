// Package traffic provides canned compute-core behaviors: periodic packet
// sources, recording sinks, and random traffic generators. They attach to
// ipcore adapters as generators.
package traffic

import (
	"log"

	"github.com/sarchlab/noctlm/noc/protocol"
	"github.com/sarchlab/noctlm/noc/tlm"
	"github.com/sarchlab/noctlm/sim"
)

// SourceConfig shapes a periodic packet source.
type SourceConfig struct {
	// Src is the address stamped into every packet's source field.
	Src int

	// Dst is the destination address of every packet.
	Dst int

	// Start delays the first injection. Zero injects at time zero.
	Start sim.VTime

	// Period is the time between injections. It must be positive when Count
	// is more than one; back-to-back writes to the injection signal would
	// overwrite each other.
	Period sim.VTime

	// Count is the number of packets to inject.
	Count int

	// Data fills the data field of the i-th packet. Nil leaves it zero.
	Data func(i int) int64
}

// A Source injects a fixed stream of packets through one ipcore.
type Source struct {
	proto *protocol.Protocol
	cfg   SourceConfig

	injected int
}

// NewSource creates a periodic source for packets of the given protocol.
func NewSource(proto *protocol.Protocol, cfg SourceConfig) *Source {
	if cfg.Count > 1 && cfg.Period <= 0 {
		log.Panic("source with more than one packet needs a positive period")
	}

	return &Source{proto: proto, cfg: cfg}
}

// Injected returns the number of packets handed to the network so far.
func (s *Source) Injected() int {
	return s.injected
}

// Attach registers the source on an ipcore adapter.
func (s *Source) Attach(core *tlm.IPCoreEngine) {
	core.RegisterGenerator("Source", s.run)
}

func (s *Source) run(proc *sim.Process, din, dout *sim.Signal) {
	if s.cfg.Start > 0 {
		proc.Delay(s.cfg.Start)
	}

	for i := 0; i < s.cfg.Count; i++ {
		if i > 0 {
			proc.Delay(s.cfg.Period)
		}

		var data int64
		if s.cfg.Data != nil {
			data = s.cfg.Data(i)
		}

		pkt := s.proto.NewPacketWithValues(map[string]int64{
			"src":  int64(s.cfg.Src),
			"dst":  int64(s.cfg.Dst),
			"data": data,
		})

		dout.SetNext(pkt)
		s.injected++
	}
}
