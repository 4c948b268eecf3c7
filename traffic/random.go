package traffic

import (
	"log"

	"github.com/iti/rngstream"

	"github.com/sarchlab/noctlm/noc/protocol"
	"github.com/sarchlab/noctlm/noc/tlm"
	"github.com/sarchlab/noctlm/sim"
)

// RandomSourceConfig shapes a random traffic generator.
type RandomSourceConfig struct {
	// Src is the address stamped into every packet's source field.
	Src int

	// Dests are the candidate destination addresses, picked uniformly. The
	// generator's own address should not be in the list.
	Dests []int

	// MeanPeriod is the average time between injections. Each gap is drawn
	// uniformly from [MeanPeriod/2, 3*MeanPeriod/2).
	MeanPeriod sim.VTime

	// Count is the number of packets to inject.
	Count int
}

// A RandomSource injects packets to random destinations at random intervals.
// Every source draws from its own named random stream, so runs are
// reproducible per name.
type RandomSource struct {
	proto *protocol.Protocol
	cfg   RandomSourceConfig
	rng   *rngstream.RngStream

	injected int
}

// NewRandomSource creates a random source. The name seeds the random stream.
func NewRandomSource(
	name string,
	proto *protocol.Protocol,
	cfg RandomSourceConfig,
) *RandomSource {
	if len(cfg.Dests) == 0 {
		log.Panic("random source needs at least one destination")
	}

	if cfg.MeanPeriod <= 0 {
		log.Panic("random source needs a positive mean period")
	}

	return &RandomSource{
		proto: proto,
		cfg:   cfg,
		rng:   rngstream.New(name),
	}
}

// Injected returns the number of packets handed to the network so far.
func (s *RandomSource) Injected() int {
	return s.injected
}

// Attach registers the random source on an ipcore adapter.
func (s *RandomSource) Attach(core *tlm.IPCoreEngine) {
	core.RegisterGenerator("RandomSource", s.run)
}

func (s *RandomSource) run(proc *sim.Process, din, dout *sim.Signal) {
	for i := 0; i < s.cfg.Count; i++ {
		gap := s.cfg.MeanPeriod/2 +
			sim.VTime(s.rng.RandU01())*s.cfg.MeanPeriod
		proc.Delay(gap)

		dst := s.cfg.Dests[s.rng.RandInt(0, len(s.cfg.Dests)-1)]

		pkt := s.proto.NewPacketWithValues(map[string]int64{
			"src": int64(s.cfg.Src),
			"dst": int64(dst),
		})

		dout.SetNext(pkt)
		s.injected++
	}
}
