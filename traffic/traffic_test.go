package traffic_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/noctlm/noc"
	"github.com/sarchlab/noctlm/noc/protocol"
	"github.com/sarchlab/noctlm/noc/tlm"
	"github.com/sarchlab/noctlm/sim"
	"github.com/sarchlab/noctlm/traffic"
)

func meshSystem(engine sim.Engine, width, height int) (*noc.Network, *tlm.System) {
	net := noc.GenerateMesh(noc.MeshConfig{
		Name:        "Mesh",
		Width:       width,
		Height:      height,
		WithIPCores: true,
	}, protocol.NewBasicProtocol())

	system := tlm.MakeSystemBuilder().
		WithEngine(engine).
		WithNetwork(net).
		Build()

	return net, system
}

var _ = Describe("Source and Sink", func() {
	It("should deliver a periodic stream in order", func() {
		engine := sim.NewSerialEngine()
		net, system := meshSystem(engine, 2, 2)

		source := traffic.NewSource(net.Protocol(), traffic.SourceConfig{
			Src:    0,
			Dst:    3,
			Period: 30,
			Count:  3,
			Data:   func(i int) int64 { return int64(i) },
		})
		core0, _ := system.IPCoreAt(0)
		source.Attach(core0)

		sink := traffic.NewSink(3)
		core3, _ := system.IPCoreAt(3)
		sink.Attach(core3)

		for _, e := range system.Endpoints() {
			e.RegisterProcesses()
		}

		Expect(engine.Run()).To(Succeed())
		Expect(source.Injected()).To(Equal(3))

		arrivals := sink.Arrivals()
		Expect(arrivals).To(HaveLen(3))

		// Each packet needs local bus (1) plus three hops of routing (5)
		// and forward (2); the stream is injected every 30 time units.
		Expect(arrivals[0].Time).To(Equal(sim.VTime(22)))
		Expect(arrivals[1].Time).To(Equal(sim.VTime(52)))
		Expect(arrivals[2].Time).To(Equal(sim.VTime(82)))

		for i, a := range arrivals {
			Expect(a.Packet.MustGet("data")).To(Equal(int64(i)))
			Expect(a.Packet.Src()).To(Equal(0))
			Expect(a.Packet.Dst()).To(Equal(3))
		}
	})

	It("should delay the first injection by the start offset", func() {
		engine := sim.NewSerialEngine()
		net, system := meshSystem(engine, 2, 2)

		source := traffic.NewSource(net.Protocol(), traffic.SourceConfig{
			Src:   0,
			Dst:   3,
			Start: 100,
			Count: 1,
		})
		core0, _ := system.IPCoreAt(0)
		source.Attach(core0)

		sink := traffic.NewSink(1)
		core3, _ := system.IPCoreAt(3)
		sink.Attach(core3)

		for _, e := range system.Endpoints() {
			e.RegisterProcesses()
		}

		Expect(engine.Run()).To(Succeed())
		Expect(sink.Arrivals()).To(HaveLen(1))
		Expect(sink.Arrivals()[0].Time).To(Equal(sim.VTime(122)))
	})

	It("should refuse a multi-packet source without a period", func() {
		Expect(func() {
			traffic.NewSource(protocol.NewBasicProtocol(),
				traffic.SourceConfig{Count: 2})
		}).To(Panic())
	})
})

var _ = Describe("RandomSource", func() {
	It("should deliver every injected packet to a listed destination", func() {
		engine := sim.NewSerialEngine()
		net, system := meshSystem(engine, 3, 3)

		source := traffic.NewRandomSource("Mesh.IPCore[0].Random",
			net.Protocol(), traffic.RandomSourceConfig{
				Src:        0,
				Dests:      []int{1, 2, 3, 4, 5, 6, 7, 8},
				MeanPeriod: 50,
				Count:      5,
			})
		core0, _ := system.IPCoreAt(0)
		source.Attach(core0)

		sinks := make(map[int]*traffic.Sink)
		for addr := 1; addr <= 8; addr++ {
			sink := traffic.NewSink(0)
			core, _ := system.IPCoreAt(addr)
			sink.Attach(core)
			sinks[addr] = sink
		}

		engine.AddProcess("Watchdog", func(proc *sim.Process) {
			proc.Delay(5000)
			proc.Engine().Terminate()
		})

		for _, e := range system.Endpoints() {
			e.RegisterProcesses()
		}

		Expect(engine.Run()).To(Succeed())
		Expect(source.Injected()).To(Equal(5))

		total := 0
		for addr, sink := range sinks {
			for _, a := range sink.Arrivals() {
				Expect(a.Packet.Dst()).To(Equal(addr))
			}
			total += len(sink.Arrivals())
		}
		Expect(total).To(Equal(5))
	})

	It("should refuse an empty destination list", func() {
		Expect(func() {
			traffic.NewRandomSource("Bad", protocol.NewBasicProtocol(),
				traffic.RandomSourceConfig{MeanPeriod: 10, Count: 1})
		}).To(Panic())
	})
})
