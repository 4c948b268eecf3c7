package tlm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/noctlm/noc"
	"github.com/sarchlab/noctlm/noc/protocol"
	"github.com/sarchlab/noctlm/sim"
)

var _ = Describe("IPCoreEngine", func() {
	var (
		engine *sim.SerialEngine
		net    *noc.Network
		system *System
		core   *IPCoreEngine
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		net = lineNetwork(2)
		system = MakeSystemBuilder().
			WithEngine(engine).
			WithNetwork(net).
			Build()
		core = system.IPCores[0]
	})

	It("should be wired to its local channel", func() {
		Expect(core.LocalChannel()).NotTo(BeNil())

		opposite, found := core.LocalChannel().Opposite(core)
		Expect(found).To(BeTrue())

		router0, _ := system.RouterByAddress(0)
		Expect(opposite).To(BeIdenticalTo(router0))
	})

	It("should refuse a nil packet", func() {
		Expect(core.Recv(core.LocalChannel(), core, nil, nil)).
			To(Equal(ErrBadPacket))
	})

	It("should accept a delivered packet", func() {
		pkt := net.Protocol().NewPacketWithValues(map[string]int64{
			"src": 1, "dst": 0,
		})

		Expect(core.Recv(core.LocalChannel(), core, pkt, nil)).
			To(Equal(ErrNone))
	})

	It("should hand delivered packets to a registered generator", func() {
		proto := net.Protocol()

		var received *protocol.Packet

		core.RegisterGenerator("Observer",
			func(proc *sim.Process, din, dout *sim.Signal) {
				proc.Wait(din)
				received, _ = din.Value().(*protocol.Packet)
				proc.Engine().Terminate()
			})

		for _, e := range system.Endpoints() {
			e.RegisterProcesses()
		}

		pkt := proto.NewPacketWithValues(map[string]int64{
			"src": 1, "dst": 0, "data": 7,
		})
		Expect(core.Recv(core.LocalChannel(), core, pkt, nil)).
			To(Equal(ErrNone))

		Expect(engine.Run()).To(Succeed())
		Expect(received).To(BeIdenticalTo(pkt))
	})
})
