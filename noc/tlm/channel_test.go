package tlm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/noctlm/noc"
	"github.com/sarchlab/noctlm/noc/protocol"
	"github.com/sarchlab/noctlm/sim"
)

var _ = Describe("ChannelEngine", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *sim.SerialEngine
		net      *noc.Network
		ch       *ChannelEngine
		endA     *MockEndpoint
		endB     *MockEndpoint
		pkt      *protocol.Packet
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = sim.NewSerialEngine()
		net = lineNetwork(2)

		chID, _ := net.ChannelBetween(
			net.Routers()[0].ID, net.Routers()[1].ID)
		ch = newChannelEngine(engine, net.Channel(chID), ChannelConfig{})

		endA = NewMockEndpoint(mockCtrl)
		endA.EXPECT().Name().Return("EndA").AnyTimes()
		endB = NewMockEndpoint(mockCtrl)
		endB.EXPECT().Name().Return("EndB").AnyTimes()
		ch.connect(endA, endB)

		pkt = net.Protocol().NewPacketWithValues(map[string]int64{
			"src": 0, "dst": 1,
		})
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should relay a packet to the opposite end within the instant", func() {
		endB.EXPECT().Recv(ch, endB, pkt, nil).Return(ErrNone)

		Expect(ch.Recv(endA, ch, pkt, nil)).To(Equal(ErrNone))
	})

	It("should propagate a refusal back to the sender", func() {
		endB.EXPECT().Recv(ch, endB, pkt, nil).Return(ErrFullFIFO)

		Expect(ch.Recv(endA, ch, pkt, nil)).To(Equal(ErrFullFIFO))
	})

	It("should refuse a party that is not one of its ends", func() {
		stranger := NewMockEndpoint(mockCtrl)
		stranger.EXPECT().Name().Return("Stranger").AnyTimes()

		Expect(ch.Recv(stranger, ch, pkt, nil)).To(Equal(ErrBadCallRecv))
		Expect(ch.Send(ch, stranger, pkt, nil)).To(Equal(ErrBadCallSend))
	})

	It("should refuse an address that matches no router end", func() {
		// The ends are mocks here, so no address can resolve.
		Expect(ch.Recv(0, ch, pkt, nil)).To(Equal(ErrBadCallRecv))
	})

	It("should resolve an address to the router end carrying it", func() {
		system := MakeSystemBuilder().
			WithEngine(sim.NewSerialEngine()).
			WithNetwork(net).
			Build()

		chID, _ := net.ChannelBetween(
			net.Routers()[0].ID, net.Routers()[1].ID)
		wired := system.Channels[chID]

		Expect(wired.Recv(0, wired, pkt, nil)).To(Equal(ErrNone))

		router1, _ := system.RouterByAddress(1)
		port, _ := router1.Port(0)
		Expect(port.FIFOIn.Size()).To(Equal(1))
	})
})

var _ = Describe("ChannelEngine with a transmission delay", func() {
	It("should hold each packet for the delay on every wire", func() {
		engine := sim.NewSerialEngine()
		net := lineNetwork(2)
		system := MakeSystemBuilder().
			WithEngine(engine).
			WithNetwork(net).
			WithChannelConfig(ChannelConfig{Delay: 3}).
			Build()

		proto := net.Protocol()

		var arrival sim.VTime

		core0 := system.IPCores[0]
		core0.RegisterGenerator("Source",
			func(proc *sim.Process, din, dout *sim.Signal) {
				dout.SetNext(proto.NewPacketWithValues(map[string]int64{
					"src": 0, "dst": 1,
				}))
			})

		core1 := system.IPCores[1]
		core1.RegisterGenerator("Sink",
			func(proc *sim.Process, din, dout *sim.Signal) {
				for {
					proc.Wait(din)

					if pkt, ok := din.Value().(*protocol.Packet); ok &&
						pkt != nil {
						arrival = proc.Now()
						proc.Engine().Terminate()
						return
					}
				}
			})

		for _, e := range system.Endpoints() {
			e.RegisterProcesses()
		}

		Expect(engine.Run()).To(Succeed())

		// local bus (1) + local wire (3) + routing (5) + forward (2) +
		// wire (3) + routing (5) + forward (2) + local wire (3).
		Expect(arrival).To(Equal(sim.VTime(24)))
	})
})
