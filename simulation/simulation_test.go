package simulation

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/noctlm/noc"
	"github.com/sarchlab/noctlm/noc/protocol"
	"github.com/sarchlab/noctlm/noc/tlm"
	"github.com/sarchlab/noctlm/sim"
)

// recvTimeHook records the time of every accepted Recv on one endpoint.
type recvTimeHook struct {
	times []sim.VTime
}

func (h *recvTimeHook) Func(ctx sim.HookCtx) {
	t, ok := ctx.Item.(tlm.Transaction)
	if !ok || ctx.Pos != tlm.HookPosTLMRecv || t.Err != tlm.ErrNone {
		return
	}

	h.times = append(h.times, ctx.Now)
}

func mesh2x2() *noc.Network {
	return noc.GenerateMesh(noc.MeshConfig{
		Name:        "Mesh",
		Width:       2,
		Height:      2,
		WithIPCores: true,
	}, protocol.NewBasicProtocol())
}

var _ = Describe("Simulation", func() {
	var s *Simulation

	BeforeEach(func() {
		s = MakeBuilder().
			WithNetwork(mesh2x2()).
			WithoutMonitoring().
			WithoutRecording().
			Build()
	})

	AfterEach(func() {
		s.Terminate()
	})

	It("should register all endpoints of the system", func() {
		// 4 routers, 4 router-router channels, 4 local channels, 4 ipcores.
		Expect(s.EndpointByName("Mesh.Router[0]")).NotTo(BeNil())
		Expect(s.EndpointByName("Mesh.IPCore[3]")).NotTo(BeNil())
		Expect(s.EndpointByName("Mesh.Router[9]")).To(BeNil())
	})

	It("should refuse registering the same endpoint twice", func() {
		Expect(func() {
			s.RegisterEndpoint(s.System().Endpoints()[0])
		}).To(Panic())
	})

	It("should refuse configuring twice", func() {
		s.Configure()

		Expect(s.Configure).To(Panic())
	})

	It("should deliver a packet across the mesh with the stock delays", func() {
		proto := s.Network().Protocol()

		var arrival sim.VTime

		s.IPCoreAt(0).RegisterGenerator("Source",
			func(proc *sim.Process, din, dout *sim.Signal) {
				pkt := proto.NewPacketWithValues(map[string]int64{
					"src": 0, "dst": 3, "data": 42,
				})
				dout.SetNext(pkt)
			})

		s.IPCoreAt(3).RegisterGenerator("Sink",
			func(proc *sim.Process, din, dout *sim.Signal) {
				for {
					proc.Wait(din)

					pkt, ok := din.Value().(*protocol.Packet)
					if !ok || pkt == nil {
						continue
					}

					Expect(pkt.MustGet("data")).To(Equal(int64(42)))
					arrival = proc.Now()
					proc.Engine().Terminate()
					return
				}
			})

		ingress0 := &recvTimeHook{}
		ingress3 := &recvTimeHook{}
		router0, _ := s.System().RouterByAddress(0)
		router3, _ := s.System().RouterByAddress(3)
		router0.AcceptHook(ingress0)
		router3.AcceptHook(ingress3)

		Expect(s.Run()).To(Succeed())

		// local bus (1) + three hops of routing (5) + forward (2) each.
		Expect(arrival).To(Equal(sim.VTime(22)))

		// Transit between the ingress of the first router and the ingress
		// of the last: two routing decisions plus two forwards.
		Expect(ingress0.times).To(HaveLen(1))
		Expect(ingress3.times).To(HaveLen(1))
		Expect(ingress3.times[0] - ingress0.times[0]).To(Equal(sim.VTime(14)))
	})

	It("should stop at the time bound", func() {
		bounded := MakeBuilder().
			WithNetwork(mesh2x2()).
			WithoutMonitoring().
			WithoutRecording().
			WithMaxTime(10).
			Build()
		defer bounded.Terminate()

		proto := bounded.Network().Protocol()

		delivered := false

		bounded.IPCoreAt(0).RegisterGenerator("Source",
			func(proc *sim.Process, din, dout *sim.Signal) {
				pkt := proto.NewPacketWithValues(map[string]int64{
					"src": 0, "dst": 3,
				})
				dout.SetNext(pkt)
			})

		bounded.IPCoreAt(3).RegisterGenerator("Sink",
			func(proc *sim.Process, din, dout *sim.Signal) {
				proc.Wait(din)
				delivered = true
			})

		Expect(bounded.Run()).To(Succeed())
		Expect(delivered).To(BeFalse())
		Expect(bounded.Engine().CurrentTime()).
			To(BeNumerically("<=", sim.VTime(10)))
	})

	Context("Builder with custom output file", func() {
		var customSim *Simulation

		AfterEach(func() {
			if customSim != nil {
				customSim.Terminate()
				os.Remove("test_custom_output.sqlite3")
				customSim = nil
			}
		})

		It("should allow custom output file to be set", func() {
			customSim = MakeBuilder().
				WithNetwork(mesh2x2()).
				WithoutMonitoring().
				WithOutputFileName("test_custom_output").
				Build()

			Expect(customSim).ToNot(BeNil())
			Expect(customSim.DataRecorder()).ToNot(BeNil())
			Expect(customSim.VisTracer()).ToNot(BeNil())
		})
	})
})
