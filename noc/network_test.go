package noc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/noctlm/noc"
	"github.com/sarchlab/noctlm/noc/protocol"
)

var _ = Describe("Network", func() {
	var n *noc.Network

	BeforeEach(func() {
		n = noc.NewNetwork("Net", protocol.NewBasicProtocol())
	})

	It("should add routers and find them by address", func() {
		id := n.AddRouter("Net.Router[0]", 0)

		r, found := n.RouterByAddress(0)

		Expect(found).To(BeTrue())
		Expect(r.ID).To(Equal(id))
		Expect(r.Address).To(Equal(0))
	})

	It("should not find a router with an unknown address", func() {
		_, found := n.RouterByAddress(42)

		Expect(found).To(BeFalse())
	})

	It("should reject duplicated addresses", func() {
		n.AddRouter("Net.Router[0]", 0)

		Expect(func() {
			n.AddRouter("Net.Router[1]", 0)
		}).To(Panic())
	})

	It("should connect routers with channels", func() {
		a := n.AddRouter("Net.Router[0]", 0)
		b := n.AddRouter("Net.Router[1]", 1)

		ch := n.AddChannel("Net.Channel[0]", a, b)

		chID, found := n.ChannelBetween(a, b)
		Expect(found).To(BeTrue())
		Expect(chID).To(Equal(ch))

		chID, found = n.ChannelBetween(b, a)
		Expect(found).To(BeTrue())
		Expect(chID).To(Equal(ch))
	})

	It("should list neighbors sorted by address", func() {
		a := n.AddRouter("Net.Router[0]", 5)
		b := n.AddRouter("Net.Router[1]", 2)
		c := n.AddRouter("Net.Router[2]", 9)
		d := n.AddRouter("Net.Router[3]", 1)

		n.AddChannel("Net.Channel[0]", a, c)
		n.AddChannel("Net.Channel[1]", a, b)
		n.AddChannel("Net.Channel[2]", a, d)

		neighbors := n.Neighbors(a)

		Expect(neighbors).To(Equal([]noc.RouterID{d, b, c}))
	})

	It("should attach an ipcore with its local channel", func() {
		a := n.AddRouter("Net.Router[0]", 0)

		coreID := n.AddIPCore("Net.IPCore[0]", a)

		core := n.IPCore(coreID)
		router := n.Router(a)
		Expect(core.Router).To(Equal(a))
		Expect(router.IPCore).To(Equal(coreID))
		Expect(router.LocalChannel).To(Equal(core.Channel))

		ch := n.Channel(core.Channel)
		Expect(ch.Ends[0].Kind).To(Equal(noc.NodeRouter))
		Expect(ch.Ends[1].Kind).To(Equal(noc.NodeIPCore))
	})

	It("should allow only one ipcore per router", func() {
		a := n.AddRouter("Net.Router[0]", 0)
		n.AddIPCore("Net.IPCore[0]", a)

		Expect(func() {
			n.AddIPCore("Net.IPCore[1]", a)
		}).To(Panic())
	})

	It("should not include ipcore links in the routing graph", func() {
		a := n.AddRouter("Net.Router[0]", 0)
		b := n.AddRouter("Net.Router[1]", 1)
		n.AddChannel("Net.Channel[0]", a, b)
		n.AddIPCore("Net.IPCore[0]", a)

		g := n.Graph()

		Expect(g.Nodes().Len()).To(Equal(2))
		Expect(g.HasEdgeBetween(0, 1)).To(BeTrue())
	})
})

var _ = Describe("GenerateMesh", func() {
	It("should build a 2x2 mesh with grid addresses", func() {
		n := noc.GenerateMesh(noc.MeshConfig{
			Width:       2,
			Height:      2,
			WithIPCores: true,
		}, protocol.NewBasicProtocol())

		Expect(n.Routers()).To(HaveLen(4))
		Expect(n.IPCores()).To(HaveLen(4))
		// 4 mesh links plus 4 ipcore links.
		Expect(n.Channels()).To(HaveLen(8))

		r3, found := n.RouterByAddress(3)
		Expect(found).To(BeTrue())
		Expect(r3.X).To(Equal(1))
		Expect(r3.Y).To(Equal(1))

		r0, _ := n.RouterByAddress(0)
		neighbors := n.Neighbors(r0.ID)
		Expect(neighbors).To(HaveLen(2))
	})

	It("should connect a 3x1 line end to end", func() {
		n := noc.GenerateMesh(noc.MeshConfig{
			Width:  3,
			Height: 1,
		}, protocol.NewBasicProtocol())

		r0, _ := n.RouterByAddress(0)
		r1, _ := n.RouterByAddress(1)
		r2, _ := n.RouterByAddress(2)

		_, direct := n.ChannelBetween(r0.ID, r2.ID)
		Expect(direct).To(BeFalse())

		_, found := n.ChannelBetween(r0.ID, r1.ID)
		Expect(found).To(BeTrue())

		_, found = n.ChannelBetween(r1.ID, r2.ID)
		Expect(found).To(BeTrue())
	})
})
