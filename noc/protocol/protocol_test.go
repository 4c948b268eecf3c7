package protocol_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/noctlm/noc/protocol"
)

var _ = Describe("Protocol", func() {
	It("should define the basic 8/8/16 layout", func() {
		p := protocol.NewBasicProtocol()

		fields := p.Fields()
		Expect(fields).To(HaveLen(3))
		Expect(fields[0].Name).To(Equal("src"))
		Expect(fields[0].Bits).To(Equal(8))
		Expect(fields[1].Name).To(Equal("dst"))
		Expect(fields[1].Bits).To(Equal(8))
		Expect(fields[2].Name).To(Equal("data"))
		Expect(fields[2].Bits).To(Equal(16))

		Expect(p.HasRoutingFields()).To(BeTrue())
	})

	It("should reject duplicated field names", func() {
		p := protocol.NewProtocol("P")
		p.AddField("src", protocol.FieldInt, 8, "")

		Expect(func() {
			p.AddField("src", protocol.FieldInt, 8, "")
		}).To(Panic())
	})

	It("should report missing routing fields", func() {
		p := protocol.NewProtocol("P")
		p.AddField("payload", protocol.FieldInt, 32, "")

		Expect(p.HasRoutingFields()).To(BeFalse())
	})
})

var _ = Describe("Packet", func() {
	var p *protocol.Protocol

	BeforeEach(func() {
		p = protocol.NewBasicProtocol()
	})

	It("should create zero-initialized packets with unique IDs", func() {
		pkt1 := p.NewPacket()
		pkt2 := p.NewPacket()

		Expect(pkt1.MustGet("src")).To(Equal(int64(0)))
		Expect(pkt1.MustGet("dst")).To(Equal(int64(0)))
		Expect(pkt1.ID).NotTo(Equal(pkt2.ID))
	})

	It("should read and write fields by name", func() {
		pkt := p.NewPacketWithValues(map[string]int64{
			"src":  1,
			"dst":  3,
			"data": 500,
		})

		Expect(pkt.Src()).To(Equal(1))
		Expect(pkt.Dst()).To(Equal(3))
		Expect(pkt.MustGet("data")).To(Equal(int64(500)))
	})

	It("should truncate values to the field width", func() {
		pkt := p.NewPacket()

		pkt.MustSet("src", 0x1ff)

		Expect(pkt.MustGet("src")).To(Equal(int64(0xff)))
	})

	It("should report unknown fields", func() {
		pkt := p.NewPacket()

		_, found := pkt.Get("nope")
		Expect(found).To(BeFalse())
		Expect(pkt.Set("nope", 1)).To(BeFalse())
		Expect(func() { pkt.MustGet("nope") }).To(Panic())
	})
})
