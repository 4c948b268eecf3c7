package tlm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ErrCode", func() {
	It("should keep the numeric values of the taxonomy", func() {
		Expect(int(ErrNone)).To(Equal(0))
		Expect(int(ErrFullFIFO)).To(Equal(-1))
		Expect(int(ErrBadPacket)).To(Equal(-2))
		Expect(int(ErrBadCallRecv)).To(Equal(-3))
		Expect(int(ErrBadCallSend)).To(Equal(-4))
		Expect(int(ErrNotImplemented)).To(Equal(-5))
	})

	It("should render diagnostic names", func() {
		Expect(ErrNone.String()).To(Equal("no_error"))
		Expect(ErrFullFIFO.String()).To(Equal("full_fifo"))
		Expect(ErrBadPacket.String()).To(Equal("packet_bad_data"))
		Expect(ErrBadCallRecv.String()).To(Equal("tlm_badcall_recv"))
		Expect(ErrBadCallSend.String()).To(Equal("tlm_badcall_send"))
		Expect(ErrNotImplemented.String()).To(Equal("not_implemented"))
		Expect(ErrCode(-42).String()).To(Equal("errcode(-42)"))
	})
})
