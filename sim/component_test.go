package sim

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ComponentBase", func() {
	var (
		engine    *SerialEngine
		component *ComponentBase
	)

	BeforeEach(func() {
		engine = NewSerialEngine()
		component = NewComponentBase(engine, "Comp")
	})

	It("should set and get name", func() {
		Expect(component.Name()).To(Equal("Comp"))
	})

	It("should return its engine", func() {
		Expect(component.Engine()).To(BeIdenticalTo(engine))
	})

	It("should reject invalid names", func() {
		Expect(func() {
			NewComponentBase(engine, "bad_name")
		}).To(Panic())
	})

	It("should stay silent without a logger", func() {
		Expect(func() {
			component.Logf("dropped %d", 1)
		}).NotTo(Panic())
	})

	It("should stamp diagnostics with time and name", func() {
		buf := &bytes.Buffer{}
		component.SetLogger(log.New(buf, "", 0))

		component.Logf("dropped %d", 1)

		Expect(buf.String()).To(ContainSubstring("Comp, dropped 1"))
	})
})
