package monitoring

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/noctlm/sim"
)

type sampleEntity struct {
	name    string
	buffers []sim.Buffer
}

func (e *sampleEntity) Name() string {
	return e.name
}

func (e *sampleEntity) Buffers() []sim.Buffer {
	return e.buffers
}

type plainEntity struct {
	name string
}

func (e *plainEntity) Name() string {
	return e.name
}

var _ = Describe("Monitor", func() {
	var m *Monitor

	BeforeEach(func() {
		m = NewMonitor()
	})

	It("should register entities and their buffers", func() {
		e := &sampleEntity{
			name: "Router0",
			buffers: []sim.Buffer{
				sim.NewBuffer("Router0.Port[1].FIFOIn", 4),
				sim.NewBuffer("Router0.Port[1].FIFOOut", 4),
			},
		}

		m.RegisterEntity(e)

		Expect(m.entities).To(HaveLen(1))
		Expect(m.buffers).To(HaveLen(2))
	})

	It("should register entities without buffers", func() {
		m.RegisterEntity(&plainEntity{name: "IPCore0"})

		Expect(m.entities).To(HaveLen(1))
		Expect(m.buffers).To(BeEmpty())
	})

	It("should sort buffers by fill percentage", func() {
		emptier := sim.NewBuffer("A", 4)
		fuller := sim.NewBuffer("B", 4)
		fuller.Push(1)
		fuller.Push(2)
		emptier.Push(1)

		m.buffers = []sim.Buffer{emptier, fuller}

		sorted := m.sortAndSelectBuffers("percent", 0, 0)

		Expect(sorted).To(HaveLen(2))
		Expect(sorted[0].Name()).To(Equal("B"))
	})

	It("should clamp limit and offset to the buffer count", func() {
		m.buffers = []sim.Buffer{sim.NewBuffer("A", 4)}

		sorted := m.sortAndSelectBuffers("level", 10, 5)

		Expect(sorted).To(BeEmpty())
	})
})
