package sim

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func randomDelayedProcess(order int) *Process {
	return &Process{
		order:  order,
		wakeAt: VTime(rand.Float64() / 1e8),
	}
}

var _ = Describe("WakeQueueImpl", func() {
	var (
		queue *WakeQueueImpl
	)

	BeforeEach(func() {
		queue = NewWakeQueue()
	})

	It("should pop in time order", func() {
		numProcs := 100
		for i := 0; i < numProcs; i++ {
			queue.Push(randomDelayedProcess(i))
		}

		now := VTime(-1)
		for i := 0; i < numProcs; i++ {
			p := queue.Pop()
			Expect(p.wakeAt >= now).To(BeTrue())
			now = p.wakeAt
		}
	})

	It("should break time ties by registration order", func() {
		for _, order := range []int{3, 0, 2, 1} {
			queue.Push(&Process{order: order, wakeAt: 4})
		}

		for i := 0; i < 4; i++ {
			Expect(queue.Pop().order).To(Equal(i))
		}
	})
})

var _ = Describe("InsertionWakeQueue", func() {
	var (
		queue *InsertionWakeQueue
	)

	BeforeEach(func() {
		queue = NewInsertionWakeQueue()
	})

	It("should pop in time order", func() {
		numProcs := 100
		for i := 0; i < numProcs; i++ {
			queue.Push(randomDelayedProcess(i))
		}

		now := VTime(-1)
		for i := 0; i < numProcs; i++ {
			p := queue.Pop()
			Expect(p.wakeAt >= now).To(BeTrue())
			now = p.wakeAt
		}
	})

	It("should break time ties by registration order", func() {
		for _, order := range []int{3, 0, 2, 1} {
			queue.Push(&Process{order: order, wakeAt: 4})
		}

		for i := 0; i < 4; i++ {
			Expect(queue.Pop().order).To(Equal(i))
		}
	})
})
