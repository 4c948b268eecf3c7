package sim

import (
	"container/heap"
	"container/list"
	"sync"
)

// A WakeQueue holds delayed processes ordered by their wake-up time.
// Processes waking at the same time come out in registration order.
type WakeQueue interface {
	Push(p *Process)
	Pop() *Process
	Len() int
	Peek() *Process
}

// WakeQueueImpl provides a thread safe wake queue.
type WakeQueueImpl struct {
	sync.Mutex
	procs wakeHeap
}

// NewWakeQueue creates and returns a newly created WakeQueue.
func NewWakeQueue() *WakeQueueImpl {
	q := new(WakeQueueImpl)
	q.procs = make([]*Process, 0)
	heap.Init(&q.procs)
	return q
}

// Push adds a delayed process to the wake queue.
func (q *WakeQueueImpl) Push(p *Process) {
	q.Lock()
	heap.Push(&q.procs, p)
	q.Unlock()
}

// Pop returns the process with the earliest wake-up time.
func (q *WakeQueueImpl) Pop() *Process {
	q.Lock()
	p := heap.Pop(&q.procs).(*Process)
	q.Unlock()
	return p
}

// Len returns the number of processes in the queue.
func (q *WakeQueueImpl) Len() int {
	q.Lock()
	l := q.procs.Len()
	q.Unlock()
	return l
}

// Peek returns the process at the front of the queue without removing it
// from the queue.
func (q *WakeQueueImpl) Peek() *Process {
	q.Lock()
	p := q.procs[0]
	q.Unlock()
	return p
}

type wakeHeap []*Process

// Len returns the length of the wake queue.
func (h wakeHeap) Len() int {
	return len(h)
}

// Less determines the order between two delayed processes. Earlier wake-up
// times come first; ties fall back to registration order.
func (h wakeHeap) Less(i, j int) bool {
	if h[i].wakeAt != h[j].wakeAt {
		return h[i].wakeAt < h[j].wakeAt
	}
	return h[i].order < h[j].order
}

// Swap changes the position of two processes in the wake queue.
func (h wakeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// Push adds a process into the wake queue.
func (h *wakeHeap) Push(x any) {
	p := x.(*Process)
	*h = append(*h, p)
}

// Pop removes and returns the next process to wake.
func (h *wakeHeap) Pop() any {
	old := *h
	n := len(old)
	p := old[n-1]
	*h = old[0 : n-1]
	return p
}

// InsertionWakeQueue is a wake queue that is based on insertion sort.
type InsertionWakeQueue struct {
	lock sync.RWMutex
	l    *list.List
}

// NewInsertionWakeQueue returns a new InsertionWakeQueue.
func NewInsertionWakeQueue() *InsertionWakeQueue {
	q := new(InsertionWakeQueue)
	q.l = list.New()
	return q
}

// Push adds a delayed process to the wake queue.
func (q *InsertionWakeQueue) Push(p *Process) {
	var ele *list.Element

	q.lock.RLock()
	for ele = q.l.Front(); ele != nil; ele = ele.Next() {
		other := ele.Value.(*Process)
		if other.wakeAt > p.wakeAt ||
			(other.wakeAt == p.wakeAt && other.order > p.order) {
			break
		}
	}
	q.lock.RUnlock()

	q.lock.Lock()
	if ele != nil {
		q.l.InsertBefore(p, ele)
	} else {
		q.l.PushBack(p)
	}
	q.lock.Unlock()
}

// Pop returns the process with the earliest wake-up time, and removes it
// from the queue.
func (q *InsertionWakeQueue) Pop() *Process {
	q.lock.Lock()
	p := q.l.Remove(q.l.Front())
	q.lock.Unlock()
	return p.(*Process)
}

// Len returns the number of processes in the queue.
func (q *InsertionWakeQueue) Len() int {
	q.lock.RLock()
	l := q.l.Len()
	q.lock.RUnlock()
	return l
}

// Peek returns the process at the front of the queue without removing it
// from the queue.
func (q *InsertionWakeQueue) Peek() *Process {
	q.lock.RLock()
	p := q.l.Front().Value.(*Process)
	q.lock.RUnlock()
	return p
}
