package sim

import (
	"fmt"
	"log"
	"sort"
	"sync"
)

// A SerialEngine is an Engine that interleaves all processes on a single
// logical timeline. Process bodies run on their own goroutines, but the
// engine hands control to exactly one of them at a time, so no two process
// bodies ever run concurrently.
type SerialEngine struct {
	HookableBase

	timeLock sync.RWMutex
	time     VTime

	maxTime VTime

	processes []*Process
	runnable  []*Process

	pendingSignals []*Signal
	wakeQueue      WakeQueue

	running bool

	stopLock      sync.Mutex
	stopRequested bool

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	singleRunLock sync.Mutex

	simulationEndHandlers []SimulationEndHandler
}

// NewSerialEngine creates a SerialEngine.
func NewSerialEngine() *SerialEngine {
	e := new(SerialEngine)

	e.wakeQueue = NewWakeQueue()
	//e.wakeQueue = NewInsertionWakeQueue()

	return e
}

// AddProcess registers a process with the engine. The name must follow the
// simulation naming convention. Registration order decides the order in
// which same-instant processes run.
func (e *SerialEngine) AddProcess(name string, body ProcessFunc) *Process {
	NameMustBeValid(name)

	if e.running {
		log.Panic("cannot add a process after the simulation started")
	}

	if body == nil {
		log.Panic("process body must not be nil")
	}

	p := &Process{
		ID:     GetIDGenerator().Generate(),
		name:   name,
		order:  len(e.processes),
		engine: e,
		body:   body,
		state:  procCreated,
		resume: make(chan struct{}),
		yield:  make(chan struct{}),
	}
	e.processes = append(e.processes, p)
	p.start()

	return p
}

// NewSignal creates a signal owned by this engine with the given initial
// committed value.
func (e *SerialEngine) NewSignal(name string, initial any) *Signal {
	NameMustBeValid(name)

	return &Signal{
		name:    name,
		engine:  e,
		current: initial,
		next:    initial,
	}
}

// SetMaxTime bounds the simulated time. Zero means unbounded.
func (e *SerialEngine) SetMaxTime(t VTime) {
	if t < 0 {
		log.Panic("max time must not be negative")
	}

	e.maxTime = t
}

func (e *SerialEngine) readNow() VTime {
	e.timeLock.RLock()
	t := e.time
	e.timeLock.RUnlock()
	return t
}

func (e *SerialEngine) writeNow(t VTime) {
	e.timeLock.Lock()
	e.time = t
	e.timeLock.Unlock()
}

// Run drives the simulation. Every registered process starts runnable at
// time 0. The engine repeats delta cycles until no process is runnable,
// then advances virtual time to the earliest pending wake-up. Run returns
// when all processes terminated, when the time bound is reached, when
// Terminate was called, or with an error when live processes remain but
// none can ever wake again.
func (e *SerialEngine) Run() error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	e.startRun()

	for {
		e.pauseLock.Lock()

		if e.readStopRequest() {
			e.pauseLock.Unlock()
			return nil
		}

		if len(e.runnable) > 0 {
			e.runDeltaCycle()
			e.pauseLock.Unlock()
			continue
		}

		if e.wakeQueue.Len() == 0 {
			e.pauseLock.Unlock()
			return e.checkQuiescence()
		}

		wakeAt := e.wakeQueue.Peek().wakeAt
		if e.maxTime > 0 && wakeAt > e.maxTime {
			e.writeNow(e.maxTime)
			e.pauseLock.Unlock()
			return nil
		}

		e.advanceTime()
		e.pauseLock.Unlock()
	}
}

func (e *SerialEngine) startRun() {
	e.running = true
	e.runnable = append(e.runnable, e.processes...)
}

// runDeltaCycle resumes every runnable process once, in registration order,
// then commits all staged signal writes. Commits that change a value wake
// the signal's waiters for the next delta cycle at the same virtual time.
func (e *SerialEngine) runDeltaCycle() {
	batch := e.runnable
	e.runnable = nil

	sort.Slice(batch, func(i, j int) bool {
		return batch[i].order < batch[j].order
	})

	for _, p := range batch {
		e.resumeProcess(p)
	}

	e.commitSignals()
}

func (e *SerialEngine) resumeProcess(p *Process) {
	hookCtx := HookCtx{
		Domain: e,
		Now:    e.readNow(),
		Pos:    HookPosProcessResume,
		Item:   p,
	}
	e.InvokeHook(hookCtx)

	p.resume <- struct{}{}
	<-p.yield

	hookCtx.Now = e.readNow()

	switch p.state {
	case procWaiting:
		for _, s := range p.waitSigs {
			s.waiters = append(s.waiters, p)
		}

		hookCtx.Pos = HookPosProcessSuspend
		hookCtx.Detail = "wait"
		e.InvokeHook(hookCtx)
	case procDelayed:
		e.wakeQueue.Push(p)

		hookCtx.Pos = HookPosProcessSuspend
		hookCtx.Detail = "delay"
		e.InvokeHook(hookCtx)
	case procTerminated:
		if p.panicValue != nil {
			panic(p.panicValue)
		}

		hookCtx.Pos = HookPosProcessTerminate
		e.InvokeHook(hookCtx)
	default:
		log.Panicf("process %s handed control back in an unexpected state",
			p.name)
	}
}

func (e *SerialEngine) commitSignals() {
	pending := e.pendingSignals
	e.pendingSignals = nil

	for _, s := range pending {
		if !s.commit() {
			continue
		}

		hookCtx := HookCtx{
			Domain: e,
			Now:    e.readNow(),
			Pos:    HookPosSignalCommit,
			Item:   s,
			Detail: s.current,
		}
		e.InvokeHook(hookCtx)

		waiters := s.waiters
		s.waiters = nil

		for _, p := range waiters {
			if p.state != procWaiting {
				continue
			}

			e.wakeProcess(p)
		}
	}
}

// wakeProcess moves a waiting process to the runnable set and detaches it
// from every signal it was waiting on.
func (e *SerialEngine) wakeProcess(p *Process) {
	for _, s := range p.waitSigs {
		s.removeWaiter(p)
	}
	p.waitSigs = nil

	p.state = procRunnable
	e.runnable = append(e.runnable, p)
}

// advanceTime pops every process that wakes at the earliest pending time
// and makes them runnable at that time.
func (e *SerialEngine) advanceTime() {
	p := e.wakeQueue.Pop()
	e.writeNow(p.wakeAt)

	hookCtx := HookCtx{
		Domain: e,
		Now:    p.wakeAt,
		Pos:    HookPosTimeAdvance,
		Detail: p.wakeAt,
	}
	e.InvokeHook(hookCtx)

	p.state = procRunnable
	e.runnable = append(e.runnable, p)

	for e.wakeQueue.Len() > 0 && e.wakeQueue.Peek().wakeAt == p.wakeAt {
		q := e.wakeQueue.Pop()
		q.state = procRunnable
		e.runnable = append(e.runnable, q)
	}
}

func (e *SerialEngine) checkQuiescence() error {
	live := 0
	for _, p := range e.processes {
		if p.state != procTerminated {
			live++
		}
	}

	if live == 0 {
		return nil
	}

	return fmt.Errorf(
		"deadlock at %.10f: %d processes have no pending wake condition",
		e.readNow(), live)
}

func (e *SerialEngine) readStopRequest() bool {
	e.stopLock.Lock()
	defer e.stopLock.Unlock()

	return e.stopRequested
}

// Terminate requests the simulation to stop after the current delta cycle.
func (e *SerialEngine) Terminate() {
	e.stopLock.Lock()
	e.stopRequested = true
	e.stopLock.Unlock()
}

// Pause prevents the SerialEngine from running more delta cycles.
func (e *SerialEngine) Pause() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if e.isPaused {
		return
	}

	e.pauseLock.Lock()
	e.isPaused = true
}

// Continue allows the SerialEngine to run more delta cycles.
func (e *SerialEngine) Continue() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if !e.isPaused {
		return
	}

	e.pauseLock.Unlock()
	e.isPaused = false
}

// CurrentTime returns the current virtual time of the engine.
func (e *SerialEngine) CurrentTime() VTime {
	return e.readNow()
}

// RegisterSimulationEndHandler registers a handler to be called after the
// simulation ends.
func (e *SerialEngine) RegisterSimulationEndHandler(
	handler SimulationEndHandler,
) {
	e.simulationEndHandlers = append(e.simulationEndHandlers, handler)
}

// Finished should be called after the simulation ends. This function calls
// all the registered SimulationEndHandler.
func (e *SerialEngine) Finished() {
	now := e.readNow()
	for _, h := range e.simulationEndHandlers {
		h.Handle(now)
	}
}
