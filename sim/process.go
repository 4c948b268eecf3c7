package sim

import "log"

// VTime defines a point in simulated virtual time. Time units are abstract,
// not wall-clock seconds.
type VTime float64

// A ProcessFunc is the body of a simulated process. It runs on its own
// goroutine, but only while the engine has handed control to it. The body
// suspends through the Process passed to it and returns when the process has
// no more work to do.
type ProcessFunc func(proc *Process)

type processState int

const (
	procCreated processState = iota
	procRunnable
	procRunning
	procWaiting
	procDelayed
	procTerminated
)

// A Process is a cooperative unit of execution scheduled by an Engine.
//
// Exactly one goroutine in a simulation runs at any moment. The engine
// resumes a process, the process runs until it calls Wait or Delay or its
// body returns, and control passes back to the engine. Wait and Delay must
// only be called from the process's own body.
type Process struct {
	ID   string
	name string

	// order is the registration order. Processes woken by the same commit or
	// the same time advancement run in this order.
	order int

	engine *SerialEngine
	body   ProcessFunc
	state  processState

	resume chan struct{}
	yield  chan struct{}

	waitSigs []*Signal
	wakeAt   VTime

	panicValue any
}

// Name returns the name of the process.
func (p *Process) Name() string {
	return p.name
}

// Wait suspends the process until any one of the given signals commits a new
// value.
func (p *Process) Wait(sigs ...*Signal) {
	p.mustBeRunning()

	if len(sigs) == 0 {
		log.Panic("process must wait on at least one signal")
	}

	p.waitSigs = sigs
	p.state = procWaiting
	p.park()
}

// Delay suspends the process until virtual time advances by exactly d. The
// delay must be positive.
func (p *Process) Delay(d VTime) {
	p.mustBeRunning()

	if d <= 0 {
		log.Panic("delay must be positive")
	}

	p.wakeAt = p.engine.readNow() + d
	p.state = procDelayed
	p.park()
}

// Now returns the current virtual time.
func (p *Process) Now() VTime {
	return p.engine.readNow()
}

// Engine returns the engine that schedules the process.
func (p *Process) Engine() Engine {
	return p.engine
}

func (p *Process) park() {
	p.yield <- struct{}{}
	<-p.resume
	p.state = procRunning
}

func (p *Process) mustBeRunning() {
	if p.state != procRunning {
		log.Panic("suspension is only allowed from the process's own body")
	}
}

// start launches the goroutine that carries the process body. The goroutine
// stays parked until the engine resumes the process for the first time.
func (p *Process) start() {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.panicValue = r
			}
			p.state = procTerminated
			p.yield <- struct{}{}
		}()

		<-p.resume
		p.state = procRunning
		p.body(p)
	}()
}
