package sim

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() VTime
}

// A SimulationEndHandler is a handler that is called after the simulation
// ends.
type SimulationEndHandler interface {
	Handle(now VTime)
}

// An Engine is a unit that keeps a discrete event simulation running. It
// owns the virtual timeline, the registered processes, and the signals they
// communicate through.
type Engine interface {
	Hookable
	TimeTeller

	// AddProcess registers a process under the given name. Registration
	// order is the tie-break order for same-instant wake-ups. Processes can
	// only be added before Run is called.
	AddProcess(name string, body ProcessFunc) *Process

	// NewSignal creates a signal owned by this engine with the given
	// initial committed value.
	NewSignal(name string, initial any) *Signal

	// SetMaxTime bounds the simulated time. The engine stops before
	// processing any wake-up scheduled after the bound. Zero means
	// unbounded.
	SetMaxTime(t VTime)

	// Run drives the simulation until no process has a pending wake
	// condition, the time bound is reached, or Terminate is called.
	Run() error

	// Terminate requests the simulation to stop. It can be called from
	// inside a process body; the engine stops once the current delta cycle
	// completes.
	Terminate()

	// Pause will pause the simulation until Continue is called.
	Pause()

	// Continue will continue the paused simulation.
	Continue()

	// RegisterSimulationEndHandler registers a handler that performs some
	// actions after the simulation is finished.
	RegisterSimulationEndHandler(handler SimulationEndHandler)

	// Finished invokes all the registered SimulationEndHandler.
	Finished()
}
