// Package simulation assembles a runnable network simulation: the event
// engine, the transaction engines of one network, result recording, packet
// tracing, and the monitoring server.
package simulation

import (
	"log"

	"github.com/sarchlab/noctlm/datarecording"
	"github.com/sarchlab/noctlm/monitoring"
	"github.com/sarchlab/noctlm/noc"
	"github.com/sarchlab/noctlm/noc/tlm"
	"github.com/sarchlab/noctlm/sim"
	"github.com/sarchlab/noctlm/tracing"
)

// A Simulation provides the services required to run one network simulation.
type Simulation struct {
	id string

	engine       sim.Engine
	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor
	visTracer    *tracing.DBTracer

	network *noc.Network
	system  *tlm.System

	endpoints         []tlm.Endpoint
	endpointNameIndex map[string]int

	configured bool
}

// ID returns the unique identifier of this simulation run.
func (s *Simulation) ID() string {
	return s.id
}

// Engine returns the event engine driving the simulation.
func (s *Simulation) Engine() sim.Engine {
	return s.engine
}

// Network returns the simulated network topology.
func (s *Simulation) Network() *noc.Network {
	return s.network
}

// System returns the transaction engines of the simulated network.
func (s *Simulation) System() *tlm.System {
	return s.system
}

// DataRecorder returns the data recorder used in the simulation. It is nil
// when recording is disabled.
func (s *Simulation) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// Monitor returns the monitor used in the simulation. It is nil when
// monitoring is disabled.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// VisTracer returns the database tracer recording packet journeys. It is
// nil when recording is disabled.
func (s *Simulation) VisTracer() *tracing.DBTracer {
	return s.visTracer
}

// RegisterEndpoint registers an endpoint with the simulation. Endpoints of
// the built system are registered automatically.
func (s *Simulation) RegisterEndpoint(e tlm.Endpoint) {
	name := e.Name()
	if _, registered := s.endpointNameIndex[name]; registered {
		log.Panic("endpoint " + name + " already registered")
	}

	s.endpoints = append(s.endpoints, e)
	s.endpointNameIndex[name] = len(s.endpoints) - 1

	if s.monitor != nil {
		s.monitor.RegisterEntity(e)
	}

	if s.visTracer != nil {
		tracing.CollectTrace(e.(tracing.NamedHookable), s.visTracer)
	}
}

// EndpointByName returns the endpoint with the given name, or nil.
func (s *Simulation) EndpointByName(name string) tlm.Endpoint {
	index, found := s.endpointNameIndex[name]
	if !found {
		return nil
	}

	return s.endpoints[index]
}

// IPCoreAt returns the ipcore engine attached to the router with the given
// address. Generators must be registered on it before Run.
func (s *Simulation) IPCoreAt(addr int) *tlm.IPCoreEngine {
	core, found := s.system.IPCoreAt(addr)
	if !found {
		log.Panicf("no ipcore at address %d", addr)
	}

	return core
}

// Configure turns every registered endpoint into kernel processes. It runs
// at most once; Run calls it if it has not run yet. Generators registered
// after Configure are not simulated.
func (s *Simulation) Configure() {
	if s.configured {
		log.Panic("simulation already configured")
	}
	s.configured = true

	for _, e := range s.endpoints {
		e.RegisterProcesses()
	}
}

// Run configures the simulation if needed and drives it to completion.
func (s *Simulation) Run() error {
	if !s.configured {
		s.Configure()
	}

	err := s.engine.Run()

	s.engine.Finished()

	return err
}

// Terminate flushes and closes the simulation output.
func (s *Simulation) Terminate() {
	if s.dataRecorder != nil {
		s.dataRecorder.Close()
	}
}
