package sim

import (
	"fmt"
	"log"
)

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Component is an element that is being simulated. A component owns
// signals and contributes processes to the engine that drives it.
type Component interface {
	Named
	Hookable

	// RegisterProcesses adds the component's processes to its engine.
	// The simulation calls it exactly once per component, before Run.
	RegisterProcesses()
}

// ComponentBase provides the name, the hook list, and the diagnostic sink
// that every component carries.
type ComponentBase struct {
	HookableBase

	name   string
	engine Engine
	logger *log.Logger
}

// NewComponentBase creates a new ComponentBase.
func NewComponentBase(engine Engine, name string) *ComponentBase {
	NameMustBeValid(name)

	c := new(ComponentBase)
	c.name = name
	c.engine = engine
	return c
}

// Name returns the name of the component.
func (c *ComponentBase) Name() string {
	return c.name
}

// Engine returns the engine that drives the component.
func (c *ComponentBase) Engine() Engine {
	return c.engine
}

// SetLogger assigns the diagnostic sink of the component. A nil logger
// silences the component.
func (c *ComponentBase) SetLogger(logger *log.Logger) {
	c.logger = logger
}

// Logger returns the diagnostic sink of the component, which can be nil.
func (c *ComponentBase) Logger() *log.Logger {
	return c.logger
}

// Logf writes one diagnostic record to the component's sink, stamped with
// the current virtual time and the component name. Diagnostics are a side
// channel and never carry control-flow decisions.
func (c *ComponentBase) Logf(format string, v ...any) {
	if c.logger == nil {
		return
	}

	c.logger.Printf("%.10f, %s, %s",
		c.engine.CurrentTime(), c.name, fmt.Sprintf(format, v...))
}
