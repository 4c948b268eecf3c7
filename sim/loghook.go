package sim

import (
	"log"
)

// A LogHook is a hook that is responsible for recording information from
// the simulation
type LogHook interface {
	Hook
}

// LogHookBase provides the common logic for all LogHooks
type LogHookBase struct {
	*log.Logger
}
