package sim

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookCtx is the context that holds all the information about the site that
// a hook is triggered
type HookCtx struct {
	Domain Hookable
	Now    VTime
	Pos    *HookPos
	Item   any
	Detail any
}

// Hookable defines an object that accept Hooks
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)

	// NumHooks returns the number of hooks registered.
	NumHooks() int
}

// HookPosProcessResume is a hook position that triggers right before the
// engine hands control to a process.
var HookPosProcessResume = &HookPos{Name: "ProcessResume"}

// HookPosProcessSuspend is a hook position that triggers after a process
// handed control back by waiting on signals or a delay.
var HookPosProcessSuspend = &HookPos{Name: "ProcessSuspend"}

// HookPosProcessTerminate is a hook position that triggers after a process
// body returned.
var HookPosProcessTerminate = &HookPos{Name: "ProcessTerminate"}

// HookPosSignalCommit is a hook position that triggers when a staged signal
// write is committed with a changed value.
var HookPosSignalCommit = &HookPos{Name: "SignalCommit"}

// HookPosTimeAdvance is a hook position that triggers when the engine moves
// virtual time forward.
var HookPosTimeAdvance = &HookPos{Name: "TimeAdvance"}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other type that
// implement the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// NewHookableBase creates a HookableBase object
func NewHookableBase() *HookableBase {
	h := new(HookableBase)
	h.Hooks = make([]Hook, 0)
	return h
}

// AcceptHook register a hook
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook triggers the register Hooks
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
