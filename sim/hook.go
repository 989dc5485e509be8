package sim

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// HookPosBeforeExecute is a hook position that triggers right before a due
// schedulable runs.
var HookPosBeforeExecute = &HookPos{Name: "BeforeExecute"}

// HookPosAfterExecute is a hook position that triggers after a due
// schedulable has run and been rescheduled. Its Detail carries the
// *TurnResult of the turn.
var HookPosAfterExecute = &HookPos{Name: "AfterExecute"}

// HookCtx is the context that holds all the information about the site
// where a hook is triggered.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   Schedulable
	Detail interface{}
}

// Hookable defines an object that accepts Hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)
}

// A Hook is a short piece of program invoked by a hookable object. Hooks
// run synchronously on the simulation goroutine; the scheduler's own
// correctness never depends on them.
type Hook interface {
	// Func determines what to do when the hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides the utility functions for types that implement
// the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// InvokeHook triggers the registered hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
