package sim

import "log"

// A LogHook is a hook that records information from the running scheduler.
type LogHook interface {
	Hook
}

// LogHookBase provides the common logic for all LogHooks.
type LogHookBase struct {
	*log.Logger
}

// ActionLogger is a hook that prints one line per executed action.
type ActionLogger struct {
	LogHookBase
}

// NewActionLogger returns an ActionLogger that writes into logger.
func NewActionLogger(logger *log.Logger) *ActionLogger {
	h := new(ActionLogger)
	h.Logger = logger
	return h
}

// Func writes the turn information into the logger.
func (h *ActionLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosAfterExecute {
		return
	}

	result, ok := ctx.Detail.(*TurnResult)
	if !ok {
		return
	}

	if result.ExecuteErr != nil {
		h.Printf("tick %d, %s %q failed: %v",
			result.CurrentTick, result.ExecutedKind,
			result.ExecutedName, result.ExecuteErr)
		return
	}

	h.Printf("tick %d, %s %q, advanced %d",
		result.CurrentTick, result.ExecutedKind,
		result.ExecutedName, result.TicksAdvanced)
}
