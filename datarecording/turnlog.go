package datarecording

import (
	"github.com/smokemonkey/godot-ctb-game-sub000/sim"
)

// TurnLogTable is the name of the table the TurnRecorder writes into.
const TurnLogTable = "turn_log"

// A TurnRecord is one row of the turn log: one executed action.
type TurnRecord struct {
	Turn          int64
	Tick          int64
	TicksAdvanced int64
	ActorID       string
	ActorName     string
	Kind          string
	Error         string
}

// A TurnRecorder is a sim.Hook that appends one TurnRecord per executed
// action to a DataRecorder.
type TurnRecorder struct {
	recorder DataRecorder
	turn     int64
}

var _ sim.Hook = (*TurnRecorder)(nil)

// NewTurnRecorder creates the turn-log table and returns the hook to
// register with the scheduler.
func NewTurnRecorder(recorder DataRecorder) *TurnRecorder {
	recorder.CreateTable(TurnLogTable, TurnRecord{})

	return &TurnRecorder{recorder: recorder}
}

// Func records the turn result carried by the after-execute hook.
func (r *TurnRecorder) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosAfterExecute {
		return
	}

	result, ok := ctx.Detail.(*sim.TurnResult)
	if !ok {
		return
	}

	r.turn++

	execErr := ""
	if result.ExecuteErr != nil {
		execErr = result.ExecuteErr.Error()
	}

	r.recorder.InsertData(TurnLogTable, TurnRecord{
		Turn:          r.turn,
		Tick:          int64(result.CurrentTick),
		TicksAdvanced: int64(result.TicksAdvanced),
		ActorID:       result.ExecutedID,
		ActorName:     result.ExecutedName,
		Kind:          result.ExecutedKind.String(),
		Error:         execErr,
	})
}
