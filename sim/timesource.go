package sim

// A Tick is one discrete unit of simulated time. The scheduling core is
// unit-agnostic: whether a tick is an hour, a day, or a combat round is
// decided by the TimeSource implementation.
type Tick int64

// TimeTeller can be used to get the current tick.
type TimeTeller interface {
	CurrentTick() Tick
}

// TimeAdvancer can move the simulated time forward by exactly one tick.
type TimeAdvancer interface {
	AdvanceOneTick()
}

// A TimeSource owns the simulated time. The Scheduler advances it exactly
// once per wheel rotation and never mutates time through any other path.
type TimeSource interface {
	TimeTeller
	TimeAdvancer
}
