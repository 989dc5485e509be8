package sim

// Kind describes what category of action a Schedulable represents.
type Kind int

// The kinds of actions the scheduler distinguishes. The core never branches
// on a concrete implementer type; kinds exist for reporting and logging.
const (
	KindCharacterAction Kind = iota
	KindSeasonChange
	KindWeatherChange
	KindStoryEvent
	KindCustom
)

// String returns a human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindCharacterAction:
		return "CharacterAction"
	case KindSeasonChange:
		return "SeasonChange"
	case KindWeatherChange:
		return "WeatherChange"
	case KindStoryEvent:
		return "StoryEvent"
	case KindCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// A Schedulable is anything that can be placed in the time wheel and fired
// when its tick comes up. The scheduler dispatches through this contract
// only.
type Schedulable interface {
	// ID returns the identifier of the schedulable. It must be unique among
	// all currently scheduled entries and must not change while scheduled.
	ID() string

	// Name returns a display name for reporting.
	Name() string

	// Kind returns the action category.
	Kind() Kind

	// Execute performs the action. Side effects happen outside the core;
	// a returned error is recorded, not fatal.
	Execute() error

	// NextTick computes the absolute tick of the next action, given the
	// current tick.
	NextTick(now Tick) Tick

	// ShouldReschedule reports whether the scheduler should install a new
	// schedule for this id after execution.
	ShouldReschedule() bool
}

// Activatable is an optional capability for schedulables that can be
// switched off without being deregistered. Deactivated schedulables keep
// their registration but hold no pending schedule.
type Activatable interface {
	IsActive() bool
	SetActive(active bool)
}
