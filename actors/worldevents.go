package actors

import (
	"github.com/rs/xid"

	"github.com/smokemonkey/godot-ctb-game-sub000/calendar"
	"github.com/smokemonkey/godot-ctb-game-sub000/sim"
)

// A Season of the 360-day year.
type Season int

// The four seasons, 90 days each.
const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

// String returns the season's name.
func (s Season) String() string {
	switch s {
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Autumn:
		return "Autumn"
	case Winter:
		return "Winter"
	default:
		return "Unknown"
	}
}

const seasonLengthDays = calendar.DaysPerYear / 4

// A SeasonCycle is a world event that flips the season every 90 days and
// reschedules itself forever.
type SeasonCycle struct {
	id      string
	current Season
}

var _ sim.Schedulable = (*SeasonCycle)(nil)

// NewSeasonCycle creates a cycle starting in spring.
func NewSeasonCycle() *SeasonCycle {
	return &SeasonCycle{id: "season-cycle"}
}

// ID returns the cycle's id.
func (s *SeasonCycle) ID() string {
	return s.id
}

// Name returns a display name.
func (s *SeasonCycle) Name() string {
	return "Season Cycle"
}

// Kind returns sim.KindSeasonChange.
func (s *SeasonCycle) Kind() sim.Kind {
	return sim.KindSeasonChange
}

// Execute advances to the next season.
func (s *SeasonCycle) Execute() error {
	s.current = (s.current + 1) % 4
	return nil
}

// Current returns the season in progress.
func (s *SeasonCycle) Current() Season {
	return s.current
}

// NextTick schedules the next season change, one season length away.
func (s *SeasonCycle) NextTick(now sim.Tick) sim.Tick {
	return now + sim.Tick(seasonLengthDays*calendar.HoursPerDay)
}

// ShouldReschedule always reports true: seasons never stop turning.
func (s *SeasonCycle) ShouldReschedule() bool {
	return true
}

// A StoryEvent is a scripted one-shot event. It fires once at the tick it
// was scheduled for and never reschedules.
type StoryEvent struct {
	id     string
	name   string
	action func() error
	fired  bool
}

var _ sim.Schedulable = (*StoryEvent)(nil)

// NewStoryEvent creates a story event with a generated id.
func NewStoryEvent(name string, action func() error) *StoryEvent {
	return &StoryEvent{
		id:     xid.New().String(),
		name:   name,
		action: action,
	}
}

// ID returns the event's id.
func (e *StoryEvent) ID() string {
	return e.id
}

// Name returns the event's display name.
func (e *StoryEvent) Name() string {
	return e.name
}

// Kind returns sim.KindStoryEvent.
func (e *StoryEvent) Kind() sim.Kind {
	return sim.KindStoryEvent
}

// Execute runs the scripted action.
func (e *StoryEvent) Execute() error {
	e.fired = true

	if e.action != nil {
		return e.action()
	}

	return nil
}

// Fired reports whether the event has run.
func (e *StoryEvent) Fired() bool {
	return e.fired
}

// NextTick is never consulted for a one-shot event.
func (e *StoryEvent) NextTick(now sim.Tick) sim.Tick {
	return now
}

// ShouldReschedule always reports false.
func (e *StoryEvent) ShouldReschedule() bool {
	return false
}
