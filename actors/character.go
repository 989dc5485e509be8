// Package actors provides the concrete schedulables of the game world:
// characters that act at random intervals, the season cycle, and scripted
// one-shot story events. The scheduling core knows none of these types; it
// only sees the sim.Schedulable contract.
package actors

import (
	"math"
	"math/rand"

	"github.com/rs/xid"

	"github.com/smokemonkey/godot-ctb-game-sub000/calendar"
	"github.com/smokemonkey/godot-ctb-game-sub000/sim"
)

// Characters act once every 1 to 180 days. The interval is drawn from a
// triangular distribution peaking at 90 days, which reads more naturally
// than a uniform draw.
const (
	actionIntervalMinDays  = 1
	actionIntervalMaxDays  = 180
	actionIntervalModeDays = 90
)

// A Character is an actor in the game world. Its schedule fires one action
// per interval; what the action does is provided by the embedder through
// WithAction.
type Character struct {
	id      string
	name    string
	faction string

	active  bool
	actions int

	rng    *rand.Rand
	action func() error
}

var _ sim.Schedulable = (*Character)(nil)
var _ sim.Activatable = (*Character)(nil)

// NewCharacter creates an active character with a generated id. A nil rng
// falls back to an unseeded source; pass a seeded one for reproducible
// runs.
func NewCharacter(name, faction string, rng *rand.Rand) *Character {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	return &Character{
		id:      xid.New().String(),
		name:    name,
		faction: faction,
		active:  true,
		rng:     rng,
	}
}

// WithAction sets the behavior that runs when the character acts.
func (c *Character) WithAction(action func() error) *Character {
	c.action = action
	return c
}

// ID returns the character's unique id.
func (c *Character) ID() string {
	return c.id
}

// Name returns the character's display name.
func (c *Character) Name() string {
	return c.name
}

// Faction returns the faction the character belongs to.
func (c *Character) Faction() string {
	return c.faction
}

// Kind returns sim.KindCharacterAction.
func (c *Character) Kind() sim.Kind {
	return sim.KindCharacterAction
}

// Execute performs one action.
func (c *Character) Execute() error {
	c.actions++

	if c.action != nil {
		return c.action()
	}

	return nil
}

// ActionCount returns how many times the character has acted.
func (c *Character) ActionCount() int {
	return c.actions
}

// NextTick draws the character's next action time.
func (c *Character) NextTick(now sim.Tick) sim.Tick {
	days := triangular(c.rng,
		actionIntervalMinDays, actionIntervalMaxDays, actionIntervalModeDays)

	return now + sim.Tick(days*calendar.HoursPerDay)
}

// ShouldReschedule reports whether the character keeps acting.
func (c *Character) ShouldReschedule() bool {
	return c.active
}

// IsActive reports whether the character can act.
func (c *Character) IsActive() bool {
	return c.active
}

// SetActive flips whether the character can act.
func (c *Character) SetActive(active bool) {
	c.active = active
}

// triangular draws from a triangular distribution over [min, max] with the
// given mode.
func triangular(rng *rand.Rand, min, max, mode float64) float64 {
	u := rng.Float64()
	cut := (mode - min) / (max - min)

	if u < cut {
		return min + math.Sqrt(u*(max-min)*(mode-min))
	}

	return max - math.Sqrt((1-u)*(max-min)*(max-mode))
}
