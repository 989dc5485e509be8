// Package calendar provides the simulation's time source: a simplified
// 360-day year with twelve 30-day months and 24-hour days, counted in
// hours from an epoch year. Only this package knows that a tick is an
// hour; the scheduling core stays unit-agnostic.
package calendar

import (
	"fmt"
	"sync"

	"github.com/smokemonkey/godot-ctb-game-sub000/sim"
)

// Calendar layout constants. They are explicit values passed around by the
// package, not process-wide configuration.
const (
	HoursPerDay   = 24
	DaysPerMonth  = 30
	MonthsPerYear = 12
	DaysPerYear   = DaysPerMonth * MonthsPerYear
	HoursPerYear  = HoursPerDay * DaysPerYear

	// EpochStartYear is the Gregorian year at tick zero. Negative years
	// are BCE.
	EpochStartYear = -722
)

// A Unit is a step size for Advance.
type Unit int

// The units the calendar can advance by.
const (
	Hour Unit = iota
	Day
)

// A Calendar tracks the simulated date and implements sim.TimeSource. An
// era can be anchored onto it so dates can be rendered in regnal style
// ("Kaiyuan year 2") next to the Gregorian one.
//
// A small mutex guards the fields so an inspection goroutine can format
// dates while the simulation goroutine advances time.
type Calendar struct {
	mu sync.Mutex

	timestamp sim.Tick

	eraName      string
	eraStartYear int
}

var _ sim.TimeSource = (*Calendar)(nil)

// New creates a Calendar at tick zero with an unnamed era anchored at the
// epoch.
func New() *Calendar {
	return &Calendar{
		eraName:      "",
		eraStartYear: EpochStartYear,
	}
}

// CurrentTick returns the total hours elapsed since the epoch.
func (c *Calendar) CurrentTick() sim.Tick {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.timestamp
}

// AdvanceOneTick moves the calendar forward by one hour.
func (c *Calendar) AdvanceOneTick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timestamp++
}

// Advance moves the calendar forward by n units.
func (c *Calendar) Advance(n sim.Tick, unit Unit) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch unit {
	case Hour:
		c.timestamp += n
	case Day:
		c.timestamp += n * HoursPerDay
	}
}

// GregorianYear returns the current Gregorian year. Negative years are
// BCE.
func (c *Calendar) GregorianYear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.gregorianYear()
}

func (c *Calendar) gregorianYear() int {
	totalDays := int(c.timestamp) / HoursPerDay
	return EpochStartYear + totalDays/DaysPerYear
}

// DayInYear returns the day within the year, 1 to 360.
func (c *Calendar) DayInYear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dayInYear()
}

func (c *Calendar) dayInYear() int {
	totalDays := int(c.timestamp) / HoursPerDay
	return totalDays%DaysPerYear + 1
}

// Month returns the month, 1 to 12.
func (c *Calendar) Month() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.month()
}

func (c *Calendar) month() int {
	return (c.dayInYear()-1)/DaysPerMonth + 1
}

// DayInMonth returns the day within the month, 1 to 30.
func (c *Calendar) DayInMonth() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dayInMonth()
}

func (c *Calendar) dayInMonth() int {
	return (c.dayInYear()-1)%DaysPerMonth + 1
}

// HourInDay returns the hour within the day, 0 to 23.
func (c *Calendar) HourInDay() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.hourInDay()
}

func (c *Calendar) hourInDay() int {
	return int(c.timestamp) % HoursPerDay
}

// AnchorEra declares that the first year of era name corresponds to the
// given Gregorian year. Anchoring into the future is refused: the era
// would have no current year to show.
func (c *Calendar) AnchorEra(name string, gregorianYear int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gregorianYear > c.gregorianYear() {
		return fmt.Errorf(
			"cannot anchor era %q at year %d: current year is %d",
			name, gregorianYear, c.gregorianYear())
	}

	c.eraName = name
	c.eraStartYear = gregorianYear

	return nil
}

// StartNewEra begins a new era in the current year.
func (c *Calendar) StartNewEra(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.eraName = name
	c.eraStartYear = c.gregorianYear()
}

// EraName returns the name of the anchored era, empty if none was named.
func (c *Calendar) EraName() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.eraName
}

// EraYear returns the current year counted within the anchored era,
// starting at 1.
func (c *Calendar) EraYear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.gregorianYear() - c.eraStartYear + 1
}

// FormatGregorian renders the current date in Gregorian style.
func (c *Calendar) FormatGregorian(showHour bool) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.formatGregorian(showHour)
}

func (c *Calendar) formatGregorian(showHour bool) string {
	year := c.gregorianYear()
	yearStr := fmt.Sprintf("%d CE", year)
	if year < 0 {
		yearStr = fmt.Sprintf("%d BCE", -year)
	}

	if showHour {
		return fmt.Sprintf("%s, month %d, day %d, hour %d",
			yearStr, c.month(), c.dayInMonth(), c.hourInDay())
	}

	return fmt.Sprintf("%s, month %d, day %d",
		yearStr, c.month(), c.dayInMonth())
}

// FormatEra renders the current date in era style, falling back to the
// Gregorian style when no era has been named.
func (c *Calendar) FormatEra(showHour bool) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := c.eraName
	if name == "" {
		return c.formatGregorian(showHour)
	}

	eraYear := c.gregorianYear() - c.eraStartYear + 1

	if showHour {
		return fmt.Sprintf("%s year %d, month %d, day %d, hour %d",
			name, eraYear, c.month(), c.dayInMonth(), c.hourInDay())
	}

	return fmt.Sprintf("%s year %d, month %d, day %d",
		name, eraYear, c.month(), c.dayInMonth())
}

// Reset puts the calendar back to tick zero with the epoch anchor.
func (c *Calendar) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timestamp = 0
	c.eraName = ""
	c.eraStartYear = EpochStartYear
}
