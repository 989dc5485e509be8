package sim

import (
	"fmt"
	"log"
	"sort"
	"sync"
)

// DefaultStallLimit bounds how many empty ticks ProcessNextTurn crosses
// before reporting ErrStalled. One simulated year at one-hour ticks.
const DefaultStallLimit Tick = 360 * 24

// A TurnResult describes one completed call to ProcessNextTurn.
type TurnResult struct {
	// TicksAdvanced is how many empty ticks were crossed before the
	// executed entry became due.
	TicksAdvanced Tick

	ExecutedID   string
	ExecutedName string
	ExecutedKind Kind

	// ExecuteErr is the error returned by the schedulable's Execute call.
	// Execution failures are recorded, not propagated.
	ExecuteErr error

	// CurrentTick is the tick at which the entry fired.
	CurrentTick Tick
}

// A Scheduler owns a time wheel and a time source and drives the turn
// loop: advance until something is due, fire exactly one entry, reschedule
// it if it wants to keep acting.
//
// Schedulables can additionally be registered with the scheduler, which
// lets them be activated and deactivated without losing track of them.
type Scheduler struct {
	HookableBase

	wheel      *IndexedTimeWheel[Schedulable]
	timeSource TimeSource
	stallLimit Tick

	// turnMu serializes ProcessNextTurn. The wheel's own mutex protects
	// each call, but the advance/pop sequence of a turn must not
	// interleave with another turn.
	turnMu sync.Mutex

	registryMu sync.Mutex
	registry   map[string]Schedulable
}

// NewScheduler creates a Scheduler over a wheel with bufferSize slots,
// driven by ts.
func NewScheduler(bufferSize int, ts TimeSource) *Scheduler {
	s := &Scheduler{
		wheel:      NewIndexedTimeWheel[Schedulable](bufferSize, ts),
		timeSource: ts,
		stallLimit: DefaultStallLimit,
		registry:   make(map[string]Schedulable),
	}

	return s
}

// WithStallLimit overrides the safety bound on empty-tick advancement.
func (s *Scheduler) WithStallLimit(limit Tick) *Scheduler {
	if limit <= 0 {
		log.Panicf("stall limit must be positive, got %d", limit)
	}

	s.stallLimit = limit

	return s
}

// CurrentTick returns the current tick of the scheduler's time source.
func (s *Scheduler) CurrentTick() Tick {
	return s.timeSource.CurrentTick()
}

// Schedule places item in the wheel at an absolute tick. A trigger in the
// past is refused without touching any state.
func (s *Scheduler) Schedule(item Schedulable, triggerTick Tick) error {
	now := s.timeSource.CurrentTick()
	if triggerTick < now {
		return fmt.Errorf(
			"%w: trigger tick %d is in the past, now is %d",
			ErrInvalidArgument, triggerTick, now)
	}

	return s.wheel.ScheduleAt(item.ID(), item, triggerTick)
}

// ScheduleWithDelay places item in the wheel under key, delay ticks from
// now.
func (s *Scheduler) ScheduleWithDelay(
	key string,
	item Schedulable,
	delay Tick,
) error {
	return s.wheel.ScheduleWithDelay(key, item, delay)
}

// Remove takes a pending schedule out of the wheel. An unknown id returns
// false; removal is idempotent.
func (s *Scheduler) Remove(id string) (Schedulable, bool) {
	return s.wheel.Remove(id)
}

// Register adds item to the scheduler's registry without scheduling it.
// Registration is what SetActive and Start operate on.
func (s *Scheduler) Register(item Schedulable) error {
	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	id := item.ID()
	if id == "" {
		return fmt.Errorf("%w: schedulable id must not be empty", ErrInvalidArgument)
	}

	if _, exists := s.registry[id]; exists {
		return fmt.Errorf("%w: %q is already registered", ErrDuplicateKey, id)
	}

	s.registry[id] = item

	return nil
}

// Deregister drops item's registration and any pending schedule. An
// unknown id returns false.
func (s *Scheduler) Deregister(id string) bool {
	s.registryMu.Lock()
	_, ok := s.registry[id]
	delete(s.registry, id)
	s.registryMu.Unlock()

	if !ok {
		return false
	}

	s.wheel.Remove(id)

	return true
}

// Registered returns the registered schedulable under id.
func (s *Scheduler) Registered(id string) (Schedulable, bool) {
	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	item, ok := s.registry[id]

	return item, ok
}

// RegisteredIDs returns the ids of all registered schedulables, sorted.
func (s *Scheduler) RegisteredIDs() []string {
	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	ids := make([]string, 0, len(s.registry))
	for id := range s.registry {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// Start installs an initial schedule for every registered schedulable that
// is active (or does not support deactivation) and is not scheduled yet.
func (s *Scheduler) Start() error {
	s.registryMu.Lock()
	items := make([]Schedulable, 0, len(s.registry))
	for _, item := range s.registry {
		items = append(items, item)
	}
	s.registryMu.Unlock()

	if len(items) == 0 {
		return fmt.Errorf(
			"%w: cannot start without registered schedulables", ErrInvalidArgument)
	}

	now := s.timeSource.CurrentTick()
	for _, item := range items {
		if act, ok := item.(Activatable); ok && !act.IsActive() {
			continue
		}

		if s.wheel.Contains(item.ID()) {
			continue
		}

		s.mustScheduleAt(item, item.NextTick(now))
	}

	return nil
}

// SetActive flips the active flag of a registered schedulable that
// supports deactivation. Deactivating removes any pending schedule but
// keeps the registration; reactivating installs a fresh schedule. Returns
// false when id is unknown or the schedulable cannot be deactivated.
func (s *Scheduler) SetActive(id string, active bool) bool {
	s.registryMu.Lock()
	item, ok := s.registry[id]
	s.registryMu.Unlock()

	if !ok {
		return false
	}

	act, ok := item.(Activatable)
	if !ok {
		return false
	}

	act.SetActive(active)

	if !active {
		s.wheel.Remove(id)
		return true
	}

	if !s.wheel.Contains(id) {
		now := s.timeSource.CurrentTick()
		s.mustScheduleAt(item, item.NextTick(now))
	}

	return true
}

// ProcessNextTurn advances time until the wheel's current slot holds an
// entry, fires exactly one entry, and reschedules it when it asks to keep
// acting. ErrStalled is returned when the stall limit is crossed without
// finding anything due; the simulated clock keeps whatever it advanced to.
//
// Concurrent calls are safe; turns run one at a time.
func (s *Scheduler) ProcessNextTurn() (*TurnResult, error) {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()

	var advanced Tick
	for !s.wheel.HasDueEvent() {
		if advanced >= s.stallLimit {
			return nil, fmt.Errorf("%w (advanced %d ticks)", ErrStalled, advanced)
		}

		s.timeSource.AdvanceOneTick()
		s.wheel.Advance()
		advanced++
	}

	key, item, ok := s.wheel.PopDueEvent()
	if !ok {
		log.Panic("the current slot emptied between the due check and the pop")
	}

	now := s.timeSource.CurrentTick()

	hookCtx := HookCtx{
		Domain: s,
		Pos:    HookPosBeforeExecute,
		Item:   item,
	}
	s.InvokeHook(hookCtx)

	execErr := item.Execute()

	result := &TurnResult{
		TicksAdvanced: advanced,
		ExecutedID:    key,
		ExecutedName:  item.Name(),
		ExecutedKind:  item.Kind(),
		ExecuteErr:    execErr,
		CurrentTick:   now,
	}

	if item.ShouldReschedule() {
		s.mustScheduleAt(item, item.NextTick(now))
	}

	hookCtx.Pos = HookPosAfterExecute
	hookCtx.Detail = result
	s.InvokeHook(hookCtx)

	return result, nil
}

// mustScheduleAt installs a schedule computed by the schedulable itself. A
// failure here means NextTick broke its contract, which the scheduler
// cannot recover from.
func (s *Scheduler) mustScheduleAt(item Schedulable, tick Tick) {
	if err := s.wheel.ScheduleAt(item.ID(), item, tick); err != nil {
		log.Panicf("rescheduling %q at tick %d: %v", item.ID(), tick, err)
	}
}

// PeekUpcoming previews the entries due within the next ticks ticks. See
// IndexedTimeWheel.PeekUpcoming for the non-authoritative contract.
func (s *Scheduler) PeekUpcoming(ticks, maxEvents int) []UpcomingEntry[Schedulable] {
	return s.wheel.PeekUpcoming(ticks, maxEvents)
}

// PendingCount returns the number of pending schedules, overflow included.
func (s *Scheduler) PendingCount() int {
	return s.wheel.Count()
}

// OverflowCount returns the number of schedules beyond the wheel horizon.
func (s *Scheduler) OverflowCount() int {
	return s.wheel.OverflowCount()
}

// BufferSize returns the wheel horizon in ticks.
func (s *Scheduler) BufferSize() int {
	return s.wheel.BufferSize()
}

// HasAnyEvents reports whether anything at all is scheduled.
func (s *Scheduler) HasAnyEvents() bool {
	return s.wheel.HasAnyEvents()
}

// Contains reports whether id currently holds a pending schedule.
func (s *Scheduler) Contains(id string) bool {
	return s.wheel.Contains(id)
}
