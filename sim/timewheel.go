package sim

import (
	"fmt"
	"log"
	"sync"
)

// overflowSlot marks a node that sits in the overflow pool rather than in
// one of the wheel's slots.
const overflowSlot = -1

// An eventNode holds one scheduled entry. The wheel owns the node
// exclusively between schedule and pop/remove; the value is handed back to
// the caller when the node is destroyed.
type eventNode[T any] struct {
	key          string
	value        T
	slotIndex    int
	absoluteTick Tick
}

// An UpcomingEntry is one element of a PeekUpcoming snapshot.
type UpcomingEntry[T any] struct {
	Key   string
	Tick  Tick
	Value T
}

// An IndexedTimeWheel is a fixed-size circular buffer of tick slots with an
// index for O(1) lookup and removal, plus an overflow pool for entries
// beyond the wheel's horizon. Entries due at the same tick fire in
// insertion order.
//
// The slot at offset is the current turn's action buffer: all of its
// entries are due now, and the wheel may only rotate past it once it has
// been drained.
//
// A single mutex guards all wheel state, so an inspection goroutine can
// safely read snapshots while the simulation goroutine mutates.
type IndexedTimeWheel[T any] struct {
	mu sync.Mutex

	bufferSize int
	slots      [][]*eventNode[T]
	offset     int

	index    map[string]*eventNode[T]
	overflow []*eventNode[T]

	timeTeller TimeTeller
}

// NewIndexedTimeWheel creates a wheel with bufferSize slots that reads the
// current tick from tt. A non-positive bufferSize is a programming error.
func NewIndexedTimeWheel[T any](bufferSize int, tt TimeTeller) *IndexedTimeWheel[T] {
	if bufferSize <= 0 {
		log.Panicf("time wheel buffer size must be positive, got %d", bufferSize)
	}

	w := &IndexedTimeWheel[T]{
		bufferSize: bufferSize,
		slots:      make([][]*eventNode[T], bufferSize),
		index:      make(map[string]*eventNode[T]),
		timeTeller: tt,
	}

	return w
}

// ScheduleWithDelay schedules value under key, delay ticks from now. An
// entry within the horizon goes to the tail of its slot; a farther one
// goes to the overflow pool.
func (w *IndexedTimeWheel[T]) ScheduleWithDelay(
	key string,
	value T,
	delay Tick,
) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if key == "" {
		return fmt.Errorf("%w: key must not be empty", ErrInvalidArgument)
	}

	if delay < 0 {
		return fmt.Errorf(
			"%w: delay must be non-negative, got %d", ErrInvalidArgument, delay)
	}

	if _, exists := w.index[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}

	now := w.timeTeller.CurrentTick()
	node := &eventNode[T]{
		key:          key,
		value:        value,
		absoluteTick: now + delay,
	}

	if delay >= Tick(w.bufferSize) {
		node.slotIndex = overflowSlot
		w.insertOverflow(node)
	} else {
		target := (w.offset + int(delay)) % w.bufferSize
		node.slotIndex = target
		w.slots[target] = append(w.slots[target], node)
	}

	w.index[key] = node

	return nil
}

// ScheduleAt schedules value under key at an absolute tick.
func (w *IndexedTimeWheel[T]) ScheduleAt(
	key string,
	value T,
	tick Tick,
) error {
	now := w.timeTeller.CurrentTick()
	if tick < now {
		return fmt.Errorf(
			"%w: cannot schedule at tick %d, now is %d",
			ErrInvalidArgument, tick, now)
	}

	return w.ScheduleWithDelay(key, value, tick-now)
}

// insertOverflow places a node in the overflow pool, keeping it sorted
// ascending by trigger tick. The scan starts from the tail: overflow
// entries are rare and tend to arrive in near-sorted order. Equal-tick
// entries keep their insertion order.
func (w *IndexedTimeWheel[T]) insertOverflow(node *eventNode[T]) {
	i := len(w.overflow)
	for i > 0 && w.overflow[i-1].absoluteTick > node.absoluteTick {
		i--
	}

	w.overflow = append(w.overflow, nil)
	copy(w.overflow[i+1:], w.overflow[i:])
	w.overflow[i] = node
}

// PopDueEvent removes and returns the oldest-inserted entry of the current
// slot. The third return value is false when the slot is empty.
func (w *IndexedTimeWheel[T]) PopDueEvent() (string, T, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	slot := w.slots[w.offset]
	if len(slot) == 0 {
		var zero T
		return "", zero, false
	}

	node := slot[0]
	w.slots[w.offset] = slot[1:]
	delete(w.index, node.key)

	return node.key, node.value, true
}

// Advance rotates the wheel by one tick and migrates the overflow entries
// that just entered the horizon into the farthest slot.
//
// Caller contract: the current slot must be drained through PopDueEvent
// first. Advancing past a non-empty slot would silently skip due events,
// so a violation is treated as a scheduler bug and panics.
func (w *IndexedTimeWheel[T]) Advance() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.slots[w.offset]) > 0 {
		log.Panic("advancing the wheel while the current slot still holds events")
	}

	w.offset = (w.offset + 1) % w.bufferSize

	// Overflow entries are sorted, so everything that must migrate is a
	// prefix, and every migrating entry sits exactly at the new horizon
	// boundary: anything nearer would already have been migrated.
	horizon := w.timeTeller.CurrentTick() + Tick(w.bufferSize) - 1
	for len(w.overflow) > 0 && w.overflow[0].absoluteTick <= horizon {
		node := w.overflow[0]
		if node.absoluteTick != horizon {
			log.Panicf(
				"overflow entry %q at tick %d is below the horizon boundary %d",
				node.key, node.absoluteTick, horizon)
		}

		w.overflow = w.overflow[1:]

		target := (w.offset - 1 + w.bufferSize) % w.bufferSize
		node.slotIndex = target
		w.slots[target] = append(w.slots[target], node)
	}
}

// Remove takes an entry out of the wheel or the overflow pool and returns
// its value. An unknown key returns false; removal is idempotent.
func (w *IndexedTimeWheel[T]) Remove(key string) (T, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	node, ok := w.index[key]
	if !ok {
		var zero T
		return zero, false
	}

	if node.slotIndex == overflowSlot {
		for i, n := range w.overflow {
			if n.key == key {
				w.overflow = append(w.overflow[:i], w.overflow[i+1:]...)
				break
			}
		}
	} else {
		slot := w.slots[node.slotIndex]
		for i, n := range slot {
			if n.key == key {
				w.slots[node.slotIndex] = append(slot[:i], slot[i+1:]...)
				break
			}
		}
	}

	delete(w.index, key)

	return node.value, true
}

// PeekUpcoming previews the entries due within the next ticks ticks, up to
// maxEvents of them (0 means no limit).
//
// The preview is for display and inspection only. It scans the wheel's
// slots and may omit overflow entries; execution order must never be
// decided from it. Nothing is mutated through this call.
func (w *IndexedTimeWheel[T]) PeekUpcoming(ticks, maxEvents int) []UpcomingEntry[T] {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ticks > w.bufferSize {
		ticks = w.bufferSize
	}

	var entries []UpcomingEntry[T]
	for i := 0; i < ticks; i++ {
		slot := w.slots[(w.offset+i)%w.bufferSize]
		for _, node := range slot {
			entries = append(entries, UpcomingEntry[T]{
				Key:   node.key,
				Tick:  node.absoluteTick,
				Value: node.value,
			})

			if maxEvents > 0 && len(entries) >= maxEvents {
				return entries
			}
		}
	}

	return entries
}

// Contains reports whether key is currently scheduled.
func (w *IndexedTimeWheel[T]) Contains(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, ok := w.index[key]

	return ok
}

// Get returns the scheduled value under key without removing it.
func (w *IndexedTimeWheel[T]) Get(key string) (T, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	node, ok := w.index[key]
	if !ok {
		var zero T
		return zero, false
	}

	return node.value, true
}

// Count returns the number of scheduled entries, overflow included.
func (w *IndexedTimeWheel[T]) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.index)
}

// HasAnyEvents reports whether the wheel or the overflow pool holds any
// entry at all.
func (w *IndexedTimeWheel[T]) HasAnyEvents() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.index) > 0
}

// HasDueEvent reports whether the current slot holds an entry.
func (w *IndexedTimeWheel[T]) HasDueEvent() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.slots[w.offset]) > 0
}

// OverflowCount returns the number of entries waiting in the overflow pool.
func (w *IndexedTimeWheel[T]) OverflowCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.overflow)
}

// BufferSize returns the wheel's horizon in ticks.
func (w *IndexedTimeWheel[T]) BufferSize() int {
	return w.bufferSize
}
