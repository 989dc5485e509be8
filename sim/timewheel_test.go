package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("IndexedTimeWheel", func() {
	var (
		mockCtrl *gomock.Controller
		ts       *MockTimeSource
		now      Tick
		wheel    *IndexedTimeWheel[string]
	)

	// advance moves the external clock one tick and rotates the wheel, the
	// way the scheduler does it.
	advance := func() {
		now++
		wheel.Advance()
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())

		now = 0
		ts = NewMockTimeSource(mockCtrl)
		ts.EXPECT().CurrentTick().
			DoAndReturn(func() Tick { return now }).
			AnyTimes()

		wheel = NewIndexedTimeWheel[string](10, ts)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should refuse a non-positive buffer size", func() {
		Expect(func() {
			NewIndexedTimeWheel[string](0, ts)
		}).To(Panic())
	})

	It("should refuse a negative delay", func() {
		err := wheel.ScheduleWithDelay("a", "x", -1)

		Expect(err).To(MatchError(ErrInvalidArgument))
		Expect(wheel.Count()).To(Equal(0))
	})

	It("should refuse an empty key", func() {
		err := wheel.ScheduleWithDelay("", "x", 1)

		Expect(err).To(MatchError(ErrInvalidArgument))
	})

	It("should refuse an absolute tick in the past", func() {
		now = 5

		err := wheel.ScheduleAt("a", "x", 4)

		Expect(err).To(MatchError(ErrInvalidArgument))
	})

	It("should refuse a duplicate key regardless of delay", func() {
		Expect(wheel.ScheduleWithDelay("a", "x", 2)).To(Succeed())

		Expect(wheel.ScheduleWithDelay("a", "y", 2)).
			To(MatchError(ErrDuplicateKey))
		Expect(wheel.ScheduleWithDelay("a", "y", 7)).
			To(MatchError(ErrDuplicateKey))
		Expect(wheel.ScheduleWithDelay("a", "y", 25)).
			To(MatchError(ErrDuplicateKey))
		Expect(wheel.Count()).To(Equal(1))
	})

	It("should pop an entry scheduled with delay zero in the same turn", func() {
		Expect(wheel.ScheduleWithDelay("a", "x", 0)).To(Succeed())

		Expect(wheel.HasDueEvent()).To(BeTrue())

		key, value, ok := wheel.PopDueEvent()
		Expect(ok).To(BeTrue())
		Expect(key).To(Equal("a"))
		Expect(value).To(Equal("x"))
	})

	It("should deliver an entry exactly at its trigger tick", func() {
		Expect(wheel.ScheduleWithDelay("a", "x", 3)).To(Succeed())

		for i := 0; i < 3; i++ {
			_, _, ok := wheel.PopDueEvent()
			Expect(ok).To(BeFalse())
			advance()
		}

		key, value, ok := wheel.PopDueEvent()
		Expect(ok).To(BeTrue())
		Expect(key).To(Equal("a"))
		Expect(value).To(Equal("x"))
		Expect(wheel.Count()).To(Equal(0))

		_, _, ok = wheel.PopDueEvent()
		Expect(ok).To(BeFalse())
	})

	It("should pop same-tick entries in insertion order", func() {
		Expect(wheel.ScheduleWithDelay("k1", "first", 2)).To(Succeed())
		Expect(wheel.ScheduleWithDelay("k2", "second", 2)).To(Succeed())

		advance()
		advance()

		key, _, _ := wheel.PopDueEvent()
		Expect(key).To(Equal("k1"))
		key, _, _ = wheel.PopDueEvent()
		Expect(key).To(Equal("k2"))
	})

	It("should run scenario A: two entries, popped at their ticks", func() {
		Expect(wheel.ScheduleWithDelay("a", "X", 2)).To(Succeed())
		Expect(wheel.ScheduleWithDelay("b", "Y", 5)).To(Succeed())

		for !wheel.HasDueEvent() {
			advance()
		}
		Expect(now).To(Equal(Tick(2)))
		key, value, _ := wheel.PopDueEvent()
		Expect(key).To(Equal("a"))
		Expect(value).To(Equal("X"))

		for !wheel.HasDueEvent() {
			advance()
		}
		Expect(now).To(Equal(Tick(5)))
		key, value, _ = wheel.PopDueEvent()
		Expect(key).To(Equal("b"))
		Expect(value).To(Equal("Y"))

		Expect(wheel.Count()).To(Equal(0))
	})

	It("should place an entry at the horizon edge directly in a slot", func() {
		Expect(wheel.ScheduleWithDelay("edge", "x", 9)).To(Succeed())

		Expect(wheel.OverflowCount()).To(Equal(0))
	})

	It("should hold an entry beyond the horizon in the overflow pool", func() {
		Expect(wheel.ScheduleWithDelay("far", "x", 10)).To(Succeed())

		Expect(wheel.OverflowCount()).To(Equal(1))
		Expect(wheel.Contains("far")).To(BeTrue())
		Expect(wheel.Count()).To(Equal(1))
	})

	It("should migrate an overflow entry at the horizon boundary and fire it at its tick", func() {
		Expect(wheel.ScheduleWithDelay("far", "x", 10)).To(Succeed())

		// One rotation brings tick 10 onto the horizon boundary.
		advance()
		Expect(wheel.OverflowCount()).To(Equal(0))

		for now < 10 {
			_, _, ok := wheel.PopDueEvent()
			Expect(ok).To(BeFalse())
			advance()
		}

		key, value, ok := wheel.PopDueEvent()
		Expect(ok).To(BeTrue())
		Expect(key).To(Equal("far"))
		Expect(value).To(Equal("x"))
	})

	It("should run scenario B: a delay twice the buffer size on a small wheel", func() {
		small := NewIndexedTimeWheel[string](5, ts)
		Expect(small.ScheduleWithDelay("f", "Z", 10)).To(Succeed())

		for now < 10 {
			_, _, ok := small.PopDueEvent()
			Expect(ok).To(BeFalse())
			now++
			small.Advance()
		}

		key, value, ok := small.PopDueEvent()
		Expect(ok).To(BeTrue())
		Expect(key).To(Equal("f"))
		Expect(value).To(Equal("Z"))
	})

	It("should keep overflow entries ordered across mixed insertions", func() {
		Expect(wheel.ScheduleWithDelay("c", "3", 30)).To(Succeed())
		Expect(wheel.ScheduleWithDelay("a", "1", 12)).To(Succeed())
		Expect(wheel.ScheduleWithDelay("b", "2", 21)).To(Succeed())

		var popped []string
		for now < 31 {
			key, _, ok := wheel.PopDueEvent()
			if ok {
				popped = append(popped, key)
				continue
			}
			advance()
		}

		Expect(popped).To(Equal([]string{"a", "b", "c"}))
	})

	It("should keep insertion order for overflow entries at the same tick", func() {
		Expect(wheel.ScheduleWithDelay("a", "1", 15)).To(Succeed())
		Expect(wheel.ScheduleWithDelay("d", "4", 20)).To(Succeed())
		Expect(wheel.ScheduleWithDelay("b", "2", 15)).To(Succeed())
		Expect(wheel.ScheduleWithDelay("c", "3", 15)).To(Succeed())

		var popped []string
		for now < 21 {
			key, _, ok := wheel.PopDueEvent()
			if ok {
				popped = append(popped, key)
				continue
			}
			advance()
		}

		Expect(popped).To(Equal([]string{"a", "b", "c", "d"}))
	})

	It("should remove a slotted entry and leave its tick silent", func() {
		Expect(wheel.ScheduleWithDelay("a", "x", 2)).To(Succeed())
		Expect(wheel.ScheduleWithDelay("b", "y", 5)).To(Succeed())

		value, ok := wheel.Remove("a")
		Expect(ok).To(BeTrue())
		Expect(value).To(Equal("x"))
		Expect(wheel.Contains("a")).To(BeFalse())
		Expect(wheel.Count()).To(Equal(1))

		advance()
		advance()
		_, _, popped := wheel.PopDueEvent()
		Expect(popped).To(BeFalse())
	})

	It("should remove an overflow entry", func() {
		Expect(wheel.ScheduleWithDelay("far", "x", 15)).To(Succeed())

		_, ok := wheel.Remove("far")
		Expect(ok).To(BeTrue())
		Expect(wheel.OverflowCount()).To(Equal(0))
		Expect(wheel.HasAnyEvents()).To(BeFalse())
	})

	It("should treat removing an unknown key as a normal empty result", func() {
		_, ok := wheel.Remove("ghost")

		Expect(ok).To(BeFalse())
	})

	It("should panic when advanced past a non-empty slot", func() {
		Expect(wheel.ScheduleWithDelay("a", "x", 0)).To(Succeed())

		Expect(func() { wheel.Advance() }).To(Panic())
	})

	It("should expose scheduled entries through Get without removing them", func() {
		Expect(wheel.ScheduleWithDelay("a", "x", 4)).To(Succeed())

		value, ok := wheel.Get("a")
		Expect(ok).To(BeTrue())
		Expect(value).To(Equal("x"))
		Expect(wheel.Count()).To(Equal(1))

		_, ok = wheel.Get("ghost")
		Expect(ok).To(BeFalse())
	})

	It("should preview upcoming entries in slot order", func() {
		Expect(wheel.ScheduleWithDelay("b", "y", 5)).To(Succeed())
		Expect(wheel.ScheduleWithDelay("a", "x", 2)).To(Succeed())

		entries := wheel.PeekUpcoming(10, 0)

		Expect(entries).To(HaveLen(2))
		Expect(entries[0].Key).To(Equal("a"))
		Expect(entries[0].Tick).To(Equal(Tick(2)))
		Expect(entries[1].Key).To(Equal("b"))
		Expect(entries[1].Tick).To(Equal(Tick(5)))
	})

	It("should cap the preview at maxEvents", func() {
		Expect(wheel.ScheduleWithDelay("a", "x", 1)).To(Succeed())
		Expect(wheel.ScheduleWithDelay("b", "y", 2)).To(Succeed())
		Expect(wheel.ScheduleWithDelay("c", "z", 3)).To(Succeed())

		entries := wheel.PeekUpcoming(10, 2)

		Expect(entries).To(HaveLen(2))
	})

	It("may omit overflow entries from the preview", func() {
		Expect(wheel.ScheduleWithDelay("far", "x", 20)).To(Succeed())

		entries := wheel.PeekUpcoming(30, 0)

		Expect(entries).To(BeEmpty())
		Expect(wheel.Count()).To(Equal(1))
	})
})
