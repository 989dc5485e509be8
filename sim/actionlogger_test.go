package sim

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ActionLogger", func() {
	var (
		buf    *bytes.Buffer
		logger *ActionLogger
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		logger = NewActionLogger(log.New(buf, "", 0))
	})

	It("should log one line per executed action", func() {
		logger.Func(HookCtx{
			Pos: HookPosAfterExecute,
			Detail: &TurnResult{
				TicksAdvanced: 4,
				ExecutedID:    "a",
				ExecutedName:  "Alice",
				ExecutedKind:  KindCharacterAction,
				CurrentTick:   12,
			},
		})

		Expect(buf.String()).To(ContainSubstring("tick 12"))
		Expect(buf.String()).To(ContainSubstring("CharacterAction"))
		Expect(buf.String()).To(ContainSubstring("Alice"))
	})

	It("should ignore the before-execute position", func() {
		logger.Func(HookCtx{Pos: HookPosBeforeExecute})

		Expect(buf.String()).To(BeEmpty())
	})
})
