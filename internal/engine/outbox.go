// internal/engine/outbox.go
package engine

import (
	"fmt"

	"drivethru/internal/common/metrics"
	"drivethru/internal/order"
)

// Outbox collects everything an engine pass emits: primary prompts,
// clarification questions, and the correction log. The caller owns queue
// draining order; clarifications are answered before the next primary
// prompt.
type Outbox struct {
	prompts        []order.Message
	clarifications []order.Message
	corrections    []string
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

// Prompt queues a primary system message.
func (b *Outbox) Prompt(text string, tag order.Tag) {
	b.prompts = append(b.prompts, order.Message{Text: text, Tag: tag})
}

// Clarify queues a targeted follow-up question that must be answered
// before validation of later lines resumes.
func (b *Outbox) Clarify(format string, args ...interface{}) {
	b.clarifications = append(b.clarifications, order.Message{
		Text: fmt.Sprintf(format, args...),
		Tag:  order.TagClarify,
	})
	metrics.ClarificationsRequested.Inc()
}

// Correct records an auto-correction. Corrections are user-visible and
// cleared once drained.
func (b *Outbox) Correct(format string, args ...interface{}) {
	b.corrections = append(b.corrections, fmt.Sprintf(format, args...))
	metrics.CorrectionsRecorded.Inc()
}

// NextPrompt pops the oldest primary prompt.
func (b *Outbox) NextPrompt() (order.Message, bool) {
	if len(b.prompts) == 0 {
		return order.Message{}, false
	}
	msg := b.prompts[0]
	b.prompts = b.prompts[1:]
	return msg, true
}

// NextClarification pops the oldest clarification question.
func (b *Outbox) NextClarification() (order.Message, bool) {
	if len(b.clarifications) == 0 {
		return order.Message{}, false
	}
	msg := b.clarifications[0]
	b.clarifications = b.clarifications[1:]
	return msg, true
}

// NextMessage pops the next message to deliver, clarifications first.
func (b *Outbox) NextMessage() (order.Message, bool) {
	if msg, ok := b.NextClarification(); ok {
		return msg, true
	}
	return b.NextPrompt()
}

// HasPending reports whether any message is waiting for delivery.
func (b *Outbox) HasPending() bool {
	return len(b.prompts) > 0 || len(b.clarifications) > 0
}

// DrainCorrections returns the accumulated correction log and clears it.
func (b *Outbox) DrainCorrections() []string {
	out := b.corrections
	b.corrections = nil
	return out
}
