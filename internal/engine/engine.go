// Package engine implements the order validation, normalization,
// business-rule, and pricing passes that run once per customer turn.
package engine

import (
	"fmt"

	"drivethru/internal/catalog"
	"drivethru/internal/common/logger"
	"drivethru/internal/common/metrics"
	"drivethru/internal/order"
)

// offerMarker is the sentinel modifier recorded on a line once an upsell
// has been offered for it. It survives the NLU round-trip inside the
// line's own modifier list, is never priced, and is never dropped by
// modifier validation.
const offerMarker = "Flag"

type Engine struct {
	catalog *catalog.Catalog
	log     logger.Logger
}

func New(cat *catalog.Catalog, log logger.Logger) *Engine {
	return &Engine{
		catalog: cat,
		log:     log.WithFields(map[string]interface{}{"component": "engine"}),
	}
}

func hasOfferMarker(mods []order.Modifier) bool {
	for _, m := range mods {
		if m.Name == offerMarker {
			return true
		}
	}
	return false
}

// StartOrder queues the session's opening prompt.
func (e *Engine) StartOrder(out *Outbox) {
	out.Prompt("Welcome! What can I get you started with?", order.TagGeneral)
}

// LastCall queues the "anything else" prompt.
func (e *Engine) LastCall(out *Outbox) {
	out.Prompt("Would you like anything else?", order.TagGeneral)
}

// FinishOrder queues the final itemized summary with the priced total.
func (e *Engine) FinishOrder(o *order.Order, out *Outbox) {
	if len(o.Lines) == 0 {
		out.Prompt("No items in order.", order.TagFinished)
		return
	}
	total := e.Total(o)
	text := fmt.Sprintf("%s\nYour order total is $%s", o.Summary(), total.StringFixed(2))
	out.Prompt(text, order.TagFinished)
	metrics.OrdersCompleted.Inc()
	e.log.Info("order finished", map[string]interface{}{
		"lines": len(o.Lines),
		"total": total.StringFixed(2),
	})
}
