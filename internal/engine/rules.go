// internal/engine/rules.go
package engine

import (
	"fmt"

	"drivethru/internal/catalog"
	"drivethru/internal/common/metrics"
	"drivethru/internal/order"
)

// comboExcluded lists burgers that are never offered as a combo upgrade.
var comboExcluded = map[string]bool{
	"Big Tasty":          true,
	"Hamburger":          true,
	"Royal Cheeseburger": true,
}

// ApplyRules runs the post-validation business pass: upsell offers, deal
// bundling, and the one-time dessert offer. At most one upsell prompt is
// emitted per invocation so a single question is outstanding at a time;
// emitting one suspends the pass until the next turn.
func (e *Engine) ApplyRules(o *order.Order, out *Outbox) {
	if len(o.Lines) == 0 {
		out.Correct("The order cannot be empty.")
		e.LastCall(out)
		return
	}

	var burgerCount, comboCount int
	buckets := make(map[string][]*order.LineItem)
	units := make(map[string]int)

	for _, line := range o.Lines {
		switch line.Category {
		case order.CategoryCombo:
			comboCount++
			if !hasOfferMarker(line.ModifiersAdd) {
				out.Prompt(fmt.Sprintf("Would you like a sauce for your %s?", line.Name), order.TagGeneral)
				line.ModifiersAdd = append(line.ModifiersAdd, order.Modifier{Name: offerMarker, Quantity: 1})
				metrics.UpsellPromptsOffered.WithLabelValues("sauce").Inc()
				return
			}

		case order.CategoryBurger:
			burgerCount++
			if !comboExcluded[line.Name] && !hasOfferMarker(line.ModifiersAdd) {
				out.Prompt(fmt.Sprintf("Would you like to turn your %s into a %s Meal combo?", line.Name, line.Name), order.TagGeneral)
				line.ModifiersAdd = append(line.ModifiersAdd, order.Modifier{Name: offerMarker, Quantity: 1})
				metrics.UpsellPromptsOffered.WithLabelValues("combo").Inc()
				return
			}
			for _, d := range e.catalog.Deals {
				if containsString(d.Eligible, line.Name) {
					buckets[d.Name] = append(buckets[d.Name], line)
					units[d.Name] += line.Quantity
				}
			}

		case order.CategoryDessert:
			o.DessertOffered = true
		}
	}

	for _, d := range e.catalog.Deals {
		e.bundleDeal(o, d, buckets[d.Name], units[d.Name])
	}

	if (burgerCount > 0 || comboCount > 0) && !o.DessertOffered {
		out.Prompt("Would you like something for dessert?", order.TagDessertOffered)
		metrics.UpsellPromptsOffered.WithLabelValues("dessert").Inc()
		o.DessertOffered = true
	}
}

// bundleDeal greedily merges eligible standalone burger lines into paired
// deal lines. The tie-break exhausts the bucket's first line before
// touching the next. The resulting removals and new deal lines are applied
// to the order as one atomic diff.
func (e *Engine) bundleDeal(o *order.Order, deal catalog.Deal, bucket []*order.LineItem, units int) {
	removed := make(map[*order.LineItem]bool)
	var created []*order.LineItem

pairing:
	for units >= 2 {
		head := bucket[0]
		switch {
		case head.Quantity >= 2:
			// Peel pairs off a multi-quantity line first.
			for head.Quantity >= 2 {
				created = append(created, e.newDealLine(deal.Name, head, head))
				head.Quantity -= 2
				units -= 2
			}
			if head.Quantity == 0 {
				removed[head] = true
				bucket = bucket[1:]
			}
		case len(bucket) >= 2:
			second := bucket[1]
			created = append(created, e.newDealLine(deal.Name, head, second))
			removed[head] = true
			bucket = bucket[1:]
			second.Quantity--
			if second.Quantity == 0 {
				removed[second] = true
				bucket = bucket[1:]
			}
			units -= 2
		default:
			// A single leftover line; no further pairs this turn.
			break pairing
		}
	}
	e.applyBundleDiff(o, deal, removed, created)
}

func (e *Engine) applyBundleDiff(o *order.Order, deal catalog.Deal, removed map[*order.LineItem]bool, created []*order.LineItem) {
	if len(created) == 0 {
		return
	}
	lines := make([]*order.LineItem, 0, len(o.Lines)+len(created))
	for _, line := range o.Lines {
		if !removed[line] {
			lines = append(lines, line)
		}
	}
	o.Lines = append(lines, created...)

	metrics.DealsBundled.WithLabelValues(deal.Name).Add(float64(len(created)))
	e.log.Info("bundled deals", map[string]interface{}{
		"deal":    deal.Name,
		"created": len(created),
	})
}

// newDealLine builds a paired-deal line from one unit of each source line.
// Offer markers stay on the source lines; they are not carried into
// children.
func (e *Engine) newDealLine(dealName string, a, b *order.LineItem) *order.LineItem {
	line := order.NewLineItem(dealName, order.CategoryDeal)
	line.Children = []*order.ChildItem{dealChild(a), dealChild(b)}
	return line
}

func dealChild(src *order.LineItem) *order.ChildItem {
	return &order.ChildItem{
		Name:            src.Name,
		Category:        order.CategoryBurger,
		ModifiersAdd:    stripMarker(order.CloneModifiers(src.ModifiersAdd)),
		ModifiersRemove: order.CloneModifiers(src.ModifiersRemove),
	}
}

func stripMarker(mods []order.Modifier) []order.Modifier {
	kept := mods[:0]
	for _, m := range mods {
		if m.Name != offerMarker {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
