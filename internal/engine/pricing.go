// internal/engine/pricing.go
package engine

import (
	"github.com/shopspring/decimal"

	"drivethru/internal/order"
)

// dealDiscount applies to a paired deal's burger bases and surcharges.
var dealDiscount = decimal.NewFromFloat(0.8)

// Total prices the whole order. It is read-only: unit prices were rounded
// once at catalog load and sums are never re-rounded here. Modifier names
// absent from the ingredient price table contribute zero; validation has
// already stripped anything it recognizes as invalid.
func (e *Engine) Total(o *order.Order) decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(e.lineTotal(line))
	}
	return total
}

func (e *Engine) lineTotal(line *order.LineItem) decimal.Decimal {
	qty := decimal.NewFromInt(int64(line.Quantity))

	switch line.Category {
	case order.CategoryCombo:
		combo, ok := e.catalog.Combo(line.Name)
		if !ok {
			return decimal.Zero
		}
		total := qty.Mul(combo.SizePrice[line.Size])
		for _, m := range line.ModifiersAdd {
			if m.Name == offerMarker {
				continue
			}
			if p, ok := e.catalog.SaucePrice(m.Name); ok {
				total = total.Add(p)
			}
		}
		for _, ch := range line.Children {
			total = total.Add(e.modifierSurcharge(ch.ModifiersAdd))
		}
		return total

	case order.CategoryDrink:
		p, _ := e.catalog.SizePrice(order.CategoryDrink, line.Name, line.Size)
		return qty.Mul(p)

	case order.CategoryFries:
		p, _ := e.catalog.SizePrice(order.CategoryFries, line.Name, line.Size)
		return qty.Mul(p).Add(e.modifierSurcharge(line.ModifiersAdd))

	case order.CategoryBurger:
		item, ok := e.catalog.Item(order.CategoryBurger, line.Name)
		if !ok {
			return decimal.Zero
		}
		return qty.Mul(item.Price).Add(e.modifierSurcharge(line.ModifiersAdd))

	case order.CategoryDessert:
		item, ok := e.catalog.Item(order.CategoryDessert, line.Name)
		if !ok {
			return decimal.Zero
		}
		return qty.Mul(item.Price)

	case order.CategorySauce:
		p, _ := e.catalog.SaucePrice(line.Name)
		return qty.Mul(p)

	case order.CategoryDeal:
		sum := decimal.Zero
		for _, ch := range line.Children {
			if item, ok := e.catalog.Item(order.CategoryBurger, ch.Name); ok {
				sum = sum.Add(item.Price)
			}
			sum = sum.Add(e.modifierSurcharge(ch.ModifiersAdd))
		}
		return sum.Mul(dealDiscount)

	default:
		// Unknown and ingredient lines never survive validation.
		return decimal.Zero
	}
}

// modifierSurcharge sums quantity-weighted ingredient prices for the names
// present in the ingredient price table.
func (e *Engine) modifierSurcharge(mods []order.Modifier) decimal.Decimal {
	total := decimal.Zero
	for _, m := range mods {
		if p, ok := e.catalog.IngredientPrice(m.Name); ok {
			total = total.Add(p.Mul(decimal.NewFromInt(int64(m.Quantity))))
		}
	}
	return total
}
