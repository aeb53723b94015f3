// internal/engine/validator.go
package engine

import (
	"strings"

	"drivethru/internal/common/metrics"
	"drivethru/internal/order"
)

// Result is the outcome of a full validation pass.
type Result int

const (
	// ResultOK means every line validated clean (possibly with recorded
	// auto-corrections) and business rules may run.
	ResultOK Result = iota
	// ResultSuspended means the pass stopped at the first line that
	// needs a clarification answer; later lines were left untouched.
	ResultSuspended
	// ResultEmpty means there was nothing to validate; the caller should
	// re-prompt the customer.
	ResultEmpty
)

// stepResult is the outcome of validating a single line.
type stepResult int

const (
	stepContinue stepResult = iota
	stepSuspend
)

// Validate runs one validation pass over the candidate order, mutating it
// in place. Lines with structural defects are removed, fixable values are
// corrected, and the first line needing customer input suspends the pass.
func (e *Engine) Validate(o *order.Order, out *Outbox) Result {
	metrics.TurnsValidated.Inc()

	if len(o.Lines) == 0 {
		out.Correct("No items were ordered. Try again.")
		return ResultEmpty
	}

	kept := make([]*order.LineItem, 0, len(o.Lines))
	for i, line := range o.Lines {
		var step stepResult
		switch line.Category {
		case order.CategoryUnknown:
			out.Correct("[%s] is not in the menu.", line.RawCategory)
			continue
		case order.CategoryIngredient:
			out.Correct("Ingredients cannot be ordered standalone. Item %s was removed.", line.Name)
			continue
		case order.CategoryCombo:
			step = e.validateCombo(line, out)
		case order.CategoryDeal:
			step = e.validateDeal(line, out)
		case order.CategoryBurger, order.CategoryDrink, order.CategoryFries,
			order.CategoryDessert, order.CategorySauce:
			step = e.validateSimple(line, out)
		}

		kept = append(kept, line)
		if step == stepSuspend {
			// Later lines are validated on the next pass, once the
			// clarification has been answered.
			kept = append(kept, o.Lines[i+1:]...)
			o.Lines = kept
			return ResultSuspended
		}
	}

	o.Lines = kept
	return ResultOK
}

// validateSimple checks a single non-composite line (and the parent entry
// of a combo) for name, quantity, size, and modifier conformance.
func (e *Engine) validateSimple(line *order.LineItem, out *Outbox) stepResult {
	if !line.HasName() {
		out.Clarify("What kind of %s?", line.Category)
		return stepSuspend
	}
	if !e.catalog.HasItem(line.Category, line.Name) {
		out.Clarify("There is no %s in the %s menu. Available options are: %s. Which one would you like?",
			line.Name, line.Category, strings.Join(e.catalog.Names(line.Category), ", "))
		return stepSuspend
	}

	e.coerceQuantity(line, out)

	if step := e.validateSize(line, out); step == stepSuspend {
		return stepSuspend
	}

	e.validateLineModifiers(line, out)
	return stepContinue
}

func (e *Engine) coerceQuantity(line *order.LineItem, out *Outbox) {
	if line.Quantity >= 1 {
		return
	}
	fixed := line.Quantity
	if fixed < 0 {
		fixed = -fixed
	}
	if fixed < 1 {
		fixed = 1
	}
	out.Correct("%s's quantity must be > 0. Was: %d, Now: %d", line.Name, line.Quantity, fixed)
	line.Quantity = fixed
}

func (e *Engine) validateSize(line *order.LineItem, out *Outbox) stepResult {
	if !line.Category.SizeBearing() {
		if line.Size != "" {
			out.Correct("%s does not support sizes. %s was removed.", line.Category, line.Size)
			line.Size = ""
		}
		return stepContinue
	}

	if line.Size == "" {
		out.Clarify("What size of %s?", line.Name)
		return stepSuspend
	}

	sizes := e.catalog.Sizes(line.Category, line.Name)
	if !containsString(sizes, line.Size) {
		out.Clarify("Wrong size of %s. Available sizes: %s. Which one would you like?",
			line.Name, strings.Join(sizes, ", "))
		return stepSuspend
	}
	return stepContinue
}

func (e *Engine) validateLineModifiers(line *order.LineItem, out *Outbox) {
	switch {
	case !line.Category.ModifiersAllowed():
		for _, m := range line.ModifiersAdd {
			out.Correct("You cannot add %s to %s. %s was removed.", m.Name, line.Name, m.Name)
		}
		for _, m := range line.ModifiersRemove {
			out.Correct("You cannot remove %s from %s.", m.Name, line.Name)
		}
		line.ModifiersAdd = nil
		line.ModifiersRemove = nil

	case line.Category == order.CategoryCombo:
		// Combo additions are sauces; the single sauce slot makes each
		// sauce quantity exactly one.
		kept := make([]order.Modifier, 0, len(line.ModifiersAdd))
		for _, m := range line.ModifiersAdd {
			if m.Name == offerMarker {
				kept = append(kept, m)
				continue
			}
			if _, ok := e.catalog.SaucePrice(m.Name); !ok {
				out.Correct("You cannot add %s for %s. %s was removed.", m.Name, line.Name, m.Name)
				continue
			}
			m.Quantity = 1
			kept = append(kept, m)
		}
		line.ModifiersAdd = kept

	default:
		item, ok := e.catalog.Item(line.Category, line.Name)
		if !ok {
			return
		}
		line.ModifiersAdd = e.filterAdditions(line.Name, line.ModifiersAdd, item.PossibleIngredients, out)
		line.ModifiersRemove = e.filterRemovals(line.Name, line.ModifiersRemove, item.DefaultIngredients, out)
	}
}

// filterAdditions keeps only modifiers from the item's addable-ingredient
// list, coercing quantities to at least one.
func (e *Engine) filterAdditions(itemName string, mods []order.Modifier, possible []string, out *Outbox) []order.Modifier {
	if len(mods) == 0 {
		return nil
	}
	kept := make([]order.Modifier, 0, len(mods))
	for _, m := range mods {
		if m.Name == offerMarker {
			kept = append(kept, m)
			continue
		}
		if !containsString(possible, m.Name) {
			out.Correct("You cannot add %s for %s. %s was removed.", m.Name, itemName, m.Name)
			continue
		}
		if m.Quantity < 1 {
			fixed := m.Quantity
			if fixed < 0 {
				fixed = -fixed
			}
			if fixed < 1 {
				fixed = 1
			}
			out.Correct("Ingredient %s's quantity must be > 0. Was: %d, Now: %d", m.Name, m.Quantity, fixed)
			m.Quantity = fixed
		}
		kept = append(kept, m)
	}
	return kept
}

// filterRemovals keeps only modifiers naming a default ingredient that can
// actually be removed.
func (e *Engine) filterRemovals(itemName string, mods []order.Modifier, defaults []string, out *Outbox) []order.Modifier {
	if len(mods) == 0 {
		return nil
	}
	kept := make([]order.Modifier, 0, len(mods))
	for _, m := range mods {
		if !containsString(defaults, m.Name) {
			out.Correct("You cannot remove %s for %s.", m.Name, itemName)
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

// validateCombo checks the combo parent as a simple item, normalizes its
// three role children, and validates each child against the combo's own
// slot lists.
func (e *Engine) validateCombo(line *order.LineItem, out *Outbox) stepResult {
	if step := e.validateSimple(line, out); step == stepSuspend {
		return stepSuspend
	}

	e.normalizeComboChildren(line, out)

	combo, _ := e.catalog.Combo(line.Name)
	impliedBurger := e.catalog.ComboBurger(line.Name)

	for _, child := range line.Children {
		switch child.Category {
		case order.CategoryBurger:
			if child.Name != impliedBurger {
				out.Correct("%s has to be %s in the %s. Was: %s, Now: %s",
					child.Name, impliedBurger, line.Name, child.Name, impliedBurger)
				child.Name = impliedBurger
			}
			e.validateChildModifiers(child, out)
		case order.CategoryDrink:
			if step := e.validateComboSlot(child, line, combo.Drinks, "drink", out); step == stepSuspend {
				return stepSuspend
			}
		case order.CategoryFries:
			if step := e.validateComboSlot(child, line, combo.Fries, "fries", out); step == stepSuspend {
				return stepSuspend
			}
		}
	}
	return stepContinue
}

// normalizeComboChildren reduces whatever children arrived to exactly one
// burger, one drink, and one fries child, synthesizing missing roles.
func (e *Engine) normalizeComboChildren(line *order.LineItem, out *Outbox) {
	var burger, drink, fries *order.ChildItem
	for _, ch := range line.Children {
		switch ch.Category {
		case order.CategoryBurger:
			if burger == nil {
				burger = ch
				continue
			}
		case order.CategoryDrink:
			if drink == nil {
				drink = ch
				continue
			}
		case order.CategoryFries:
			if fries == nil {
				fries = ch
				continue
			}
		}
		if ch.HasName() || len(ch.ModifiersAdd) > 0 || len(ch.ModifiersRemove) > 0 {
			out.Correct("%s does not fit in %s. %s was removed.", ch.Name, line.Name, ch.Name)
		}
	}

	if burger == nil {
		burger = &order.ChildItem{Category: order.CategoryBurger, Name: e.catalog.ComboBurger(line.Name)}
	}
	if drink == nil {
		drink = &order.ChildItem{Category: order.CategoryDrink}
	}
	if fries == nil {
		fries = &order.ChildItem{Category: order.CategoryFries, Name: e.catalog.DefaultFries}
	}
	line.Children = []*order.ChildItem{burger, drink, fries}
}

// validateComboSlot checks a drink or fries child against the combo's own
// allowed-name list, not the general menu.
func (e *Engine) validateComboSlot(child *order.ChildItem, parent *order.LineItem, allowed []string, role string, out *Outbox) stepResult {
	if !child.HasName() {
		out.Clarify("What kind of %s for your %s?", role, parent.Name)
		return stepSuspend
	}
	if !containsString(allowed, child.Name) {
		out.Clarify("%s is not allowed in %s. The %s has to be one of: %s. Which one would you like?",
			child.Name, parent.Name, role, strings.Join(allowed, ", "))
		return stepSuspend
	}
	e.validateChildModifiers(child, out)
	return stepContinue
}

func (e *Engine) validateChildModifiers(child *order.ChildItem, out *Outbox) {
	item, ok := e.catalog.Item(child.Category, child.Name)
	if !ok {
		return
	}
	child.ModifiersAdd = e.filterAdditions(child.Name, child.ModifiersAdd, item.PossibleIngredients, out)
	child.ModifiersRemove = e.filterRemovals(child.Name, child.ModifiersRemove, item.DefaultIngredients, out)
}

// validateDeal checks the parent against the deal registry, normalizes
// exactly two burger children, and validates them against the deal's
// eligible-burger list.
func (e *Engine) validateDeal(line *order.LineItem, out *Outbox) stepResult {
	if !line.HasName() {
		out.Clarify("What kind of deal?")
		return stepSuspend
	}
	deal, ok := e.catalog.Deal(line.Name)
	if !ok {
		out.Clarify("There is no %s in the deal menu. Available options are: %s. Which one would you like?",
			line.Name, strings.Join(e.catalog.Names(order.CategoryDeal), ", "))
		return stepSuspend
	}

	e.coerceQuantity(line, out)
	e.validateSize(line, out)          // deals never bear a size
	e.validateLineModifiers(line, out) // deals never carry modifiers

	e.normalizeDealChildren(line, out)

	for _, child := range line.Children {
		if !child.HasName() {
			out.Clarify("What two burgers for your %s?", line.Name)
			return stepSuspend
		}
		if !containsString(deal.Eligible, child.Name) {
			out.Clarify("%s is not allowed in %s. Both burgers have to be one of: %s. Which ones would you like?",
				child.Name, line.Name, strings.Join(deal.Eligible, ", "))
			return stepSuspend
		}
		e.validateChildModifiers(child, out)
	}
	return stepContinue
}

// normalizeDealChildren strips drink/fries children and pads or trims the
// rest to exactly two burger entries.
func (e *Engine) normalizeDealChildren(line *order.LineItem, out *Outbox) {
	burgers := make([]*order.ChildItem, 0, 2)
	for _, ch := range line.Children {
		if ch.Category == order.CategoryBurger {
			burgers = append(burgers, ch)
			continue
		}
		if ch.HasName() || len(ch.ModifiersAdd) > 0 || len(ch.ModifiersRemove) > 0 {
			out.Correct("Deals cannot contain %s. %s was removed.", pluralCategory(ch.Category), ch.Name)
		}
	}

	if len(burgers) > 2 {
		for _, extra := range burgers[2:] {
			out.Correct("A deal holds exactly two burgers. %s was removed.", extra.Name)
		}
		burgers = burgers[:2]
	}
	for len(burgers) < 2 {
		burgers = append(burgers, &order.ChildItem{Category: order.CategoryBurger})
	}
	line.Children = burgers
}

func pluralCategory(c order.Category) string {
	if c == order.CategoryFries {
		return "fries"
	}
	return c.String() + "s"
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
