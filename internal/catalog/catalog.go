// Package catalog holds the read-only menu lookup structure consumed by the
// validation engine and the pricing pass.
package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"drivethru/internal/order"
)

// comboSuffix separates a combo's name from its implied burger:
// "Big Mac Meal" bundles a "Big Mac".
const comboSuffix = " Meal"

// Item is a single orderable menu entry. Flat-priced categories use Price;
// size-bearing categories use SizePrice.
type Item struct {
	Price               decimal.Decimal
	SizePrice           map[string]decimal.Decimal
	DefaultIngredients  []string
	PossibleIngredients []string
}

// Combo is a bundled meal entry: a size-priced bundle plus the allowed
// names for its fries, drink, and optional sauce slots.
type Combo struct {
	SizePrice map[string]decimal.Decimal
	Fries     []string
	Drinks    []string
	Sauces    []string
}

// Deal is a paired-burger promotion tier with its eligible-burger list.
type Deal struct {
	Name     string
	Eligible []string
}

// Catalog is the full menu lookup structure. It is immutable after load.
type Catalog struct {
	Burgers  map[string]Item
	Drinks   map[string]Item
	Fries    map[string]Item
	Desserts map[string]Item
	Combos   map[string]Combo

	// Deals preserves data-file order; bundling buckets follow it.
	Deals []Deal

	Sauces      map[string]decimal.Decimal
	Ingredients map[string]decimal.Decimal

	DefaultFries string
}

// items returns the flat item table for a simple category, or nil.
func (c *Catalog) items(cat order.Category) map[string]Item {
	switch cat {
	case order.CategoryBurger:
		return c.Burgers
	case order.CategoryDrink:
		return c.Drinks
	case order.CategoryFries:
		return c.Fries
	case order.CategoryDessert:
		return c.Desserts
	default:
		return nil
	}
}

// Names lists every item name for a category, sorted for deterministic
// clarification prompts.
func (c *Catalog) Names(cat order.Category) []string {
	var names []string
	switch cat {
	case order.CategoryCombo:
		for name := range c.Combos {
			names = append(names, name)
		}
	case order.CategorySauce:
		for name := range c.Sauces {
			names = append(names, name)
		}
	case order.CategoryDeal:
		for _, d := range c.Deals {
			names = append(names, d.Name)
		}
		return names
	default:
		for name := range c.items(cat) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// HasItem reports whether the named item exists in the given category.
func (c *Catalog) HasItem(cat order.Category, name string) bool {
	switch cat {
	case order.CategoryCombo:
		_, ok := c.Combos[name]
		return ok
	case order.CategorySauce:
		_, ok := c.Sauces[name]
		return ok
	case order.CategoryDeal:
		_, ok := c.Deal(name)
		return ok
	default:
		_, ok := c.items(cat)[name]
		return ok
	}
}

// Item looks up a simple-category entry.
func (c *Catalog) Item(cat order.Category, name string) (Item, bool) {
	it, ok := c.items(cat)[name]
	return it, ok
}

// Combo looks up a combo entry by name.
func (c *Catalog) Combo(name string) (Combo, bool) {
	cb, ok := c.Combos[name]
	return cb, ok
}

// Deal looks up a deal tier by name.
func (c *Catalog) Deal(name string) (Deal, bool) {
	for _, d := range c.Deals {
		if d.Name == name {
			return d, true
		}
	}
	return Deal{}, false
}

// ComboBurger derives the burger implied by a combo's own name.
func (c *Catalog) ComboBurger(comboName string) string {
	return strings.TrimSuffix(comboName, comboSuffix)
}

// Sizes lists the available size labels for a size-bearing item in
// small-to-large order.
func (c *Catalog) Sizes(cat order.Category, name string) []string {
	var table map[string]decimal.Decimal
	if cat == order.CategoryCombo {
		cb, ok := c.Combos[name]
		if !ok {
			return nil
		}
		table = cb.SizePrice
	} else {
		it, ok := c.Item(cat, name)
		if !ok {
			return nil
		}
		table = it.SizePrice
	}

	var sizes []string
	for _, s := range []string{"small", "medium", "large", "default"} {
		if _, ok := table[s]; ok {
			sizes = append(sizes, s)
		}
	}
	return sizes
}

// SizePrice returns the unit price of a size-bearing item at a given size.
func (c *Catalog) SizePrice(cat order.Category, name, size string) (decimal.Decimal, bool) {
	if cat == order.CategoryCombo {
		cb, ok := c.Combos[name]
		if !ok {
			return decimal.Zero, false
		}
		p, ok := cb.SizePrice[size]
		return p, ok
	}
	it, ok := c.Item(cat, name)
	if !ok {
		return decimal.Zero, false
	}
	p, ok := it.SizePrice[size]
	return p, ok
}

// SaucePrice returns the surcharge for a named sauce.
func (c *Catalog) SaucePrice(name string) (decimal.Decimal, bool) {
	p, ok := c.Sauces[name]
	return p, ok
}

// IngredientPrice returns the surcharge for a named ingredient. Names
// absent from the table price as zero by policy.
func (c *Catalog) IngredientPrice(name string) (decimal.Decimal, bool) {
	p, ok := c.Ingredients[name]
	return p, ok
}
