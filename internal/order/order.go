// Package order defines the recursive order-line model shared by the
// validation engine, the NLU collaborator, and the conversational loop.
package order

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Category is the closed set of order-line categories. Anything the NLU
// collaborator produces outside this set decodes to CategoryUnknown and is
// rejected by validation.
type Category string

const (
	CategoryUnknown    Category = ""
	CategoryBurger     Category = "burger"
	CategoryDrink      Category = "drink"
	CategoryFries      Category = "fries"
	CategoryDessert    Category = "dessert"
	CategoryCombo      Category = "combo"
	CategoryDeal       Category = "deal"
	CategorySauce      Category = "sauce"
	CategoryIngredient Category = "ingredient"
)

// Categories lists every valid category in a stable order.
var Categories = []Category{
	CategoryBurger,
	CategoryDrink,
	CategoryFries,
	CategoryDessert,
	CategoryCombo,
	CategoryDeal,
	CategorySauce,
	CategoryIngredient,
}

// ParseCategory maps a category string from the NLU wire format onto the
// closed enumeration. The NLU collaborator speaks the menu's plural
// vocabulary ("burgers", "combos"); unknown strings map to CategoryUnknown.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "burger", "burgers":
		return CategoryBurger
	case "drink", "drinks":
		return CategoryDrink
	case "fries":
		return CategoryFries
	case "dessert", "desserts":
		return CategoryDessert
	case "combo", "combos":
		return CategoryCombo
	case "deal", "deals":
		return CategoryDeal
	case "sauce", "sauces":
		return CategorySauce
	case "ingredient", "ingredients":
		return CategoryIngredient
	default:
		return CategoryUnknown
	}
}

func (c Category) String() string {
	if c == CategoryUnknown {
		return "unknown"
	}
	return string(c)
}

// SizeBearing reports whether lines of this category carry a size.
func (c Category) SizeBearing() bool {
	switch c {
	case CategoryDrink, CategoryFries, CategoryCombo:
		return true
	default:
		return false
	}
}

// ModifiersAllowed reports whether lines of this category may carry
// ingredient modifiers at all. Dessert, deal, sauce, and ingredient lines
// must end a validation pass with empty modifier lists.
func (c Category) ModifiersAllowed() bool {
	switch c {
	case CategoryDessert, CategoryDeal, CategorySauce, CategoryIngredient:
		return false
	default:
		return true
	}
}

// Modifier is an ingredient addition or removal reference.
type Modifier struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ChildItem is a nested line inside a composite item (combo or deal).
// Children never carry an independent size: for size-bearing categories the
// parent's size applies to the whole bundle.
type ChildItem struct {
	Name            string     `json:"name,omitempty"`
	Category        Category   `json:"category"`
	ModifiersAdd    []Modifier `json:"modifiers_to_add,omitempty"`
	ModifiersRemove []Modifier `json:"modifiers_to_remove,omitempty"`
}

// LineItem is a top-level order line.
type LineItem struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name,omitempty"`
	Category Category  `json:"category"`
	// RawCategory preserves the NLU's original category string when it
	// does not parse onto the closed set, for error reporting only.
	RawCategory     string       `json:"-"`
	Size            string       `json:"size,omitempty"`
	Quantity        int          `json:"quantity"`
	ModifiersAdd    []Modifier   `json:"modifiers_to_add,omitempty"`
	ModifiersRemove []Modifier   `json:"modifiers_to_remove,omitempty"`
	Children        []*ChildItem `json:"children,omitempty"`
}

// NewLineItem creates a line with a fresh identity and a quantity of 1.
func NewLineItem(name string, category Category) *LineItem {
	return &LineItem{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Quantity: 1,
	}
}

// HasName reports whether the line carries a concrete item name. The NLU
// collaborator uses "None" as the placeholder for unnamed items.
func (li *LineItem) HasName() bool {
	return li.Name != "" && li.Name != "None"
}

// HasName reports whether the child carries a concrete item name.
func (c *ChildItem) HasName() bool {
	return c.Name != "" && c.Name != "None"
}

// CloneModifiers deep-copies a modifier list.
func CloneModifiers(mods []Modifier) []Modifier {
	if len(mods) == 0 {
		return nil
	}
	out := make([]Modifier, len(mods))
	copy(out, mods)
	return out
}

// Order is the per-session order state. It is owned by the conversational
// loop and handed to the engine by exclusive reference for the duration of
// one validation/business-rule pass.
type Order struct {
	Lines          []*LineItem `json:"lines"`
	Finished       bool        `json:"finished"`
	DessertOffered bool        `json:"dessert_offered"`
}

// New creates an empty order session.
func New() *Order {
	return &Order{}
}

// Replace installs a full replacement line list for the current turn. The
// engine never diffs against the previous turn's lines.
func (o *Order) Replace(lines []*LineItem, finished bool) {
	o.Lines = lines
	o.Finished = finished
}

// Summary renders the order in an itemized, human-readable format.
func (o *Order) Summary() string {
	var b strings.Builder
	b.WriteString("=== Your order ===\n")
	for _, li := range o.Lines {
		b.WriteString(fmt.Sprintf("  - %d x %s", li.Quantity, li.Name))
		if li.Size != "" {
			b.WriteString(" " + li.Size)
		}
		b.WriteString(fmt.Sprintf(" [%s]\n", li.Category))
		writeModifiers(&b, "      ", li.ModifiersAdd, li.ModifiersRemove)
		if len(li.Children) > 0 {
			b.WriteString("      With:\n")
			for _, ch := range li.Children {
				name := ch.Name
				if name == "" {
					name = "?"
				}
				b.WriteString(fmt.Sprintf("        * [%s] %s\n", ch.Category, name))
				writeModifiers(&b, "          ", ch.ModifiersAdd, ch.ModifiersRemove)
			}
		}
	}
	b.WriteString("==================")
	return b.String()
}

func writeModifiers(b *strings.Builder, indent string, add, remove []Modifier) {
	for _, m := range add {
		b.WriteString(fmt.Sprintf("%s+ %d x %s\n", indent, m.Quantity, m.Name))
	}
	for _, m := range remove {
		b.WriteString(fmt.Sprintf("%s- %s\n", indent, m.Name))
	}
}
