package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivethru/internal/order"
)

func TestValidate_EmptyOrder(t *testing.T) {
	e := newTestEngine(t)
	o := order.New()
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultEmpty, res)
	assert.Empty(t, o.Lines)
	corrections := out.DrainCorrections()
	require.Len(t, corrections, 1)
	assert.Contains(t, corrections[0], "No items were ordered")
}

func TestValidate_StandaloneIngredientRemoved(t *testing.T) {
	e := newTestEngine(t)
	o := order.New()
	o.Lines = []*order.LineItem{order.NewLineItem("Cheese Slice", order.CategoryIngredient)}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultOK, res)
	assert.Empty(t, o.Lines)
	corrections := out.DrainCorrections()
	require.Len(t, corrections, 1)
	assert.Contains(t, corrections[0], "Ingredients cannot be ordered standalone")
}

func TestValidate_UnknownCategoryRemoved(t *testing.T) {
	e := newTestEngine(t)
	line := order.NewLineItem("Pepperoni Pizza", order.CategoryUnknown)
	line.RawCategory = "pizzas"
	o := order.New()
	o.Lines = []*order.LineItem{line, burgerLine("Big Mac", 1)}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultOK, res)
	require.Len(t, o.Lines, 1)
	assert.Equal(t, "Big Mac", o.Lines[0].Name)
	corrections := out.DrainCorrections()
	require.Len(t, corrections, 1)
	assert.Contains(t, corrections[0], "[pizzas] is not in the menu")
}

func TestValidate_MissingNameSuspends(t *testing.T) {
	e := newTestEngine(t)
	o := order.New()
	o.Lines = []*order.LineItem{order.NewLineItem("None", order.CategoryBurger)}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultSuspended, res)
	msg, ok := out.NextClarification()
	require.True(t, ok)
	assert.Equal(t, order.TagClarify, msg.Tag)
	assert.Contains(t, msg.Text, "What kind of burger?")
}

func TestValidate_UnknownNameSuspendsWithOptions(t *testing.T) {
	e := newTestEngine(t)
	o := order.New()
	o.Lines = []*order.LineItem{burgerLine("Whopper", 1)}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultSuspended, res)
	msg, ok := out.NextClarification()
	require.True(t, ok)
	assert.Contains(t, msg.Text, "There is no Whopper in the burger menu")
	assert.Contains(t, msg.Text, "Big Mac")
}

func TestValidate_QuantityCoercion(t *testing.T) {
	tests := []struct {
		name string
		qty  int
		want int
	}{
		{"negative", -3, 3},
		{"zero", 0, 1},
		{"valid untouched", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			o := order.New()
			o.Lines = []*order.LineItem{burgerLine("Big Mac", tt.qty)}
			out := NewOutbox()

			res := e.Validate(o, out)

			assert.Equal(t, ResultOK, res)
			assert.Equal(t, tt.want, o.Lines[0].Quantity)
			if tt.qty >= 1 {
				assert.Empty(t, out.DrainCorrections())
			} else {
				assert.NotEmpty(t, out.DrainCorrections())
			}
		})
	}
}

func TestValidate_SizeClearedOnNonSizeBearing(t *testing.T) {
	e := newTestEngine(t)
	line := burgerLine("Big Mac", 1)
	line.Size = "large"
	o := order.New()
	o.Lines = []*order.LineItem{line}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultOK, res)
	assert.Empty(t, line.Size)
	corrections := out.DrainCorrections()
	require.Len(t, corrections, 1)
	assert.Contains(t, corrections[0], "burger does not support sizes")
}

func TestValidate_MissingSizeSuspends(t *testing.T) {
	e := newTestEngine(t)
	o := order.New()
	o.Lines = []*order.LineItem{order.NewLineItem("Coca-Cola", order.CategoryDrink)}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultSuspended, res)
	msg, ok := out.NextClarification()
	require.True(t, ok)
	assert.Contains(t, msg.Text, "What size of Coca-Cola?")
}

func TestValidate_WrongSizeSuspends(t *testing.T) {
	e := newTestEngine(t)
	line := order.NewLineItem("Coca-Cola", order.CategoryDrink)
	line.Size = "gigantic"
	o := order.New()
	o.Lines = []*order.LineItem{line}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultSuspended, res)
	msg, ok := out.NextClarification()
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Wrong size of Coca-Cola")
	assert.Contains(t, msg.Text, "small, medium, large")
}

func TestValidate_DisallowedModifiersDropped(t *testing.T) {
	e := newTestEngine(t)
	line := burgerLine("Big Mac", 1)
	line.ModifiersAdd = []order.Modifier{
		{Name: "Cheese Slice", Quantity: 1},
		{Name: "Truffle Oil", Quantity: 1},
	}
	line.ModifiersRemove = []order.Modifier{
		{Name: "Pickles", Quantity: 1},
		{Name: "Bun", Quantity: 1},
	}
	o := order.New()
	o.Lines = []*order.LineItem{line}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultOK, res)
	assert.Equal(t, []order.Modifier{{Name: "Cheese Slice", Quantity: 1}}, line.ModifiersAdd)
	assert.Equal(t, []order.Modifier{{Name: "Pickles", Quantity: 1}}, line.ModifiersRemove)
	corrections := out.DrainCorrections()
	require.Len(t, corrections, 2)
	assert.Contains(t, corrections[0], "You cannot add Truffle Oil for Big Mac")
	assert.Contains(t, corrections[1], "You cannot remove Bun for Big Mac")
}

func TestValidate_DessertModifiersForcedEmpty(t *testing.T) {
	e := newTestEngine(t)
	line := order.NewLineItem("McFlurry", order.CategoryDessert)
	line.ModifiersAdd = []order.Modifier{{Name: "Oreo", Quantity: 1}}
	line.ModifiersRemove = []order.Modifier{{Name: "Sugar", Quantity: 1}}
	o := order.New()
	o.Lines = []*order.LineItem{line}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultOK, res)
	assert.Empty(t, line.ModifiersAdd)
	assert.Empty(t, line.ModifiersRemove)
	assert.Len(t, out.DrainCorrections(), 2)
}

func TestValidate_ComboSauceModifiers(t *testing.T) {
	e := newTestEngine(t)
	line := comboLine("Big Mac Meal", "medium")
	line.ModifiersAdd = []order.Modifier{
		{Name: "Ketchup", Quantity: 3},
		{Name: "Gravy", Quantity: 1},
		{Name: offerMarker, Quantity: 1},
	}
	o := order.New()
	o.Lines = []*order.LineItem{line}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultOK, res)
	require.Len(t, line.ModifiersAdd, 2)
	assert.Equal(t, order.Modifier{Name: "Ketchup", Quantity: 1}, line.ModifiersAdd[0])
	assert.Equal(t, order.Modifier{Name: offerMarker, Quantity: 1}, line.ModifiersAdd[1])
	corrections := out.DrainCorrections()
	require.Len(t, corrections, 1)
	assert.Contains(t, corrections[0], "You cannot add Gravy for Big Mac Meal")
}

func TestValidate_ComboSynthesizesChildren(t *testing.T) {
	e := newTestEngine(t)
	line := order.NewLineItem("Big Mac Meal", order.CategoryCombo)
	line.Size = "medium"
	o := order.New()
	o.Lines = []*order.LineItem{line}
	out := NewOutbox()

	res := e.Validate(o, out)

	// The synthesized drink is a placeholder, so the pass suspends asking
	// for it.
	assert.Equal(t, ResultSuspended, res)
	require.Len(t, line.Children, 3)
	assert.Equal(t, "Big Mac", line.Children[0].Name)
	assert.Equal(t, order.CategoryBurger, line.Children[0].Category)
	assert.Empty(t, line.Children[1].Name)
	assert.Equal(t, order.CategoryDrink, line.Children[1].Category)
	assert.Equal(t, "French Fries", line.Children[2].Name)
	assert.Equal(t, order.CategoryFries, line.Children[2].Category)

	msg, ok := out.NextClarification()
	require.True(t, ok)
	assert.Contains(t, msg.Text, "What kind of drink for your Big Mac Meal?")
}

func TestValidate_ComboBurgerChildForced(t *testing.T) {
	e := newTestEngine(t)
	line := comboLine("Big Mac Meal", "large")
	line.Children[0].Name = "Hamburger"
	o := order.New()
	o.Lines = []*order.LineItem{line}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultOK, res)
	assert.Equal(t, "Big Mac", line.Children[0].Name)
	corrections := out.DrainCorrections()
	require.Len(t, corrections, 1)
	assert.Contains(t, corrections[0], "has to be Big Mac in the Big Mac Meal")
}

func TestValidate_ComboDrinkOutsideSlotSuspends(t *testing.T) {
	e := newTestEngine(t)
	line := comboLine("Cheeseburger Meal", "medium")
	line.Children[0].Name = "Cheeseburger"
	line.Children[1].Name = "Fanta"
	o := order.New()
	o.Lines = []*order.LineItem{line}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultSuspended, res)
	msg, ok := out.NextClarification()
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Fanta is not allowed in Cheeseburger Meal")
	assert.Contains(t, msg.Text, "Coca-Cola, Sprite")
}

func TestValidate_ComboValidPasses(t *testing.T) {
	e := newTestEngine(t)
	line := comboLine("Big Mac Meal", "medium")
	line.Children[1].ModifiersRemove = []order.Modifier{{Name: "Ice", Quantity: 1}}
	o := order.New()
	o.Lines = []*order.LineItem{line}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultOK, res)
	assert.Empty(t, out.DrainCorrections())
	assert.Len(t, line.Children, 3)
}

func TestValidate_DealMissingNameSuspends(t *testing.T) {
	e := newTestEngine(t)
	o := order.New()
	o.Lines = []*order.LineItem{order.NewLineItem("", order.CategoryDeal)}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultSuspended, res)
	msg, ok := out.NextClarification()
	require.True(t, ok)
	assert.Contains(t, msg.Text, "What kind of deal?")
}

func TestValidate_DealStripsDrinkChildren(t *testing.T) {
	e := newTestEngine(t)
	line := order.NewLineItem("Small Double Deal", order.CategoryDeal)
	line.Children = []*order.ChildItem{
		{Name: "Hamburger", Category: order.CategoryBurger},
		{Name: "Cheeseburger", Category: order.CategoryBurger},
		{Name: "Sprite", Category: order.CategoryDrink},
	}
	o := order.New()
	o.Lines = []*order.LineItem{line}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultOK, res)
	require.Len(t, line.Children, 2)
	for _, ch := range line.Children {
		assert.Equal(t, order.CategoryBurger, ch.Category)
	}
	corrections := out.DrainCorrections()
	require.Len(t, corrections, 1)
	assert.Contains(t, corrections[0], "Deals cannot contain drinks. Sprite was removed.")
}

func TestValidate_DealSynthesizesBurgerPlaceholders(t *testing.T) {
	e := newTestEngine(t)
	line := order.NewLineItem("Small Double Deal", order.CategoryDeal)
	o := order.New()
	o.Lines = []*order.LineItem{line}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultSuspended, res)
	require.Len(t, line.Children, 2)
	msg, ok := out.NextClarification()
	require.True(t, ok)
	assert.Contains(t, msg.Text, "What two burgers for your Small Double Deal?")
}

func TestValidate_DealIneligibleBurgerSuspends(t *testing.T) {
	e := newTestEngine(t)
	line := order.NewLineItem("Small Double Deal", order.CategoryDeal)
	line.Children = []*order.ChildItem{
		{Name: "Big Mac", Category: order.CategoryBurger},
		{Name: "Hamburger", Category: order.CategoryBurger},
	}
	o := order.New()
	o.Lines = []*order.LineItem{line}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultSuspended, res)
	msg, ok := out.NextClarification()
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Big Mac is not allowed in Small Double Deal")
	assert.Contains(t, msg.Text, "Hamburger, Cheeseburger")
}

func TestValidate_FailFastStopsAtFirstClarification(t *testing.T) {
	e := newTestEngine(t)
	second := burgerLine("Big Mac", -5) // would be coerced if reached
	o := order.New()
	o.Lines = []*order.LineItem{
		order.NewLineItem("None", order.CategoryBurger),
		second,
	}
	out := NewOutbox()

	res := e.Validate(o, out)

	assert.Equal(t, ResultSuspended, res)
	// The later line is kept but untouched this pass.
	require.Len(t, o.Lines, 2)
	assert.Equal(t, -5, second.Quantity)
}

func TestValidate_Idempotent(t *testing.T) {
	e := newTestEngine(t)
	combo := comboLine("Big Mac Meal", "medium")
	combo.ModifiersAdd = []order.Modifier{{Name: "Gravy", Quantity: 1}}
	drink := order.NewLineItem("Sprite", order.CategoryDrink)
	drink.Size = "small"
	o := order.New()
	o.Lines = []*order.LineItem{combo, drink, burgerLine("Hamburger", 0)}
	out := NewOutbox()

	res := e.Validate(o, out)
	require.Equal(t, ResultOK, res)
	assert.NotEmpty(t, out.DrainCorrections())

	// A second pass over the already-corrected order is clean.
	res = e.Validate(o, out)
	assert.Equal(t, ResultOK, res)
	assert.Empty(t, out.DrainCorrections())
	assert.False(t, out.HasPending())
}
