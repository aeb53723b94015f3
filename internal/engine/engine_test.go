package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"drivethru/internal/catalog"
	"drivethru/internal/common/logger"
	"drivethru/internal/order"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sizeTable(small, medium, large string) map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"small":  dec(small),
		"medium": dec(medium),
		"large":  dec(large),
	}
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Burgers: map[string]catalog.Item{
			"Big Mac": {
				Price:               dec("5.99"),
				DefaultIngredients:  []string{"Pickles", "Onion", "Lettuce"},
				PossibleIngredients: []string{"Cheese Slice", "Bacon"},
			},
			"Hamburger": {
				Price:               dec("2.49"),
				DefaultIngredients:  []string{"Pickles", "Onion"},
				PossibleIngredients: []string{"Cheese Slice"},
			},
			"Cheeseburger": {
				Price:               dec("2.99"),
				DefaultIngredients:  []string{"Pickles", "Onion", "Cheese Slice"},
				PossibleIngredients: []string{"Bacon"},
			},
			"Big Tasty": {
				Price:               dec("7.49"),
				DefaultIngredients:  []string{"Tomato", "Onion"},
				PossibleIngredients: []string{"Bacon"},
			},
			"Royal Cheeseburger": {
				Price:               dec("4.99"),
				DefaultIngredients:  []string{"Pickles", "Cheese Slice"},
				PossibleIngredients: []string{"Bacon"},
			},
		},
		Drinks: map[string]catalog.Item{
			"Coca-Cola": {
				SizePrice:          sizeTable("1.49", "1.99", "2.49"),
				DefaultIngredients: []string{"Ice"},
			},
			"Sprite": {
				SizePrice:          sizeTable("1.49", "1.99", "2.49"),
				DefaultIngredients: []string{"Ice"},
			},
		},
		Fries: map[string]catalog.Item{
			"French Fries": {
				SizePrice:           sizeTable("2.17", "2.89", "3.61"),
				PossibleIngredients: []string{"Cheese Slice", "Mayo"},
			},
			"Potato Dips": {
				SizePrice: sizeTable("2.39", "3.19", "3.99"),
			},
		},
		Desserts: map[string]catalog.Item{
			"McFlurry":  {Price: dec("3.49")},
			"Apple Pie": {Price: dec("1.79")},
		},
		Combos: map[string]catalog.Combo{
			"Big Mac Meal": {
				SizePrice: sizeTable("6.74", "8.99", "11.24"),
				Fries:     []string{"French Fries", "Potato Dips"},
				Drinks:    []string{"Coca-Cola", "Sprite"},
				Sauces:    []string{"Ketchup", "BBQ Sauce"},
			},
			"Cheeseburger Meal": {
				SizePrice: sizeTable("4.49", "5.99", "7.49"),
				Fries:     []string{"French Fries"},
				Drinks:    []string{"Coca-Cola", "Sprite"},
				Sauces:    []string{"Ketchup"},
			},
		},
		Deals: []catalog.Deal{
			{Name: "Small Double Deal", Eligible: []string{"Hamburger", "Cheeseburger"}},
			{Name: "Big Double Deal", Eligible: []string{"Big Mac", "Big Tasty", "Royal Cheeseburger"}},
		},
		Sauces: map[string]decimal.Decimal{
			"Ketchup":   dec("0.4"),
			"BBQ Sauce": dec("0.5"),
		},
		Ingredients: map[string]decimal.Decimal{
			"Cheese Slice": dec("0.5"),
			"Bacon":        dec("0.9"),
			"Mayo":         dec("0.3"),
		},
		DefaultFries: "French Fries",
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(testCatalog(), logger.NewTestLogger(t))
}

// markOffered stamps the upsell marker on a line, as a previous rules pass
// would have.
func markOffered(line *order.LineItem) *order.LineItem {
	line.ModifiersAdd = append(line.ModifiersAdd, order.Modifier{Name: offerMarker, Quantity: 1})
	return line
}

func burgerLine(name string, qty int) *order.LineItem {
	line := order.NewLineItem(name, order.CategoryBurger)
	line.Quantity = qty
	return line
}

func comboLine(name, size string) *order.LineItem {
	line := order.NewLineItem(name, order.CategoryCombo)
	line.Size = size
	line.Children = []*order.ChildItem{
		{Name: "Big Mac", Category: order.CategoryBurger},
		{Name: "Coca-Cola", Category: order.CategoryDrink},
		{Name: "French Fries", Category: order.CategoryFries},
	}
	return line
}
