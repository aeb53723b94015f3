package nlu

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"drivethru/internal/catalog"
	"drivethru/internal/order"
)

const generalGuidelines = `You are an AI assistant responsible for taking food orders at a fast-food drive-thru.
Your task is to extract the customer's intent from natural language input and convert it into structured data representing their order.

Guidelines:
- A combo meal includes one burger, one drink, and one fries item.
- Customers may refer to specific menu items or just general types (e.g., "a burger" vs. "Big Mac").
- If an item is mentioned without a name, use the placeholder name "None".
- If the customer says they don't want anything else, set "order_finished" to true and do not modify the existing order.
- If the customer ordered a combo, try to assign any separately mentioned drinks or fries into the combo, when appropriate.
- Ingredient changes go into "modifiers_to_add" and "modifiers_to_remove"; never invent ingredients that are not on the menu.
- Keep every modifier already present on an item unless the customer asks to change it.`

const dessertGuidelines = `You are an AI assistant taking food orders at a fast-food drive-thru.
The customer was just offered a dessert. Analyze the response and update the structured order data accordingly.`

const replyContract = `Reply with a single JSON object:
{"items": [{"name", "type", "size", "quantity", "modifiers_to_add": [{"name", "quantity"}], "modifiers_to_remove": [{"name", "quantity"}], "children": [{"name", "type", "modifiers_to_add", "modifiers_to_remove"}]}], "order_finished": bool}`

// buildSystemPrompt assembles the instruction block for one turn:
// guidelines keyed on what the assistant last asked, the current order
// state, and the menu.
func buildSystemPrompt(cat *catalog.Catalog, o *order.Order, assistant order.Message) string {
	guidelines := generalGuidelines
	if assistant.Tag == order.TagDessertOffered {
		guidelines = dessertGuidelines
	}

	var b strings.Builder
	b.WriteString(guidelines)
	b.WriteString("\n\n")
	b.WriteString(replyContract)
	b.WriteString("\n\nContext:\n")
	fmt.Fprintf(&b, "- Current order state:\n%s\n", o.Summary())
	fmt.Fprintf(&b, "- Assistant's message: %s\n", assistant.Text)
	fmt.Fprintf(&b, "- Menu:\n%s", renderMenu(cat))
	return b.String()
}

// renderMenu serializes the catalog as YAML for the prompt context. Prices
// are rendered as fixed two-decimal strings.
func renderMenu(cat *catalog.Catalog) string {
	doc := map[string]interface{}{
		"burgers":       itemsDoc(cat.Burgers),
		"drinks":        itemsDoc(cat.Drinks),
		"fries":         itemsDoc(cat.Fries),
		"desserts":      itemsDoc(cat.Desserts),
		"combos":        combosDoc(cat.Combos),
		"deals":         dealsDoc(cat.Deals),
		"sauces":        pricesDoc(cat.Sauces),
		"ingredients":   pricesDoc(cat.Ingredients),
		"default_fries": cat.DefaultFries,
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		// The catalog only holds maps, slices, and strings.
		return ""
	}
	return string(out)
}

func itemsDoc(items map[string]catalog.Item) map[string]interface{} {
	doc := make(map[string]interface{}, len(items))
	for name, item := range items {
		entry := map[string]interface{}{}
		if len(item.SizePrice) > 0 {
			sizes := make(map[string]string, len(item.SizePrice))
			for size, p := range item.SizePrice {
				sizes[size] = p.StringFixed(2)
			}
			entry["sizes"] = sizes
		} else {
			entry["price"] = item.Price.StringFixed(2)
		}
		if len(item.DefaultIngredients) > 0 {
			entry["default_ingredients"] = item.DefaultIngredients
		}
		if len(item.PossibleIngredients) > 0 {
			entry["possible_ingredients"] = item.PossibleIngredients
		}
		doc[name] = entry
	}
	return doc
}

func combosDoc(combos map[string]catalog.Combo) map[string]interface{} {
	doc := make(map[string]interface{}, len(combos))
	for name, combo := range combos {
		sizes := make(map[string]string, len(combo.SizePrice))
		for size, p := range combo.SizePrice {
			sizes[size] = p.StringFixed(2)
		}
		doc[name] = map[string]interface{}{
			"sizes":  sizes,
			"fries":  combo.Fries,
			"drinks": combo.Drinks,
			"sauces": combo.Sauces,
		}
	}
	return doc
}

func dealsDoc(deals []catalog.Deal) []map[string]interface{} {
	doc := make([]map[string]interface{}, 0, len(deals))
	for _, d := range deals {
		doc = append(doc, map[string]interface{}{
			"name":             d.Name,
			"eligible_burgers": d.Eligible,
		})
	}
	return doc
}

func pricesDoc(prices map[string]decimal.Decimal) map[string]string {
	doc := make(map[string]string, len(prices))
	for name, p := range prices {
		doc[name] = p.StringFixed(2)
	}
	return doc
}
