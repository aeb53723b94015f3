package nlu

import (
	"encoding/json"

	apperrors "drivethru/internal/common/errors"
	"drivethru/internal/order"
)

// Wire types mirror the JSON contract the model is prompted to produce.
// Quantities default to 1 when omitted; names may be null or the "None"
// placeholder for items the customer has not specified yet.

type wireIngredient struct {
	Name     string `json:"name"`
	Quantity *int   `json:"quantity"`
}

type wireChild struct {
	Name              string           `json:"name"`
	Type              string           `json:"type"`
	ModifiersToAdd    []wireIngredient `json:"modifiers_to_add"`
	ModifiersToRemove []wireIngredient `json:"modifiers_to_remove"`
}

type wireItem struct {
	Name              string           `json:"name"`
	Type              string           `json:"type"`
	Size              string           `json:"size"`
	Quantity          *int             `json:"quantity"`
	ModifiersToAdd    []wireIngredient `json:"modifiers_to_add"`
	ModifiersToRemove []wireIngredient `json:"modifiers_to_remove"`
	Children          []wireChild      `json:"children"`
}

type wireState struct {
	Items         []wireItem `json:"items"`
	OrderFinished bool       `json:"order_finished"`
}

// decodeReply turns a schema-valid model reply into order lines. Category
// strings the parser does not recognize map to the unknown category with
// the raw string preserved for the correction message.
func decodeReply(raw string) ([]*order.LineItem, bool, error) {
	var state wireState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, false, apperrors.NewNLUParseFailedError(err.Error())
	}

	lines := make([]*order.LineItem, 0, len(state.Items))
	for _, it := range state.Items {
		line := order.NewLineItem(it.Name, order.ParseCategory(it.Type))
		line.RawCategory = it.Type
		line.Size = it.Size
		if it.Quantity != nil {
			line.Quantity = *it.Quantity
		}
		line.ModifiersAdd = decodeModifiers(it.ModifiersToAdd)
		line.ModifiersRemove = decodeModifiers(it.ModifiersToRemove)
		for _, ch := range it.Children {
			line.Children = append(line.Children, &order.ChildItem{
				Name:            ch.Name,
				Category:        order.ParseCategory(ch.Type),
				ModifiersAdd:    decodeModifiers(ch.ModifiersToAdd),
				ModifiersRemove: decodeModifiers(ch.ModifiersToRemove),
			})
		}
		lines = append(lines, line)
	}
	return lines, state.OrderFinished, nil
}

func decodeModifiers(mods []wireIngredient) []order.Modifier {
	if len(mods) == 0 {
		return nil
	}
	out := make([]order.Modifier, 0, len(mods))
	for _, m := range mods {
		qty := 1
		if m.Quantity != nil {
			qty = *m.Quantity
		}
		out = append(out, order.Modifier{Name: m.Name, Quantity: qty})
	}
	return out
}
