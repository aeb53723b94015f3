package nlu

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "drivethru/internal/common/errors"
)

// replySchema constrains the model's JSON reply before decoding. Type
// strings are left open on purpose: unknown categories are handled
// downstream with a customer-facing correction, not a retry.
const replySchema = `{
  "type": "object",
  "required": ["items", "order_finished"],
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type"],
        "properties": {
          "name": {"type": ["string", "null"]},
          "type": {"type": "string"},
          "size": {"type": ["string", "null"]},
          "quantity": {"type": "integer"},
          "modifiers_to_add": {"$ref": "#/definitions/ingredients"},
          "modifiers_to_remove": {"$ref": "#/definitions/ingredients"},
          "children": {
            "type": ["array", "null"],
            "items": {
              "type": "object",
              "required": ["type"],
              "properties": {
                "name": {"type": ["string", "null"]},
                "type": {"type": "string"},
                "modifiers_to_add": {"$ref": "#/definitions/ingredients"},
                "modifiers_to_remove": {"$ref": "#/definitions/ingredients"}
              }
            }
          }
        }
      }
    },
    "order_finished": {"type": "boolean"}
  },
  "definitions": {
    "ingredients": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": ["string", "null"]},
          "quantity": {"type": "integer"}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(replySchema)

// validateReply checks the raw model output against the reply schema.
func validateReply(raw string) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return apperrors.NewNLUParseFailedError("reply is not valid JSON: " + err.Error())
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return apperrors.NewNLUSchemaInvalidError(strings.Join(errs, "; "))
	}
	return nil
}
