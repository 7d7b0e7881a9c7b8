package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildFragmentJSONSchema returns the invoice-fragment schema (draft 2020-12
// subset) as a generic map. It is deliberately loose: the engine's output is
// coerced field by field at conversion, so the schema only rejects replies
// whose shape is beyond repair (items that are not objects, a non-scalar
// invoice number, and the like).
func BuildFragmentJSONSchema() map[string]any {
	scalar := map[string]any{"type": []string{"string", "number"}}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"Supplier Name":    scalar,
			"Sold to Address":  scalar,
			"Order Date":       scalar,
			"Ship Date":        scalar,
			"Invoice Number":   scalar,
			"Shipping Address": scalar,
			"Total":            scalar,
			"List of Items": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "object"},
			},
			"Items": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "object"},
			},
		},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
