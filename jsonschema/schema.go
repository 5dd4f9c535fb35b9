// Package jsonschema holds the minimal JSON Schema model used to describe
// keyboard documents to editors and external validators.
package jsonschema

// Draft is the dialect emitted in the $schema keyword.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	SchemaURI   string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Core
	Type string `json:"type,omitempty"`
	Enum []any  `json:"enum,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`
}

// Ptr returns a pointer to v, for the optional numeric keywords.
func Ptr[T int | float64](v T) *T { return &v }

// ArrayOf returns an array schema with the given item schema.
func ArrayOf(items *Schema) *Schema { return &Schema{Type: "array", Items: items} }

// Tuple returns an array schema of exactly n items of the given schema.
func Tuple(items *Schema, n int) *Schema {
	return &Schema{Type: "array", Items: items, MinItems: Ptr(n), MaxItems: Ptr(n)}
}
