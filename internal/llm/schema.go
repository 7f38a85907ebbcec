package llm

import (
	"encoding/json"

	"google.golang.org/genai"
)

// SchemaType is a JSON schema type name.
type SchemaType string

const (
	TypeString SchemaType = "string"
	TypeArray  SchemaType = "array"
	TypeObject SchemaType = "object"
)

// Schema is the response shape a structured request asks for.
// It is translated to the provider's native schema when one exists, and
// rendered into the prompt otherwise.
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// ArrayOf returns an array schema of items.
func ArrayOf(items *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: items}
}

// String returns a string schema with a description.
func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

// Object returns an object schema in which every listed property is required.
func Object(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: TypeObject, Properties: props, Required: required}
}

// JSON renders the schema for inclusion in a prompt.
func (s *Schema) JSON() string {
	if s == nil {
		return "{}"
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// toGenAI converts to the Gemini schema representation.
func (s *Schema) toGenAI() *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
	}
	switch s.Type {
	case TypeArray:
		out.Type = genai.TypeArray
	case TypeObject:
		out.Type = genai.TypeObject
	default:
		out.Type = genai.TypeString
	}
	if s.Items != nil {
		out.Items = s.Items.toGenAI()
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = p.toGenAI()
		}
	}
	return out
}
