// In file: internal/tools/types.go

// Package tools defines the gateway's fixed tool catalog, the executor that
// dispatches a model's tool call to the right backend, and the uniform
// result shape every backend response is normalized into.
package tools

import "encoding/json"

// ToolTypeFunction is the standard type for function-based tools.
const ToolTypeFunction = "function"

// Tool defines the schema for a function that can be described to an LLM.
// This is the information you send *to* the model to make it aware of a tool's existence.
type Tool struct {
	// Type specifies the type of tool, which is always "function".
	Type string `json:"type"`
	// Function holds the detailed definition of the function.
	Function Function `json:"function"`
}

// Function defines the name, description, and parameters of a callable tool.
type Function struct {
	// Name is the name of the function to be called (e.g., "get_weather").
	Name string `json:"name"`
	// Description is what the model reads to decide when to use the tool.
	Description string `json:"description"`
	// Parameters defines the arguments the function accepts, structured as a JSON Schema.
	Parameters JSONSchema `json:"parameters"`
}

// JSONSchema is the subset of JSON Schema the model endpoint needs for
// structured argument generation: types, nested items, and required fields.
type JSONSchema struct {
	// Type defines the data type for a schema node (e.g., "object", "string", "number").
	Type string `json:"type"`
	// Description explains what a specific parameter is for.
	Description string `json:"description,omitempty"`
	// Properties describes the parameters of an object.
	Properties map[string]*JSONSchema `json:"properties,omitempty"`
	// Items describes the element type of an array.
	Items *JSONSchema `json:"items,omitempty"`
	// Required is a list of parameter names that are mandatory for a function call.
	Required []string `json:"required,omitempty"`
}

// MarshalJSON always writes "properties" and "required" for object schemas,
// so a tool without parameters is sent as {"type":"object","properties":{}}.
// Model endpoints decode a missing map as null.
func (s JSONSchema) MarshalJSON() ([]byte, error) {
	type plain JSONSchema
	if s.Type != "object" {
		return json.Marshal(plain(s))
	}
	properties := s.Properties
	if properties == nil {
		properties = map[string]*JSONSchema{}
	}
	required := s.Required
	if required == nil {
		required = []string{}
	}
	return json.Marshal(struct {
		plain
		Properties map[string]*JSONSchema `json:"properties"`
		Required   []string               `json:"required"`
	}{plain(s), properties, required})
}

// Arguments holds the decoded arguments of a tool call.
type Arguments map[string]any

// ToolCall represents a request *from* the LLM to execute a specific tool.
type ToolCall struct {
	// ID correlates a call with its result. Not every provider sets it.
	ID string `json:"id,omitempty"`
	// Function contains the name and arguments for the function the LLM wants to execute.
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction holds the name and arguments of a function call requested by the LLM.
type ToolCallFunction struct {
	Name      string    `json:"name"`
	Arguments Arguments `json:"arguments"`
}

// NewFunctionTool is a helper function that simplifies the creation of a new Tool.
// It ensures the tool is created with the correct "function" type.
func NewFunctionTool(name Name, description string, parameters JSONSchema) Tool {
	return Tool{
		Type: ToolTypeFunction,
		Function: Function{
			Name:        string(name),
			Description: description,
			Parameters:  parameters,
		},
	}
}

// String returns the argument under key if it is a string.
func (a Arguments) String(key string) (string, bool) {
	v, ok := a[key].(string)
	return v, ok
}
