package tool

import (
	"context"
	"errors"
)

var (
	ErrInvalidTool = errors.New("invalid tool")
)

type Tool struct {
	Name        string
	Description string

	Parameters map[string]any
}

type Provider interface {
	Tools(ctx context.Context) ([]Tool, error)
	Execute(ctx context.Context, name string, parameters map[string]any) (any, error)
}

// Result is the structured outcome of a tool invocation. Failures are
// carried here, not as Go errors: tool providers reserve the error
// return for host-level problems like an unknown tool name.
type Result struct {
	Success bool `json:"success"`

	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

func Failure(message string) Result {
	return Result{
		Error: message,
	}
}

func NormalizeSchema(schema map[string]any) map[string]any {
	if len(schema) == 0 {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}
	}

	if schema["type"] == nil {
		if schema["properties"] != nil {
			schema["type"] = "object"
		} else if schema["items"] != nil {
			schema["type"] = "array"
		} else {
			schema["type"] = "object"
		}
	}

	schemaType, _ := schema["type"].(string)

	switch schemaType {
	case "object":
		if schema["properties"] == nil {
			schema["properties"] = map[string]any{}
		}
	case "array":
		if schema["items"] == nil {
			schema["items"] = map[string]any{"type": "string"}
		}
	}

	return schema
}
