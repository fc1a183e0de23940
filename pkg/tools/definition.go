package tools

import (
	"context"
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Result is what a tool handler yields. Speech is a plain sentence meant for
// speech synthesis, never structured data or a raw error. Success feeds
// the tool_end log/event and follows the tool's caller-facing contract.
type Result struct {
	Speech  string
	Success bool
}

// Handler executes one tool invocation. Handlers are the single boundary that
// converts typed adapter failures into caller-safe sentences; they never
// return an error.
type Handler func(ctx context.Context, args json.RawMessage) Result

// Definition describes one callable tool: a stable name, a description and
// argument schema for the runtime's tool-selection mechanism, and the typed
// handler bound at registration. Dispatch is an explicit name lookup, not
// runtime reflection.
type Definition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Schema      *jsonschema.Schema `json:"parameters"`
	Handler     Handler            `json:"-"`
}

// reflectSchema derives the argument schema from a tool's input struct at
// registration time, with definitions expanded inline.
func reflectSchema(v interface{}) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(v)
	if schema.Type == "" {
		schema.Type = "object"
	}
	schema.Version = ""
	return schema
}
