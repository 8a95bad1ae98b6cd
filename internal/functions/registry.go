// ABOUTME: Callable function registry exposed to the conversational driver
// ABOUTME: Static name-to-handler table with JSON argument bags, enumerable at startup
package functions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BigLebowskii/ai-voice-assistant/internal/storage"
)

// Handler executes one named operation against a raw JSON argument
// object and returns a JSON-serializable result.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Schema describes the JSON object a handler accepts, in the shape tool
// surfaces expect (a properties map plus required names).
type Schema struct {
	Properties map[string]any
	Required   []string
}

// Spec is the externally visible description of one operation.
type Spec struct {
	Name        string
	Description string
	Parameters  Schema
}

type operation struct {
	Spec
	handler Handler
}

// ErrorPayload is the structured non-exceptional failure result. Lookup
// operations return it instead of raising when a record is absent, and
// generate_summary returns it for any internal failure, so the driver
// always receives ordinary data it can phrase in natural language.
type ErrorPayload struct {
	Error string `json:"error"`
}

// Registry dispatches named operations to the persistence backend. The
// catalog is a fixed table built at construction; nothing is registered
// afterwards.
type Registry struct {
	store storage.Backend
	ops   map[string]operation
	order []string
}

// New builds the registry over the given backend with the full operation
// catalog.
func New(store storage.Backend) *Registry {
	r := &Registry{
		store: store,
		ops:   make(map[string]operation),
	}
	for _, op := range r.catalog() {
		r.ops[op.Name] = op
		r.order = append(r.order, op.Name)
	}
	return r
}

// Call dispatches one named operation. Unknown names and validation
// failures return errors; containment for backend failures is per
// operation (boolean operations never return an error for them).
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	op, ok := r.ops[name]
	if !ok {
		return nil, fmt.Errorf("unknown function %q", name)
	}
	return op.handler(ctx, args)
}

// Catalog returns the operation specs in registration order.
func (r *Registry) Catalog() []Spec {
	specs := make([]Spec, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, r.ops[name].Spec)
	}
	return specs
}

// decodeArgs unmarshals the argument bag, treating an empty bag as {}.
func decodeArgs(raw json.RawMessage, into any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func errMissing(field string) error {
	return fmt.Errorf("%s is required", field)
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func objectProp(description string) map[string]any {
	return map[string]any{"type": "object", "description": description}
}
