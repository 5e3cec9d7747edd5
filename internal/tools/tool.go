package tools

import (
	"context"
	"sort"

	"github.com/rahul/drishti/internal/dataset"
)

// Result is the structured outcome of a dataset operation. Summary is the
// human-readable report. Products, when non-nil, is the matched subset that
// downstream operations may be restricted to; a nil slice marks a
// summary-only result with no usable subset.
type Result struct {
	Summary  string            `json:"summary"`
	Products []dataset.Product `json:"products,omitempty"`
}

// ProductNames returns the matched product names, in result order.
func (r *Result) ProductNames() []string {
	names := make([]string, 0, len(r.Products))
	for _, p := range r.Products {
		names = append(names, p.ProductName)
	}
	return names
}

// Tool defines the interface for all dataset operations.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any // JSON Schema for the tool's inputs
	Execute(ctx context.Context, params map[string]any) (*Result, error)
}

// Registry is the capability table. It is built once at startup and never
// mutated afterwards; the step resolver and the loop controller share it
// by reference.
type Registry struct {
	tools map[string]Tool
	names []string
}

func NewRegistry(ts ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(ts))}
	for _, t := range ts {
		r.tools[t.Name()] = t
	}
	for name := range r.tools {
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r
}

func (r *Registry) Get(name string) Tool {
	return r.tools[name]
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// All returns the tools in sorted name order.
func (r *Registry) All() []Tool {
	out := make([]Tool, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.tools[name])
	}
	return out
}
