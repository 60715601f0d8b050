package adk

import (
	"context"
	"fmt"
	"sort"
)

// Tool represents an executable action exposed to an agent
type Tool interface {
	Name() string
	Description() string
	Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error)
	Schema() map[string]interface{} // JSON schema for arguments
}

// Registry holds tools by name.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates a registry holding the given tools
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range tools {
		r.RegisterTool(t)
	}
	return r
}

// RegisterTool adds a tool, replacing any tool with the same name.
func (r *Registry) RegisterTool(t Tool) {
	r.tools[t.Name()] = t
}

// Lookup returns the named tool.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Tools returns the registered tools ordered by name.
func (r *Registry) Tools() []Tool {
	list := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// Call runs the named tool with args.
func (r *Registry) Call(ctx context.Context, name string, args map[string]interface{}, progress func(string)) (string, error) {
	tool, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("tool %s not found", name)
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	if progress == nil {
		progress = func(string) {}
	}
	return tool.Execute(ctx, args, progress)
}
