// Package tools exposes the finance calculators and lookup tables both as
// directly callable functions and as invokable tools whose schemas are bound
// to the generative backend for model-driven function calling.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

type entry struct {
	tool   tool.InvokableTool
	render func(raw string) (string, error)
}

// Registry holds the static tool set. It is built once at process start
// and never mutated afterwards.
type Registry struct {
	entries map[string]entry
	order   []string
}

func NewRegistry() *Registry {
	r := &Registry{entries: map[string]entry{}}
	r.add(createEMITool(), renderAs(renderEMI))
	r.add(createEligibilityTool(), renderAs(renderEligibility))
	r.add(createGuidanceTool(), renderAs(renderGuidance))
	r.add(createDocumentsTool(), renderAs(renderDocuments))
	r.add(createTipsTool(), renderAs(renderTips))
	return r
}

func (r *Registry) add(t tool.InvokableTool, render func(string) (string, error)) {
	info, err := t.Info(context.Background())
	if err != nil {
		// Info on utils.NewTool tools is static and cannot fail; a failure
		// here means a malformed definition, which is a programming error.
		panic(fmt.Sprintf("tool info: %v", err))
	}
	r.entries[info.Name] = entry{tool: t, render: render}
	r.order = append(r.order, info.Name)
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Infos returns the tool schemas for binding to the chat model.
func (r *Registry) Infos(ctx context.Context) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		info, err := r.entries[name].tool.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info for %s: %w", name, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Execute runs the named tool with the JSON-encoded arguments and returns the
// structured result plus a human-readable rendering of it.
func (r *Registry) Execute(ctx context.Context, name, argsJSON string) (json.RawMessage, string, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, "", fmt.Errorf("unknown tool %q", name)
	}

	raw, err := e.tool.InvokableRun(ctx, argsJSON)
	if err != nil {
		return nil, "", fmt.Errorf("run tool %s: %w", name, err)
	}

	text, err := e.render(raw)
	if err != nil {
		return nil, "", fmt.Errorf("render tool %s output: %w", name, err)
	}

	return json.RawMessage(raw), text, nil
}

func renderAs[T any](render func(*T) string) func(string) (string, error) {
	return func(raw string) (string, error) {
		var out T
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return "", err
		}
		return render(&out), nil
	}
}
