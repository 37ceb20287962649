package vertexclaude

import (
	"context"
	"fmt"
	"sync"
)

// ToolHandler executes one tool invocation. The input map is the parsed
// tool_use input; the returned string becomes the tool_result content.
type ToolHandler func(ctx context.Context, input map[string]interface{}) (string, error)

// ToolRegistry pairs tool definitions with their handlers. It is safe for
// concurrent use; a registry is typically built once at startup and then
// shared across conversations.
type ToolRegistry struct {
	mu       sync.RWMutex
	tools    map[string]Tool
	handlers map[string]ToolHandler
	order    []string
}

// NewToolRegistry creates an empty registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools:    make(map[string]Tool),
		handlers: make(map[string]ToolHandler),
	}
}

// Register adds a tool and its handler to the registry.
func (r *ToolRegistry) Register(tool Tool, handler ToolHandler) error {
	if err := tool.Validate(); err != nil {
		return fmt.Errorf("register tool: %w", err)
	}

	if handler == nil {
		return fmt.Errorf("register tool %s: handler is required", tool.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("tool %s is already registered", tool.Name)
	}

	r.tools[tool.Name] = tool
	r.handlers[tool.Name] = handler
	r.order = append(r.order, tool.Name)
	return nil
}

// Unregister removes a tool from the registry.
func (r *ToolRegistry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; !exists {
		return fmt.Errorf("tool %s is not registered", name)
	}

	delete(r.tools, name)
	delete(r.handlers, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// IsRegistered checks if a tool is registered.
func (r *ToolRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.tools[name]
	return exists
}

// Tools returns the tool definitions in registration order, ready to be
// placed on RequestParams.Tools.
func (r *ToolRegistry) Tools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Execute runs the handler registered for name.
func (r *ToolRegistry) Execute(ctx context.Context, name string, input map[string]interface{}) (string, error) {
	r.mu.RLock()
	handler, exists := r.handlers[name]
	r.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	return handler(ctx, input)
}
