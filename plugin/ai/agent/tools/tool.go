// Package tools implements the cache-aside source tools the cricket agent
// invokes: daily scoreboard, live scoreboard, specific-match lookup and
// web search. Every tool degrades to a descriptive string instead of an
// error so the agent always has something to summarize.
package tools

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultToolTimeout bounds a single tool execution, provider call included.
const DefaultToolTimeout = 12 * time.Second

// Tool is the interface for agent tools.
// Tool 是代理工具的接口。
type Tool interface {
	// Name returns the name of the tool.
	Name() string

	// Description returns a description of what the tool does.
	Description() string

	// Run executes the tool with the given input.
	// Run 使用给定的输入执行工具。
	Run(ctx context.Context, input string) (string, error)
}

// BaseTool provides a reusable base implementation for tools.
// BaseTool 为工具提供可复用的基础实现。
type BaseTool struct {
	name        string
	description string
	execute     func(ctx context.Context, input string) (string, error)
	validate    func(input string) error
	timeout     time.Duration
}

// ToolOption is a function that configures a BaseTool.
type ToolOption func(*BaseTool)

// WithTimeout sets a timeout for tool execution.
func WithTimeout(timeout time.Duration) ToolOption {
	return func(t *BaseTool) {
		t.timeout = timeout
	}
}

// WithValidator sets a custom input validator.
func WithValidator(validator func(input string) error) ToolOption {
	return func(t *BaseTool) {
		t.validate = validator
	}
}

// NewBaseTool creates a new BaseTool.
// NewBaseTool 创建一个新的 BaseTool。
func NewBaseTool(
	name string,
	description string,
	execute func(ctx context.Context, input string) (string, error),
	opts ...ToolOption,
) *BaseTool {
	tool := &BaseTool{
		name:        name,
		description: description,
		execute:     execute,
		timeout:     DefaultToolTimeout,
		validate:    defaultValidator,
	}

	for _, opt := range opts {
		opt(tool)
	}

	return tool
}

// Name returns the name of the tool.
func (t *BaseTool) Name() string {
	return t.name
}

// Description returns the description of the tool.
func (t *BaseTool) Description() string {
	return t.description
}

// Run executes the tool with validation and timeout handling.
// Run 执行工具，包含验证和超时处理。
func (t *BaseTool) Run(ctx context.Context, input string) (string, error) {
	if err := t.validate(input); err != nil {
		return "", fmt.Errorf("input validation failed: %w", err)
	}

	execCtx := ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	return t.execute(execCtx, input)
}

// defaultValidator provides basic input validation.
func defaultValidator(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input cannot be empty")
	}
	return nil
}

// allowEmptyInput accepts any input, including empty. The scoreboard tools
// ignore their query argument.
func allowEmptyInput(string) error {
	return nil
}

// ToolRegistry manages a collection of tools.
// ToolRegistry 管理工具集合。
type ToolRegistry struct {
	tools map[string]Tool
	order []string
}

// NewToolRegistry creates a new ToolRegistry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry. Registration order is preserved
// so tool descriptions render deterministically in prompts.
func (r *ToolRegistry) Register(tool Tool) error {
	if tool == nil {
		return fmt.Errorf("tool cannot be nil")
	}
	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %s already registered", name)
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Get retrieves a tool by name.
func (r *ToolRegistry) Get(name string) (Tool, bool) {
	tool, exists := r.tools[name]
	return tool, exists
}

// List returns all registered tool names in registration order.
func (r *ToolRegistry) List() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Describe returns a description string for all tools.
// Describe 返回所有工具的描述字符串。
func (r *ToolRegistry) Describe() string {
	if len(r.tools) == 0 {
		return "No tools available"
	}

	var desc strings.Builder
	desc.Grow(256)

	for _, name := range r.order {
		tool := r.tools[name]
		desc.WriteString("- ")
		desc.WriteString(name)
		desc.WriteString(": ")
		desc.WriteString(tool.Description())
		desc.WriteString("\n")
	}

	return desc.String()
}

// Count returns the number of registered tools.
func (r *ToolRegistry) Count() int {
	return len(r.tools)
}
