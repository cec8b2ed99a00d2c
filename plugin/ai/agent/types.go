package agent

import (
	"context"
	"fmt"
)

// ParrotAgent is the interface for parrot agents.
// ParrotAgent 是鹦鹉代理的接口。
type ParrotAgent interface {
	// Name returns the name of the parrot agent.
	Name() string

	// ExecuteWithCallback executes the agent with callback support for
	// real-time feedback. The final answer is delivered through the
	// callback as an EventTypeAnswer event.
	ExecuteWithCallback(ctx context.Context, sessionID, userInput string, callback EventCallback) error
}

// EventCallback is the callback function type for agent events.
// EventCallback 是代理事件的回调函数类型。
//
// Returning an error aborts agent execution.
type EventCallback func(eventType string, eventData any) error

// Common event types
const (
	EventTypeThinking   = "thinking"    // Agent is thinking
	EventTypeToolUse    = "tool_use"    // Agent is using a tool
	EventTypeToolResult = "tool_result" // Tool execution result
	EventTypeAnswer     = "answer"      // Final answer from agent
	EventTypeError      = "error"       // Error occurred
)

// ParrotError represents an error from a parrot agent.
// ParrotError 表示来自鹦鹉代理的错误。
type ParrotError struct {
	AgentName string // Name of the agent that produced the error
	Operation string // Operation being performed when error occurred
	Err       error  // Underlying error
}

// Error implements the error interface.
func (e *ParrotError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("parrot %s: %s failed: %v", e.AgentName, e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParrotError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewParrotError creates a new ParrotError.
func NewParrotError(agentName, operation string, err error) *ParrotError {
	return &ParrotError{
		AgentName: agentName,
		Operation: operation,
		Err:       err,
	}
}

var _ ParrotAgent = (*PitchParrot)(nil)
