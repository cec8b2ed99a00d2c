package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hrygo/cricketsense/plugin/ai"
	"github.com/hrygo/cricketsense/plugin/ai/agent/tools"
)

// MaxIterations caps the model-driven tool loop. On reaching the cap the
// parrot forces a best-effort final answer from the gathered tool outputs.
const MaxIterations = 3

// defaultToolOrder is walked when the model never manages a usable tool
// call: specific-match lookup first, then the daily board, then the web.
var defaultToolOrder = []string{tools.NameSpecific, tools.NameDaily, tools.NameSearch}

// PitchParrot is the cricket information parrot (🦜 皮奇). It routes a user
// question to the scoreboard and web-search tools, deterministically where
// the question is unambiguous, through the model loop otherwise.
// PitchParrot 是板球信息鹦鹉（🦜 皮奇）。
type PitchParrot struct {
	llm      ai.LLMService
	registry *tools.ToolRegistry
	contexts *ContextStore
	metrics  *AgentMetrics
	now      func() time.Time
}

// NewPitchParrot creates a new cricket parrot agent.
func NewPitchParrot(llm ai.LLMService, registry *tools.ToolRegistry, contexts *ContextStore) (*PitchParrot, error) {
	if llm == nil {
		return nil, fmt.Errorf("llm cannot be nil")
	}
	if registry == nil || registry.Count() == 0 {
		return nil, fmt.Errorf("tool registry cannot be empty")
	}
	if contexts == nil {
		contexts = NewContextStore()
	}

	return &PitchParrot{
		llm:      llm,
		registry: registry,
		contexts: contexts,
		metrics:  NewAgentMetrics(),
		now:      time.Now,
	}, nil
}

// Name returns the name of the parrot.
func (p *PitchParrot) Name() string {
	return "pitch"
}

// Metrics exposes the collector for logging and inspection.
func (p *PitchParrot) Metrics() *AgentMetrics {
	return p.metrics
}

// Contexts exposes the session store, e.g. for the REPL reset command.
func (p *PitchParrot) Contexts() *ContextStore {
	return p.contexts
}

// ExecuteWithCallback answers one user question. Every failure path ends in
// a user-visible answer event; the returned error is for logging only.
func (p *PitchParrot) ExecuteWithCallback(ctx context.Context, sessionID, userInput string, callback EventCallback) (err error) {
	start := p.now()
	iterations := 0
	conv := p.contexts.GetOrCreate(sessionID)

	defer func() {
		if r := recover(); r != nil {
			err = NewParrotError(p.Name(), "ExecuteWithCallback", fmt.Errorf("panic: %v", r))
		}
		if err != nil {
			slog.Error("PitchParrot: execution failed",
				"session_id", sessionID,
				"input", truncateString(userInput, 100),
				"error", err,
			)
			if callback != nil {
				_ = callback(EventTypeError, err.Error())
				_ = callback(EventTypeAnswer, apologyMessage)
			}
			conv.Append("user", userInput)
			conv.Append("assistant", apologyMessage)
		}
		p.metrics.RecordExecution(p.now().Sub(start), iterations, err == nil)
	}()

	slog.Info("PitchParrot: ExecuteWithCallback started",
		"session_id", sessionID,
		"input", truncateString(userInput, 100),
		"history_len", conv.Len(),
	)

	// Deterministic pre-filter first; the model only sees the residue.
	if decision := RouteQuery(userInput); decision.Tool != "" {
		p.metrics.RecordPreRouted()
		slog.Debug("PitchParrot: pre-routed",
			"session_id", sessionID, "tool", decision.Tool, "rule", decision.Rule)
		return p.executeDirect(ctx, conv, decision, callback)
	}

	p.metrics.RecordModelRouted()
	iterations, err = p.executeLoop(ctx, conv, userInput, callback)
	return err
}

// executeDirect runs a pre-routed tool and has the model shape the final
// answer. A model failure degrades to the raw tool output rather than
// discarding fetched data.
func (p *PitchParrot) executeDirect(ctx context.Context, conv *ConversationContext, decision RouteDecision, callback EventCallback) error {
	tool, ok := p.registry.Get(decision.Tool)
	if !ok {
		return NewParrotError(p.Name(), "executeDirect", fmt.Errorf("%s: no such tool", decision.Tool))
	}

	if callback != nil {
		_ = callback(EventTypeToolUse, decision.Tool)
	}

	output, err := p.runTool(ctx, tool, decision.Query)
	if err != nil {
		return NewParrotError(p.Name(), decision.Tool, err)
	}
	if callback != nil {
		_ = callback(EventTypeToolResult, output)
	}

	answer := p.summarize(ctx, conv, decision.Query, output)
	if callback != nil {
		if err := callback(EventTypeAnswer, answer); err != nil {
			return err
		}
	}

	conv.Append("user", decision.Query)
	conv.Append("assistant", answer)
	return nil
}

// executeLoop is the model-driven loop for ambiguous queries: at most
// MaxIterations tool calls, one per turn, then a forced final answer.
func (p *PitchParrot) executeLoop(ctx context.Context, conv *ConversationContext, userInput string, callback EventCallback) (int, error) {
	messages := ai.FormatMessages(
		systemRules(p.registry.Describe(), p.now()),
		userInput,
		conv.History(),
	)

	var gathered []string
	iteration := 0

	for ; iteration < MaxIterations; iteration++ {
		select {
		case <-ctx.Done():
			return iteration, NewParrotError(p.Name(), "executeLoop", ctx.Err())
		default:
		}

		if callback != nil {
			_ = callback(EventTypeThinking, "Checking the scoreboard...")
		}

		response, err := p.llm.Chat(ctx, messages)
		if err != nil {
			return iteration, NewParrotError(p.Name(), "Chat", err)
		}

		cleanText, toolName, toolInput, parseErr := parseToolCall(response)
		if parseErr != nil {
			// No tool call: this is the final answer.
			answer := strings.TrimSpace(response)
			return iteration, p.finish(conv, userInput, answer, callback)
		}

		// Relay any pleasantries ahead of the tool call.
		if cleanText != "" && callback != nil {
			_ = callback(EventTypeAnswer, cleanText+"\n")
		}

		tool, ok := p.registry.Get(toolName)
		if !ok {
			slog.Warn("PitchParrot: unknown tool requested", "tool", toolName)
			messages = append(messages,
				ai.AssistantMessage(response),
				ai.UserMessage(fmt.Sprintf("Unknown tool: %s. Available tools:\n%s", toolName, p.registry.Describe())),
			)
			continue
		}

		if callback != nil {
			_ = callback(EventTypeToolUse, toolName)
		}

		output, err := p.runTool(ctx, tool, queryFromInput(toolInput, userInput))
		if err != nil {
			// Tools degrade internally; an error here means invalid input.
			output = fmt.Sprintf("%s failed: %s", toolName, truncateString(err.Error(), 200))
		}
		gathered = append(gathered, output)

		if callback != nil {
			_ = callback(EventTypeToolResult, output)
		}

		messages = append(messages,
			ai.AssistantMessage(response),
			ai.UserMessage("Tool result: "+output),
		)
	}

	// Iteration cap reached: forced stop.
	p.metrics.RecordForcedStop()
	slog.Warn("PitchParrot: iteration cap reached, forcing final answer",
		"session_id", conv.SessionID, "max_iterations", MaxIterations)

	if len(gathered) == 0 {
		// The model burned its iterations without a usable tool call; walk
		// the default order deterministically.
		for _, name := range defaultToolOrder {
			tool, ok := p.registry.Get(name)
			if !ok {
				continue
			}
			output, err := p.runTool(ctx, tool, userInput)
			if err != nil {
				continue
			}
			gathered = append(gathered, output)
			if callback != nil {
				_ = callback(EventTypeToolResult, output)
			}
			messages = append(messages, ai.UserMessage("Tool result: "+output))
			break
		}
	}

	messages = append(messages, ai.UserMessage(forcedStopPrompt))
	answer, err := p.llm.Chat(ctx, messages)
	answer = strings.TrimSpace(answer)
	if err != nil || answer == "" {
		// Best effort: hand over the last tool output untouched.
		if len(gathered) > 0 {
			answer = gathered[len(gathered)-1]
		} else {
			return iteration, NewParrotError(p.Name(), "executeLoop", fmt.Errorf("no answer after %d iterations", MaxIterations))
		}
	}

	return iteration, p.finish(conv, userInput, answer, callback)
}

func (p *PitchParrot) finish(conv *ConversationContext, userInput, answer string, callback EventCallback) error {
	if callback != nil {
		if err := callback(EventTypeAnswer, answer); err != nil {
			return err
		}
	}
	conv.Append("user", userInput)
	conv.Append("assistant", answer)
	return nil
}

func (p *PitchParrot) runTool(ctx context.Context, tool tools.Tool, query string) (string, error) {
	start := p.now()
	output, err := tool.Run(ctx, query)
	p.metrics.RecordToolCall(tool.Name(), p.now().Sub(start), err == nil)

	slog.Debug("PitchParrot: tool executed",
		"tool", tool.Name(),
		"query", truncateString(query, 100),
		"output_len", len(output),
		"error", err,
	)
	return output, err
}

// summarize asks the model to shape a pre-routed tool output into the final
// answer. On model failure the raw tool output is returned as-is.
func (p *PitchParrot) summarize(ctx context.Context, conv *ConversationContext, question, toolOutput string) string {
	prompt := fmt.Sprintf(
		"Question: %s\n\nTool result:\n%s\n\nAnswer the question using only the tool result. Preserve its markdown formatting and exact figures.",
		question, toolOutput)

	messages := ai.FormatMessages(
		systemRules(p.registry.Describe(), p.now()),
		prompt,
		conv.History(),
	)

	answer, err := p.llm.Chat(ctx, messages)
	answer = strings.TrimSpace(answer)
	if err != nil || answer == "" {
		slog.Warn("PitchParrot: summarization failed, returning tool output", "error", err)
		return toolOutput
	}
	return answer
}

// parseToolCall attempts to parse a tool call from a model response.
// Returns leading pleasantry text, tool name, input JSON, and an error when
// the response contains no tool call.
func parseToolCall(response string) (string, string, string, error) {
	lines := strings.Split(response, "\n")

	var toolName string
	var inputJSON string
	var pleasantryLines []string
	foundTool := false
	foundInput := false

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		if strings.HasPrefix(trimmedLine, "TOOL:") {
			parts := strings.SplitN(trimmedLine, ":", 2)
			if len(parts) == 2 {
				toolName = strings.TrimSpace(parts[1])
				foundTool = true
			}
			continue
		}

		if strings.HasPrefix(trimmedLine, "INPUT:") {
			parts := strings.SplitN(trimmedLine, ":", 2)
			if len(parts) == 2 {
				inputStr := strings.TrimSpace(parts[1])
				var jsonObj map[string]any
				if err := json.Unmarshal([]byte(inputStr), &jsonObj); err == nil {
					inputJSON = inputStr
					foundInput = true
				}
			}
			continue
		}

		if !foundTool && !foundInput {
			pleasantryLines = append(pleasantryLines, line)
		}
	}

	if foundTool && foundInput {
		cleanText := strings.TrimSpace(strings.Join(pleasantryLines, "\n"))
		return cleanText, toolName, inputJSON, nil
	}

	return response, "", "", fmt.Errorf("no tool call in response")
}

// queryFromInput extracts the "query" field from a tool-call INPUT payload,
// falling back to the raw user input when absent.
func queryFromInput(inputJSON, userInput string) string {
	var payload struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(inputJSON), &payload); err == nil && strings.TrimSpace(payload.Query) != "" {
		return payload.Query
	}
	return userInput
}
