// Metrics collection for the cricket agent: execution performance, tool
// usage and routing outcomes, for logging and observability.
package agent

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"log/slog"
)

// AgentMetrics collects and tracks agent execution metrics.
// All operations are thread-safe for concurrent access.
type AgentMetrics struct {
	mu sync.RWMutex

	// Execution metrics
	executionDuration  []time.Duration // Recent execution durations
	iterationCount     []int           // Recent iteration counts
	maxDurationSamples int             // Max samples to keep

	// Success/failure counters
	totalExecutions      atomic.Int64
	successfulExecutions atomic.Int64
	failedExecutions     atomic.Int64

	// Tool metrics
	toolCalls    map[string]*atomic.Int64   // Tool call counts
	toolFailures map[string]*atomic.Int64   // Tool failure counts
	toolLatency  map[string][]time.Duration // Tool call latencies

	// Routing metrics
	preRouted   atomic.Int64 // Deterministic router answered
	modelRouted atomic.Int64 // Model loop answered
	forcedStops atomic.Int64 // Iteration cap hit
}

// NewAgentMetrics creates a new metrics collector.
func NewAgentMetrics() *AgentMetrics {
	return &AgentMetrics{
		executionDuration:  make([]time.Duration, 0, 100),
		iterationCount:     make([]int, 0, 100),
		maxDurationSamples: 100,
		toolCalls:          make(map[string]*atomic.Int64),
		toolFailures:       make(map[string]*atomic.Int64),
		toolLatency:        make(map[string][]time.Duration),
	}
}

// RecordExecution records a completed agent execution.
func (m *AgentMetrics) RecordExecution(duration time.Duration, iterations int, success bool) {
	m.totalExecutions.Add(1)
	if success {
		m.successfulExecutions.Add(1)
	} else {
		m.failedExecutions.Add(1)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.executionDuration) >= m.maxDurationSamples {
		m.executionDuration = m.executionDuration[1:]
		m.iterationCount = m.iterationCount[1:]
	}
	m.executionDuration = append(m.executionDuration, duration)
	m.iterationCount = append(m.iterationCount, iterations)
}

// RecordToolCall records a tool execution attempt.
func (m *AgentMetrics) RecordToolCall(tool string, duration time.Duration, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.toolCalls[tool] == nil {
		m.toolCalls[tool] = &atomic.Int64{}
		m.toolFailures[tool] = &atomic.Int64{}
		m.toolLatency[tool] = make([]time.Duration, 0, 50)
	}

	m.toolCalls[tool].Add(1)
	if !success {
		m.toolFailures[tool].Add(1)
	}

	if len(m.toolLatency[tool]) >= 50 {
		m.toolLatency[tool] = m.toolLatency[tool][1:]
	}
	m.toolLatency[tool] = append(m.toolLatency[tool], duration)
}

// RecordPreRouted records a query answered by the deterministic router.
func (m *AgentMetrics) RecordPreRouted() {
	m.preRouted.Add(1)
}

// RecordModelRouted records a query answered by the model loop.
func (m *AgentMetrics) RecordModelRouted() {
	m.modelRouted.Add(1)
}

// RecordForcedStop records an execution that hit the iteration cap.
func (m *AgentMetrics) RecordForcedStop() {
	m.forcedStops.Add(1)
}

// GetSuccessRate returns the success rate as a percentage (0-100).
func (m *AgentMetrics) GetSuccessRate() float64 {
	total := m.totalExecutions.Load()
	if total == 0 {
		return 0
	}
	successful := m.successfulExecutions.Load()
	return float64(successful) / float64(total) * 100
}

// GetAverageDuration returns the average execution duration.
func (m *AgentMetrics) GetAverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.executionDuration) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range m.executionDuration {
		sum += d
	}
	return sum / time.Duration(len(m.executionDuration))
}

// GetAverageIterations returns the average iteration count.
func (m *AgentMetrics) GetAverageIterations() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.iterationCount) == 0 {
		return 0
	}

	var sum int
	for _, i := range m.iterationCount {
		sum += i
	}
	return float64(sum) / float64(len(m.iterationCount))
}

// GetToolStats returns statistics for a specific tool.
func (m *AgentMetrics) GetToolStats(tool string) ToolStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.toolStatsLocked(tool)
}

func (m *AgentMetrics) toolStatsLocked(tool string) ToolStats {
	stats := ToolStats{Name: tool}

	if counter := m.toolCalls[tool]; counter != nil {
		stats.TotalCalls = counter.Load()
	}
	if counter := m.toolFailures[tool]; counter != nil {
		stats.Failures = counter.Load()
	}

	if stats.TotalCalls > 0 {
		stats.SuccessRate = 100 - (float64(stats.Failures) / float64(stats.TotalCalls) * 100)
	}

	if latencies, ok := m.toolLatency[tool]; ok && len(latencies) > 0 {
		var sum time.Duration
		for _, l := range latencies {
			sum += l
		}
		stats.AverageLatency = sum / time.Duration(len(latencies))
	}

	return stats
}

// GetAllToolStats returns statistics for all tools.
func (m *AgentMetrics) GetAllToolStats() []ToolStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := make([]ToolStats, 0, len(m.toolCalls))
	for tool := range m.toolCalls {
		stats = append(stats, m.toolStatsLocked(tool))
	}
	return stats
}

// GetSummary returns a summary of all metrics.
func (m *AgentMetrics) GetSummary() MetricsSummary {
	return MetricsSummary{
		TotalExecutions:      m.totalExecutions.Load(),
		SuccessfulExecutions: m.successfulExecutions.Load(),
		FailedExecutions:     m.failedExecutions.Load(),
		SuccessRate:          m.GetSuccessRate(),
		AverageDuration:      m.GetAverageDuration(),
		AverageIterations:    m.GetAverageIterations(),
		PreRouted:            m.preRouted.Load(),
		ModelRouted:          m.modelRouted.Load(),
		ForcedStops:          m.forcedStops.Load(),
	}
}

// LogSummary logs the current metrics summary.
func (m *AgentMetrics) LogSummary() {
	summary := m.GetSummary()
	slog.Info("agent_metrics_summary",
		"total_executions", summary.TotalExecutions,
		"success_rate", fmtFloat(summary.SuccessRate),
		"avg_duration_ms", summary.AverageDuration.Milliseconds(),
		"avg_iterations", fmtFloat(summary.AverageIterations),
		"pre_routed", summary.PreRouted,
		"model_routed", summary.ModelRouted,
		"forced_stops", summary.ForcedStops,
	)
}

// ToolStats represents statistics for a single tool.
type ToolStats struct {
	Name           string
	TotalCalls     int64
	Failures       int64
	SuccessRate    float64
	AverageLatency time.Duration
}

// MetricsSummary represents a summary of all metrics.
type MetricsSummary struct {
	TotalExecutions      int64
	SuccessfulExecutions int64
	FailedExecutions     int64
	SuccessRate          float64
	AverageDuration      time.Duration
	AverageIterations    float64
	PreRouted            int64
	ModelRouted          int64
	ForcedStops          int64
}

// fmtFloat formats a float value with 2 decimal places.
func fmtFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
