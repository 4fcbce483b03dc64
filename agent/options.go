package agent

import (
	"github.com/lattice-ai/runloop"
	"github.com/lattice-ai/runloop/retry"
)

// DefaultMaxIterations bounds a run when no explicit limit is configured.
const DefaultMaxIterations = 10

// config holds agent construction settings.
type config struct {
	systemPrompt      string
	maxIterations     int
	toolChoice        runloop.ToolChoice
	parallelToolCalls bool
	retry             *retry.Config
}

// Option configures an Agent at construction.
type Option func(*config)

// WithSystemPrompt sets the system prompt used when no conversation template
// is supplied at invocation time.
func WithSystemPrompt(prompt string) Option {
	return func(c *config) {
		c.systemPrompt = prompt
	}
}

// WithMaxIterations sets the iteration limit. Values below one are rejected
// at construction with a configuration error. Default is 10.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		c.maxIterations = n
	}
}

// WithToolChoice sets the tool selection policy sent to the model.
// Default is auto.
func WithToolChoice(choice runloop.ToolChoice) Option {
	return func(c *config) {
		c.toolChoice = choice
	}
}

// WithParallelToolCalls controls whether tool calls within one turn execute
// concurrently. Output ordering is unaffected. Default is true.
func WithParallelToolCalls(enabled bool) Option {
	return func(c *config) {
		c.parallelToolCalls = enabled
	}
}

// WithRetry wraps model calls with retry on transient provider errors.
func WithRetry(cfg retry.Config) Option {
	return func(c *config) {
		c.retry = &cfg
	}
}

// runConfig holds per-invocation settings.
type runConfig struct {
	template      *runloop.Conversation
	runtimeValues map[string]any
	rawEvents     bool
}

// RunOption configures a single Invoke or Stream call.
type RunOption func(*runConfig)

// WithConversation seeds the run from a caller-owned conversation template.
// The template is forked; the run never mutates it. When a template is
// supplied the agent's system prompt is not added.
func WithConversation(template *runloop.Conversation) RunOption {
	return func(rc *runConfig) {
		rc.template = template
	}
}

// WithRuntimeValues supplies out-of-band key/value data to tool handlers for
// this call. The values are never visible to the model and are not retained
// across calls.
func WithRuntimeValues(values map[string]any) RunOption {
	return func(rc *runConfig) {
		rc.runtimeValues = values
	}
}

// WithRawEvents makes Stream additionally emit Internal events wrapping each
// untouched provider event, for diagnostics.
func WithRawEvents() RunOption {
	return func(rc *runConfig) {
		rc.rawEvents = true
	}
}
