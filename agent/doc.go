// Package agent implements the run loop that drives a model and a tool
// registry to a final answer.
//
// An [Agent] is configured once (model collaborator, frozen registry, system
// prompt, iteration limit) and is immutable afterwards. Each call to
// [Agent.Invoke] or [Agent.Stream] owns a fresh conversation; a caller-owned
// template passed with [WithConversation] is forked, never mutated.
//
// The loop asks the model, inspects the response, executes any requested
// tool calls, appends their outputs, and repeats until the model answers
// with plain text or the iteration limit is reached. Tool failures are
// contained as textual outputs the model can react to; iteration-limit and
// protocol violations are fatal and always surfaced to the caller.
package agent
