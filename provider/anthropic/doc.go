// Package anthropic adapts the Anthropic Messages API to the runloop.Model
// contract.
//
// System wire items become the request's system blocks, tool calls map onto
// tool_use content blocks, and tool outputs are sent back as user messages
// carrying tool_result blocks. Streaming events are converted to the
// normalized provider event sequence consumed by the stream package.
package anthropic
