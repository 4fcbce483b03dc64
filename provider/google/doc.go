// Package google adapts the Google GenAI SDK to the runloop.Model contract.
//
// System wire items become the system instruction, function calls map onto
// FunctionCall parts with synthesized call ids when the API omits them, and
// tool outputs are sent back as FunctionResponse parts. Gemini delivers
// function calls whole rather than as argument fragments, so the streaming
// adapter emits the call's argument payload in a single step.
package google
