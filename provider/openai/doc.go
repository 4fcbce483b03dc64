// Package openai adapts the OpenAI Chat Completions API to the
// runloop.Model contract.
//
// The adapter maps the conversation's wire items onto chat messages, tool
// schemas onto function definitions, and the SDK's streaming chunks onto the
// normalized provider event sequence consumed by the stream package.
package openai
