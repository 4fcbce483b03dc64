// Package agui integrates runloop with the AG-UI protocol.
//
// AG-UI (Agent-User Interface) is an open, event-based protocol that
// standardizes how AI agents connect to user-facing applications. This
// package converts the normalized [stream.Event] sequence produced by an
// agent run into AG-UI events, and converts conversation history to and
// from AG-UI messages.
//
// The package does NOT provide HTTP handlers or transport implementations.
// Use the AG-UI SDK's SSE writer or your preferred transport.
//
// # Usage
//
//	mapper := agui.NewMapper(threadID, runID)
//	writeEvent(mapper.RunStarted())
//
//	events, _ := runner.Stream(ctx, input)
//	for e := range events {
//	    for _, aguiEvent := range mapper.MapEvent(e) {
//	        writeEvent(aguiEvent)
//	    }
//	}
//
//	writeEvent(mapper.RunFinished())
//
// # Event Mapping
//
// The Mapper tracks open text messages to emit AG-UI's Start-Content-End
// sequences:
//
//   - text delta → TEXT_MESSAGE_START (on first fragment), TEXT_MESSAGE_CONTENT
//   - text final → TEXT_MESSAGE_END
//   - tool call start/delta/final → TOOL_CALL_START, TOOL_CALL_ARGS, TOOL_CALL_END
//   - tool output final → TOOL_CALL_RESULT
//   - error → RUN_ERROR
//
// # Thread Safety
//
// The Mapper is NOT safe for concurrent use; give each run its own. The
// message conversion functions are stateless and safe for concurrent use.
package agui
