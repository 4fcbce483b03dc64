package agui

import (
	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	"github.com/lattice-ai/runloop/stream"
)

// Mapper converts normalized run events to AG-UI events. It tracks which
// text message is open so the Start-Content-End sequence AG-UI expects comes
// out right even though text deltas carry no explicit start marker.
//
// Create a new Mapper for each run. The Mapper is not safe for concurrent
// use.
type Mapper struct {
	threadID string
	runID    string

	openMessageID string
}

// NewMapper creates a new Mapper for a single run. The threadID and runID
// are used in lifecycle events (RUN_STARTED, RUN_FINISHED).
func NewMapper(threadID, runID string) *Mapper {
	if threadID == "" {
		threadID = events.GenerateThreadID()
	}
	if runID == "" {
		runID = events.GenerateRunID()
	}
	return &Mapper{
		threadID: threadID,
		runID:    runID,
	}
}

// ThreadID returns the thread ID for this mapper.
func (m *Mapper) ThreadID() string {
	return m.threadID
}

// RunID returns the run ID for this mapper.
func (m *Mapper) RunID() string {
	return m.runID
}

// RunStarted returns a RUN_STARTED event.
func (m *Mapper) RunStarted() events.Event {
	return events.NewRunStartedEvent(m.threadID, m.runID)
}

// RunFinished returns a RUN_FINISHED event.
func (m *Mapper) RunFinished() events.Event {
	return events.NewRunFinishedEvent(m.threadID, m.runID)
}

// RunError returns a RUN_ERROR event.
func (m *Mapper) RunError(message string) events.Event {
	if message == "" {
		message = "unknown error"
	}
	return events.NewRunErrorEvent(message)
}

// MapEvent converts one normalized event to zero or more AG-UI events.
// Events with no AG-UI equivalent (tool output start, internal passthrough)
// map to nothing.
func (m *Mapper) MapEvent(e stream.Event) []events.Event {
	switch e.Kind {
	case stream.KindLifecycle:
		switch e.Phase {
		case stream.PhaseNone:
			return []events.Event{events.NewStepStartedEvent(m.stepName(e))}
		case stream.PhaseFinal:
			return []events.Event{events.NewStepFinishedEvent(m.stepName(e))}
		}
		return nil

	case stream.KindText:
		switch e.Phase {
		case stream.PhaseDelta:
			var out []events.Event
			if m.openMessageID != e.ItemID {
				m.openMessageID = e.ItemID
				out = append(out, events.NewTextMessageStartEvent(
					e.ItemID,
					events.WithRole(RoleAssistant),
				))
			}
			return append(out, events.NewTextMessageContentEvent(e.ItemID, e.Text))
		case stream.PhaseFinal:
			if m.openMessageID != e.ItemID {
				// Final without deltas still needs an open message.
				start := events.NewTextMessageStartEvent(e.ItemID, events.WithRole(RoleAssistant))
				content := events.NewTextMessageContentEvent(e.ItemID, e.Text)
				end := events.NewTextMessageEndEvent(e.ItemID)
				return []events.Event{start, content, end}
			}
			m.openMessageID = ""
			return []events.Event{events.NewTextMessageEndEvent(e.ItemID)}
		}
		return nil

	case stream.KindToolCall:
		switch e.Phase {
		case stream.PhaseNone:
			return []events.Event{events.NewToolCallStartEvent(e.CallID, e.ToolName)}
		case stream.PhaseDelta:
			return []events.Event{events.NewToolCallArgsEvent(e.CallID, e.Arguments)}
		case stream.PhaseFinal:
			return []events.Event{events.NewToolCallEndEvent(e.CallID)}
		}
		return nil

	case stream.KindToolOutput:
		if e.Phase != stream.PhaseFinal {
			return nil
		}
		messageID := events.GenerateMessageID()
		return []events.Event{events.NewToolCallResultEvent(messageID, e.CallID, e.Output)}

	case stream.KindError:
		return []events.Event{m.RunError(e.Message)}

	default:
		return nil
	}
}

func (m *Mapper) stepName(e stream.Event) string {
	if e.ResponseID != "" {
		return e.ResponseID
	}
	return "model_turn"
}
