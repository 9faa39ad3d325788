package events

import (
	"go.uber.org/zap"
)

// TraceHandler mirrors pipeline events onto a logger at debug level so a
// verbose run shows the event stream as it is appended.
type TraceHandler struct {
	logger *zap.Logger
}

func NewTraceHandler(logger *zap.Logger) *TraceHandler {
	return &TraceHandler{logger: logger}
}

// AllEventTypes lists every event type the analytics pipeline publishes
func AllEventTypes() []string {
	return []string{
		DatasetLoadedEvent,
		SeriesPreparedEvent,
		ForecastGeneratedEvent,
		PolicyComputedEvent,
		RiskFlaggedEvent,
		PipelineCompletedEvent,
	}
}

func (h *TraceHandler) Handle(event Event) error {
	h.logger.Debug("pipeline event",
		zap.String("type", event.Type()),
		zap.String("run_id", event.StreamID()),
		zap.Int("version", event.Version()),
	)
	return nil
}

func (h *TraceHandler) CanHandle(eventType string) bool {
	for _, t := range AllEventTypes() {
		if t == eventType {
			return true
		}
	}
	return false
}

var _ EventHandler = (*TraceHandler)(nil)
