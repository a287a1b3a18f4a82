package notification

import "context"

// LogSink только пишет события в лог
type LogSink struct {
	log Logger
}

func NewLogSink(log Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Notify(_ context.Context, event Event) error {
	s.log.Info("Event %s id=%s aggregate=%d payload=%v", event.Type, event.ID, event.AggregateID, event.Payload)
	return nil
}

func (s *LogSink) Close() error { return nil }
