package recorder

import "QuantSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordReport(_ *model.Report) error { return nil }
func (n *NoopRecorder) RecordFailure(_, _, _ string) error { return nil }
func (n *NoopRecorder) Close() error                       { return nil }
