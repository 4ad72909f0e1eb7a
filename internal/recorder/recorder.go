package recorder

import "QuantSentinel/internal/model"

// Recorder persists computed indicator reports for later analysis.
type Recorder interface {
	RecordReport(report *model.Report) error
	RecordFailure(symbol, interval, reason string) error
	Close() error
}
