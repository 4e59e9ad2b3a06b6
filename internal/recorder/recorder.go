package recorder

import "github.com/contactkeval/bsm-pricer/internal/pricing"

// Recorder persists priced quotes for later analysis.
type Recorder interface {
	RecordQuote(q *pricing.Quote) error
	Close() error
}

// NoopRecorder is used when no history database is configured.
type NoopRecorder struct{}

// NewNoopRecorder returns a Recorder that discards every quote.
func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

// RecordQuote discards q.
func (n *NoopRecorder) RecordQuote(_ *pricing.Quote) error { return nil }

// Close is a no-op.
func (n *NoopRecorder) Close() error { return nil }

// Open returns a SQLiteRecorder for path, or a NoopRecorder when path is empty.
func Open(path string) (Recorder, error) {
	if path == "" {
		return NewNoopRecorder(), nil
	}
	return NewSQLiteRecorder(path)
}
