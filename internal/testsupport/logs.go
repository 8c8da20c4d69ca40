package testsupport

import (
	"context"
	"log/slog"
	"sync"
)

// LogRecord is one captured log call with its attributes flattened.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogRecorder is a slog.Handler that keeps every record for assertions.
type LogRecorder struct {
	mu      *sync.Mutex
	records *[]LogRecord
	attrs   []slog.Attr
}

// NewLogRecorder returns a recorder and a logger writing to it at debug level.
func NewLogRecorder() (*LogRecorder, *slog.Logger) {
	rec := &LogRecorder{mu: &sync.Mutex{}, records: &[]LogRecord{}}
	return rec, slog.New(rec)
}

func (r *LogRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *LogRecorder) Handle(_ context.Context, record slog.Record) error {
	attrs := make(map[string]any, len(r.attrs)+record.NumAttrs())
	for _, a := range r.attrs {
		attrs[a.Key] = a.Value.Resolve().Any()
	}
	record.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Resolve().Any()
		return true
	})
	r.mu.Lock()
	*r.records = append(*r.records, LogRecord{Level: record.Level, Message: record.Message, Attrs: attrs})
	r.mu.Unlock()
	return nil
}

func (r *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(r.attrs)+len(attrs))
	merged = append(merged, r.attrs...)
	merged = append(merged, attrs...)
	return &LogRecorder{mu: r.mu, records: r.records, attrs: merged}
}

func (r *LogRecorder) WithGroup(string) slog.Handler { return r }

// Records returns a snapshot of captured records.
func (r *LogRecorder) Records() []LogRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LogRecord(nil), *r.records...)
}

// WithEventType returns the records carrying event_type == eventType.
func (r *LogRecorder) WithEventType(eventType string) []LogRecord {
	var out []LogRecord
	for _, rec := range r.Records() {
		if v, ok := rec.Attrs["event_type"].(string); ok && v == eventType {
			out = append(out, rec)
		}
	}
	return out
}
