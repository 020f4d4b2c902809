package domain

import "time"

// Severity classifies a history entry
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// LogEntry is one timestamped event in the audit history. Entries are
// immutable once created; the history holds them in append order.
type LogEntry struct {
	Timestamp string   `json:"timestamp"` // ISO-8601
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
}

// NewLogEntry creates an entry stamped with the current time
func NewLogEntry(message string, severity Severity) LogEntry {
	return LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Message:   message,
		Severity:  severity,
	}
}
