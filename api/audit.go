package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"reuse-cost/core/types"
)

// AuditEntry records one estimate or report request
type AuditEntry struct {
	Timestamp  time.Time        `json:"timestamp"`
	System     types.SystemKind `json:"system"`
	Endpoint   string           `json:"endpoint"`
	InputHash  string           `json:"input_hash,omitempty"`
	ClientIP   string           `json:"client_ip,omitempty"`
	UserAgent  string           `json:"user_agent,omitempty"`
	Total      string           `json:"total,omitempty"`
	DurationMs int64            `json:"duration_ms"`
	Success    bool             `json:"success"`
	Error      string           `json:"error,omitempty"`
}

// AuditLogger receives one entry per estimate request
type AuditLogger interface {
	Log(entry AuditEntry) error
}

// ZapAuditLogger writes audit entries as structured log lines
type ZapAuditLogger struct {
	logger *zap.Logger
}

// NewZapAuditLogger creates an audit logger on top of logger
func NewZapAuditLogger(logger *zap.Logger) *ZapAuditLogger {
	return &ZapAuditLogger{logger: logger.Named("audit")}
}

// Log implements AuditLogger
func (l *ZapAuditLogger) Log(entry AuditEntry) error {
	l.logger.Info("estimate",
		zap.Time("timestamp", entry.Timestamp),
		zap.String("system", string(entry.System)),
		zap.String("endpoint", entry.Endpoint),
		zap.String("input_hash", entry.InputHash),
		zap.String("client_ip", entry.ClientIP),
		zap.String("user_agent", entry.UserAgent),
		zap.String("total", entry.Total),
		zap.Int64("duration_ms", entry.DurationMs),
		zap.Bool("success", entry.Success),
		zap.String("error", entry.Error))
	return nil
}

func newAuditEntry(r *http.Request, system types.SystemKind) AuditEntry {
	return AuditEntry{
		Timestamp: time.Now().UTC(),
		System:    system,
		Endpoint:  r.URL.Path,
		ClientIP:  clientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	}
}

// MarkFailed marks the audit entry as failed
func (e *AuditEntry) MarkFailed(code, message string) {
	e.Success = false
	e.Error = code + ": " + message
}

// SetDuration sets the duration
func (e *AuditEntry) SetDuration(d time.Duration) {
	e.DurationMs = d.Milliseconds()
}
