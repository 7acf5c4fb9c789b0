package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// LeadID records a stored lead identifier under the key "lead_id".
// An empty id yields an empty Attr.
func LeadID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("lead_id", id)
}

// EmailHash records a salted e-mail digest under the key "email_hash".
// Never pass a raw address.
func EmailHash(hash string) slog.Attr {
	return slog.String("email_hash", hash)
}

// IPHash records a salted client IP digest under the key "ip_hash".
// Never pass a raw address.
func IPHash(hash string) slog.Attr {
	return slog.String("ip_hash", hash)
}

// Outcome records the result of an operation under the key "outcome".
func Outcome(outcome string) slog.Attr {
	return slog.String("outcome", outcome)
}

// SyncStatus records a CRM synchronisation status under the key "sync_status".
func SyncStatus(status string) slog.Attr {
	return slog.String("sync_status", status)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Backend records which storage backend is in use under the key "backend".
func Backend(name string) slog.Attr {
	return slog.String("backend", name)
}
