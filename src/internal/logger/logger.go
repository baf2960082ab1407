package logger

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

type Fields map[string]any

var sensitiveKeys = map[string]struct{}{
	"pin":         {},
	"pinhash":     {},
	"pin_hash":    {},
	"password":    {},
	"credential":  {},
	"credentials": {},
}

var (
	mu   sync.RWMutex
	base = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// SetOutput redirects every subsequent log line to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base = zerolog.New(w).With().Timestamp().Logger()
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func Info(message string, fields Fields) {
	l := current()
	l.Info().Fields(sanitizedFields(fields)).Msg(message)
}

func Error(message string, err error, fields Fields) {
	l := current()
	event := l.Error().Fields(sanitizedFields(fields))
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(message)
}

func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func sanitizedFields(fields Fields) map[string]any {
	if fields == nil {
		return map[string]any{}
	}

	sanitized, ok := SanitizePayload(fields).(map[string]any)
	if !ok {
		return map[string]any{"fields": "<unavailable>"}
	}
	return sanitized
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if isSensitiveKey(key) {
				out[key] = "******"
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	_, ok := sensitiveKeys[normalized]
	return ok
}
