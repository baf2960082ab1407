package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/middleware"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
)

func requestFields(r *http.Request) logger.Fields {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}
	if actor, ok := middleware.ActorFromContext(r.Context()); ok {
		fields["actorId"] = actor.ID
	}
	return fields
}

func logRequest(r *http.Request, payload any) {
	fields := requestFields(r)
	fields["query"] = r.URL.RawQuery
	fields["payload"] = logger.SanitizePayload(payload)
	logger.Info("http request", fields)
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	fields := requestFields(r)
	fields["status"] = status
	fields["durationMs"] = time.Since(start).Milliseconds()
	fields["response"] = logger.SanitizePayload(payload)
	logger.Info("http response", fields)
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := requestFields(r)
	fields["query"] = r.URL.RawQuery
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}
