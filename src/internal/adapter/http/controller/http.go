package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/middleware"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
)

type route struct {
	pattern string
	handler http.HandlerFunc
}

func register(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler, routes ...route) {
	for _, rt := range routes {
		var handler http.Handler = rt.handler
		if authMiddleware != nil {
			handler = authMiddleware(handler)
		}
		mux.Handle(rt.pattern, handler)
	}
}

// statusFor maps a service response message to its HTTP status.
func statusFor(message string) int {
	switch message {
	case "validation failed":
		return http.StatusBadRequest
	case "unauthorized":
		return http.StatusForbidden
	case "record not found":
		return http.StatusNotFound
	case "insufficient funds":
		return http.StatusUnprocessableEntity
	case "account is not active", "duplicate reference", "record already exists":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respond[T any](w http.ResponseWriter, r *http.Request, start time.Time, okStatus int, response commons.Response[T], err error) {
	status := okStatus
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status = statusFor(response.Message)
	}
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func reject[T any](w http.ResponseWriter, r *http.Request, start time.Time, status int, message string, errs ...string) {
	response := commons.ErrorResponse[T](message, errs...)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

// authenticated returns the caller placed on the context by the auth
// middleware, writing a 401 when there is none.
func authenticated[T any](w http.ResponseWriter, r *http.Request, start time.Time) (domain.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		reject[T](w, r, start, http.StatusUnauthorized, "unauthorized", "authentication required")
		return domain.Actor{}, false
	}
	return actor, true
}

func decodeBody[T any, R any](w http.ResponseWriter, r *http.Request, start time.Time, req *R) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logError(r, err, nil)
		reject[T](w, r, start, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	logRequest(r, *req)
	return true
}

// decodeOptionalBody accepts an empty body and leaves req at its zero value.
func decodeOptionalBody[T any, R any](w http.ResponseWriter, r *http.Request, start time.Time, req *R) bool {
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil && !errors.Is(err, io.EOF) {
		logError(r, err, nil)
		reject[T](w, r, start, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	logRequest(r, *req)
	return true
}

func pathID[T any](w http.ResponseWriter, r *http.Request, start time.Time, name string) (int64, bool) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		reject[T](w, r, start, http.StatusBadRequest, "validation failed", fmt.Sprintf("%s must be a positive integer", name))
		return 0, false
	}
	return id, true
}

func pathNumber[T any](w http.ResponseWriter, r *http.Request, start time.Time, name string) (int, bool) {
	id, ok := pathID[T](w, r, start, name)
	return int(id), ok
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
