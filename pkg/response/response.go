// Package response writes the JSON envelopes every endpoint returns:
//
//	{"success": true, ...payload}
//	{"error": "message"}
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/logger"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
)

// M is a response payload.
type M map[string]any

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Success sends 200 with payload merged next to "success": true.
func Success(w http.ResponseWriter, payload M) {
	JSON(w, http.StatusOK, withSuccess(payload))
}

// Created sends 201 with the success envelope.
func Created(w http.ResponseWriter, payload M) {
	JSON(w, http.StatusCreated, withSuccess(payload))
}

// Paginated sends a list under both "items" and key, plus page metadata.
func Paginated(w http.ResponseWriter, key string, items any, meta pagination.Meta) {
	payload := M{
		"items":      items,
		"total":      meta.Total,
		"page":       meta.Page,
		"totalPages": meta.TotalPages,
	}
	if key != "" && key != "items" {
		payload[key] = items
	}
	Success(w, payload)
}

// Error sends {"error": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, M{"error": message})
}

// ValidationError sends 400 with the message and per-field detail.
func ValidationError(w http.ResponseWriter, message string, fields map[string]string) {
	body := M{"error": message}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	JSON(w, http.StatusBadRequest, body)
}

// Fail maps err through the error taxonomy. Unexpected errors are logged
// with full detail and answered with a generic message.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error("request failed",
			"error", err.Error(),
			"method", r.Method,
			"path", r.URL.Path,
		)
	}

	if appErr, ok := apperrors.As(err); ok && len(appErr.Fields) > 0 && status == http.StatusBadRequest {
		ValidationError(w, appErr.Message, appErr.Fields)
		return
	}
	Error(w, status, apperrors.PublicMessage(err))
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

func withSuccess(payload M) M {
	out := make(M, len(payload)+1)
	for k, v := range payload {
		out[k] = v
	}
	out["success"] = true
	return out
}
