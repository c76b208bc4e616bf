// Package http serves the ledger UI: server-rendered partials over
// HTMX-style endpoints plus the JSON dataset for the chart.
//
// This file implements a small builder for responses that carry
// HX-Trigger events, the transport for transient notifications and
// partial refreshes.
package http

import (
	"encoding/json"
	"html/template"
	"net/http"
)

// ResponseBuilder accumulates HX-Trigger events, headers and a body.
type ResponseBuilder struct {
	triggers   map[string]interface{}
	statusCode int
	body       []byte
	headers    map[string]string
}

// NewResponse creates a builder with default 200 status.
func NewResponse() *ResponseBuilder {
	return &ResponseBuilder{
		triggers:   make(map[string]interface{}),
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *ResponseBuilder) Status(code int) *ResponseBuilder {
	b.statusCode = code
	return b
}

// Trigger adds a named trigger with optional data to the HX-Trigger header.
func (b *ResponseBuilder) Trigger(name string, data interface{}) *ResponseBuilder {
	b.triggers[name] = data
	return b
}

// TriggerLedgerChanged tells the client to refresh summary, list and chart.
func (b *ResponseBuilder) TriggerLedgerChanged() *ResponseBuilder {
	return b.Trigger("ledger:changed", struct{}{})
}

// NotificationKind is the closed set of toast styles.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyWarning NotificationKind = "warning"
)

// notifyDurationMs is the fixed auto-dismiss delay for every toast.
const notifyDurationMs = 3000

// TriggerNotification adds a show-notification trigger. Toasts always
// dismiss after the same fixed delay.
func (b *ResponseBuilder) TriggerNotification(kind NotificationKind, message string) *ResponseBuilder {
	return b.Trigger("show-notification", map[string]interface{}{
		"type":     string(kind),
		"message":  message,
		"duration": notifyDurationMs,
	})
}

// Header adds a custom header to the response.
func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	b.headers[name] = value
	return b
}

// BodyHTML sets the response body as HTML content.
func (b *ResponseBuilder) BodyHTML(html string) *ResponseBuilder {
	b.headers["Content-Type"] = "text/html; charset=utf-8"
	b.body = []byte(html)
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *ResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}

	if len(b.triggers) > 0 {
		if triggerJSON, err := json.Marshal(b.triggers); err == nil {
			w.Header().Set("HX-Trigger", string(triggerJSON))
		}
	}

	w.WriteHeader(b.statusCode)
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}

// ErrorResponse creates an error response with an HTML-escaped message and
// a matching error toast.
func ErrorResponse(statusCode int, message string) *ResponseBuilder {
	escaped := template.HTMLEscapeString(message)
	return NewResponse().
		Status(statusCode).
		TriggerNotification(NotifyError, message).
		BodyHTML(`<div class="error">` + escaped + `</div>`)
}

// UnprocessableEntityError creates a 422 Unprocessable Entity response.
func UnprocessableEntityError(message string) *ResponseBuilder {
	return ErrorResponse(http.StatusUnprocessableEntity, message)
}

// InternalServerError creates a 500 Internal Server Error response.
func InternalServerError(message string) *ResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, message)
}

// BadRequestError creates a 400 Bad Request response.
func BadRequestError(message string) *ResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}
