// Package models contains the API representations of the domain types
// together with the request and response envelopes.
package models

import (
	"time"

	"github.com/tkrause/expense-portal/internal/domain"
)

// Response is the envelope for all successful API responses.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// NewResponse wraps the given payload in a success envelope.
func NewResponse(statusCode int, data any, message string) Response {
	return Response{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	}
}

// ErrorBody describes the error part of a failure envelope.
type ErrorBody struct {
	Code    string               `json:"code"`
	Message string               `json:"message"`
	Details []domain.DetailEntry `json:"details"`
}

// ErrorMeta carries request metadata for a failure envelope.
type ErrorMeta struct {
	RequestId string `json:"requestId"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the envelope for all failed API responses.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
	Meta    ErrorMeta `json:"meta"`
}

// NewErrorResponse builds a failure envelope. The details slice is never nil,
// and an empty request id is reported as "N/A".
func NewErrorResponse(code, message string, details []domain.DetailEntry, requestId string) ErrorResponse {
	if details == nil {
		details = []domain.DetailEntry{}
	}
	if requestId == "" {
		requestId = "N/A"
	}

	return ErrorResponse{
		Success: false,
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: ErrorMeta{
			RequestId: requestId,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
}
