package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is the wire format version clients pin against.
// Bump only for breaking envelope changes.
const EnvelopeVersion = 1

// APIEnvelope wraps every response body. Success responses carry Data,
// simple failures carry Error as a plain string.
type APIEnvelope struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// APIErrorEnvelope is used for failures that carry a machine-readable code
// and structured details, so clients can branch without string matching.
type APIErrorEnvelope struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps handler output in the response envelope.
// Registered as a huma transformer, so it sees both success bodies and
// the errors produced by RegisterErrorHandler.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if isErrorStatus(status) {
		if apiErr, ok := v.(*APIError); ok && apiErr.Code != "" {
			return APIErrorEnvelope{
				Version: EnvelopeVersion,
				Success: false,
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			}, nil
		}
		if err, ok := v.(error); ok {
			return APIEnvelope{
				Version: EnvelopeVersion,
				Success: false,
				Error:   err.Error(),
			}, nil
		}
		return APIEnvelope{Version: EnvelopeVersion, Success: false}, nil
	}

	return APIEnvelope{
		Version: EnvelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}

// isErrorStatus reports whether the status string is a 4xx or 5xx code.
func isErrorStatus(status string) bool {
	return len(status) > 0 && (status[0] == '4' || status[0] == '5')
}
