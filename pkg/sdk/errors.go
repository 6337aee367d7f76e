package sdk

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Error codes reported by the backend.
const (
	CodeBadRequest          = "bad_request"
	CodeValidationFailed    = "validation_failed"
	CodeUpstreamUnavailable = "upstream_unavailable"
	CodeUpstreamCallFailed  = "upstream_call_failed"
	CodeGenerationFormat    = "generation_format_error"
	CodeInternalError       = "internal_error"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

func apiErrorFromResponse(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil || json.Unmarshal(body, apiErr) != nil || apiErr.Code == "" {
		apiErr.Code = CodeInternalError
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
