package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError is the error envelope the platform returns on non-2xx responses.
// The facade discards it before callers see it; it exists so the detail can
// be logged at the boundary first.
type APIError struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error (status %d)", e.Code)
	}
	return e.Message
}

// decodeAPIError reads an error response body. Bodies that are not the
// expected envelope still produce a usable APIError from the status code.
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Code: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil || len(body) == 0 {
		return apiErr
	}
	if err := json.Unmarshal(body, apiErr); err != nil {
		apiErr.Message = string(body)
	}
	if apiErr.Code == 0 {
		apiErr.Code = resp.StatusCode
	}
	return apiErr
}
