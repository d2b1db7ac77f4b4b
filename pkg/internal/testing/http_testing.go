package testing

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// HTTPErrorPayload is an expected shape of an error response
type HTTPErrorPayload struct {
	StatusCode int    `json:"statusCode"`
	Status     string `json:"error"`
	Message    string `json:"message"`
}

// NewHTTPErrorPayload builds an expected error response payload
func NewHTTPErrorPayload(statusCode int, status string, message string) HTTPErrorPayload {
	return HTTPErrorPayload{StatusCode: statusCode, Status: status, Message: message}
}

// AssertHTTPErrorResponse asserts that the recorder holds given error response
func AssertHTTPErrorResponse(t *testing.T, want HTTPErrorPayload, recorder *httptest.ResponseRecorder) bool {
	if !assert.Equal(t, want.StatusCode, recorder.Code) {
		return false
	}
	if !assert.Equal(t, "application/json", recorder.Header().Get("content-type")) {
		return false
	}
	var got HTTPErrorPayload
	JSONUnmarshalBuffer(recorder.Body, &got)
	return assert.Equal(t, want, got)
}
