package diag

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bxcodec/faker/v3"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewRequestIDMiddleware(t *testing.T) {
	type testCase struct {
		name string
		run  func(t *testing.T)
	}
	tests := []func() testCase{
		func() testCase {
			fakeUUID := uuid.NewV4()
			return testCase{
				name: "maintain new request id",
				run: func(t *testing.T) {
					var gotRequestID string
					handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
						gotRequestID = RequestIDValue(req.Context())
					})
					mw := NewRequestIDMiddleware(func(cfg *requestIDMiddlewareCfg) {
						cfg.newUUID = func() uuid.UUID { return fakeUUID }
					})

					recorder := httptest.NewRecorder()
					mw(handler).ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

					assert.Equal(t, fakeUUID.String(), gotRequestID)
					assert.Equal(t, fakeUUID.String(), recorder.Header().Get("x-request-id"))
				},
			}
		},
		func() testCase {
			existingRequestID := faker.UUIDHyphenated()
			return testCase{
				name: "keep existing request id",
				run: func(t *testing.T) {
					var gotRequestID string
					handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
						gotRequestID = RequestIDValue(req.Context())
					})

					req := httptest.NewRequest("GET", "/", nil)
					req.Header.Set("x-request-id", existingRequestID)

					recorder := httptest.NewRecorder()
					NewRequestIDMiddleware()(handler).ServeHTTP(recorder, req)

					assert.Equal(t, existingRequestID, gotRequestID)
					assert.Equal(t, existingRequestID, recorder.Header().Get("x-request-id"))
				},
			}
		},
	}
	for _, tt := range tests {
		tt := tt()
		t.Run(tt.name, func(t *testing.T) {
			tt.run(t)
		})
	}
}

func TestNewLogRequestsMiddleware(t *testing.T) {
	type testCase struct {
		name string
		run  func(t *testing.T)
	}
	tests := []func() testCase{
		func() testCase {
			return testCase{
				name: "invoke next handler",
				run: func(t *testing.T) {
					nextCalled := false
					handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
						nextCalled = true
						w.WriteHeader(http.StatusTeapot)
					})

					recorder := httptest.NewRecorder()
					NewLogRequestsMiddleware()(handler).ServeHTTP(recorder, httptest.NewRequest("GET", "/some-path", nil))

					assert.True(t, nextCalled)
					assert.Equal(t, http.StatusTeapot, recorder.Code)
				},
			}
		},
		func() testCase {
			return testCase{
				name: "invoke next handler for ignored path",
				run: func(t *testing.T) {
					nextCalled := false
					handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
						nextCalled = true
					})

					recorder := httptest.NewRecorder()
					NewLogRequestsMiddleware()(handler).
						ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/healthcheck/ping", nil))

					assert.True(t, nextCalled)
				},
			}
		},
	}
	for _, tt := range tests {
		tt := tt()
		t.Run(tt.name, func(t *testing.T) {
			tt.run(t)
		})
	}
}

func Test_flattenAndObfuscate(t *testing.T) {
	values := map[string][]string{
		"Accept": {"application/json"},
		"Cookie": {"sessionId=" + faker.UUIDHyphenated()},
	}
	flattened := flattenAndObfuscate(values, "Cookie")
	assert.Equal(t, "application/json", flattened["Accept"])
	assert.Equal(t, fmt.Sprint("*obfuscated, length=", len(values["Cookie"][0]), "*"), flattened["Cookie"])
}
