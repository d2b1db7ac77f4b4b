package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bxcodec/faker/v3"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"

	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/lib-core-golang/router"
)

func TestResolver_Resolve(t *testing.T) {
	type testCase struct {
		name string
		run  func(t *testing.T)
	}
	tests := []func() testCase{
		func() testCase {
			sessionID := faker.UUIDHyphenated()
			return testCase{
				name: "return existing session id",
				run: func(t *testing.T) {
					req := httptest.NewRequest("POST", "/", nil)
					req.AddCookie(NewCookie(sessionID))

					resolver := NewResolver()
					assert.Equal(t, sessionID, resolver.Resolve(req))
				},
			}
		},
		func() testCase {
			mintedID := uuid.NewV4()
			return testCase{
				name: "mint new session id if cookie is missing",
				run: func(t *testing.T) {
					req := httptest.NewRequest("POST", "/", nil)

					resolver := NewResolver(WithNewUUID(func() uuid.UUID { return mintedID }))
					assert.Equal(t, mintedID.String(), resolver.Resolve(req))
				},
			}
		},
		func() testCase {
			mintedID := uuid.NewV4()
			return testCase{
				name: "mint new session id if cookie is blank",
				run: func(t *testing.T) {
					req := httptest.NewRequest("POST", "/", nil)
					req.AddCookie(&http.Cookie{Name: CookieName, Value: ""})

					resolver := NewResolver(WithNewUUID(func() uuid.UUID { return mintedID }))
					assert.Equal(t, mintedID.String(), resolver.Resolve(req))
				},
			}
		},
	}
	for _, ttFn := range tests {
		tt := ttFn()
		t.Run(tt.name, func(t *testing.T) {
			tt.run(t)
		})
	}
}

func TestNewCookie(t *testing.T) {
	sessionID := faker.UUIDHyphenated()
	cookie := NewCookie(sessionID)
	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, sessionID, cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 604800, cookie.MaxAge)
}

func TestRequireSession(t *testing.T) {
	type testCase struct {
		name string
		run  func(t *testing.T)
	}
	tests := []func() testCase{
		func() testCase {
			sessionID := faker.UUIDHyphenated()
			return testCase{
				name: "pass session id to next handler",
				run: func(t *testing.T) {
					req := httptest.NewRequest("GET", "/", nil)
					req.AddCookie(NewCookie(sessionID))

					nextCalled := false
					guarded := RequireSession(func(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
						nextCalled = true
						assert.Equal(t, sessionID, SessionIDValue(req.Context()))
						return nil
					})

					err := guarded(httptest.NewRecorder(), req, nil)
					assert.NoError(t, err)
					assert.True(t, nextCalled)
				},
			}
		},
		func() testCase {
			return testCase{
				name: "reject request without session cookie",
				run: func(t *testing.T) {
					req := httptest.NewRequest("GET", "/", nil)

					nextCalled := false
					guarded := RequireSession(func(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
						nextCalled = true
						return nil
					})

					err := guarded(httptest.NewRecorder(), req, nil)
					assert.Equal(t, router.UnauthorizedError("Unauthorized: session cookie is missing"), err)
					assert.False(t, nextCalled)
				},
			}
		},
	}
	for _, ttFn := range tests {
		tt := ttFn()
		t.Run(tt.name, func(t *testing.T) {
			tt.run(t)
		})
	}
}

func TestSessionIDValue(t *testing.T) {
	assert.Equal(t, "", SessionIDValue(context.Background()))

	sessionID := faker.UUIDHyphenated()
	ctx := ContextWithSessionID(context.Background(), sessionID)
	assert.Equal(t, sessionID, SessionIDValue(ctx))
}
