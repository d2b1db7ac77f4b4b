package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tst "github.com/evgeny-myasishchev/ledger.transactions-api/pkg/internal/testing"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/assert"
)

func newTestToolkit(req *http.Request, recorder *httptest.ResponseRecorder) *handlerToolkit {
	return &handlerToolkit{
		request:        req,
		responseWriter: recorder,
		validator:      newStructValidator(),
	}
}

func Test_handlerToolkit_BindPayload(t *testing.T) {
	type payload struct {
		Title  string  `json:"title" validate:"required"`
		Amount float64 `json:"amount"`
	}
	type testCase struct {
		name string
		run  func(t *testing.T)
	}
	tests := []func() testCase{
		func() testCase {
			want := payload{Title: faker.Sentence(), Amount: float64(faker.UnixTime())}
			return testCase{
				name: "bind valid payload",
				run: func(t *testing.T) {
					body, ok := tst.JSONMarshalToReader(t, want)
					if !ok {
						return
					}
					req := httptest.NewRequest("POST", "/", body)
					toolkit := newTestToolkit(req, httptest.NewRecorder())

					var got payload
					err := toolkit.BindPayload(&got)
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, want, got)
				},
			}
		},
		func() testCase {
			return testCase{
				name: "fail on malformed json",
				run: func(t *testing.T) {
					req := httptest.NewRequest("POST", "/", strings.NewReader("{not a json"))
					toolkit := newTestToolkit(req, httptest.NewRecorder())

					var got payload
					err := toolkit.BindPayload(&got)
					assert.Equal(t, BadRequestError("ValidationFailed: failed to decode payload"), err)
				},
			}
		},
		func() testCase {
			return testCase{
				name: "fail on invalid payload",
				run: func(t *testing.T) {
					body, ok := tst.JSONMarshalToReader(t, payload{Amount: 42})
					if !ok {
						return
					}
					req := httptest.NewRequest("POST", "/", body)
					toolkit := newTestToolkit(req, httptest.NewRecorder())

					var got payload
					err := toolkit.BindPayload(&got)
					assert.Equal(t, BadRequestError("ValidationFailed: params [Title] are invalid"), err)
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

func Test_handlerToolkit_WriteJSON(t *testing.T) {
	type testCase struct {
		name string
		run  func(t *testing.T)
	}
	tests := []func() testCase{
		func() testCase {
			payload := map[string]string{faker.Word(): faker.Sentence()}
			return testCase{
				name: "write json payload",
				run: func(t *testing.T) {
					recorder := httptest.NewRecorder()
					toolkit := newTestToolkit(httptest.NewRequest("GET", "/", nil), recorder)

					if err := toolkit.WriteJSON(payload); !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, http.StatusOK, recorder.Code)
					assert.Equal(t, "application/json", recorder.Header().Get("content-type"))

					var got map[string]string
					tst.JSONUnmarshalBuffer(recorder.Body, &got)
					assert.Equal(t, payload, got)
				},
			}
		},
		func() testCase {
			return testCase{
				name: "write json with status",
				run: func(t *testing.T) {
					recorder := httptest.NewRecorder()
					toolkit := newTestToolkit(httptest.NewRequest("GET", "/", nil), recorder)

					err := toolkit.WriteJSON(map[string]string{}, toolkit.WithStatus(http.StatusCreated))
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, http.StatusCreated, recorder.Code)
					assert.Equal(t, "application/json", recorder.Header().Get("content-type"))
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

func Test_handlerToolkit_WriteStatus(t *testing.T) {
	cookie := &http.Cookie{
		Name:   "sessionId",
		Value:  faker.UUIDHyphenated(),
		Path:   "/",
		MaxAge: 604800,
	}

	recorder := httptest.NewRecorder()
	toolkit := newTestToolkit(httptest.NewRequest("POST", "/", nil), recorder)

	err := toolkit.WriteStatus(http.StatusCreated, toolkit.WithCookie(cookie))
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Empty(t, recorder.Body.Bytes())

	response := recorder.Result()
	if !assert.Len(t, response.Cookies(), 1) {
		return
	}
	gotCookie := response.Cookies()[0]
	assert.Equal(t, cookie.Name, gotCookie.Name)
	assert.Equal(t, cookie.Value, gotCookie.Value)
	assert.Equal(t, cookie.Path, gotCookie.Path)
	assert.Equal(t, cookie.MaxAge, gotCookie.MaxAge)
}
