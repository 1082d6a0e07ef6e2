package route

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeting struct {
	Greetings string `json:"greetings"`
}

func TestTyped(t *testing.T) {
	r := newTestRouter(t)

	get, err := Typed(func(ctx context.Context, in struct {
		ID   int
		Name *string `param:"who"`
	}) (map[string]any, error) {
		out := map[string]any{"id": in.ID}
		if in.Name != nil {
			out["who"] = *in.Name
		}
		return out, nil
	})
	require.NoError(t, err)
	require.NoError(t, mustRoute(t, r, "/users/:id").Get(get))
	require.NoError(t, mustRoute(t, r, "/users/:id/hello/:who").Get(get))

	post, err := Typed(func(ctx context.Context, in struct {
		Body greeting
	}) (string, error) {
		return in.Body.Greetings, nil
	})
	require.NoError(t, err)
	require.NoError(t, mustRoute(t, r, "/greet").Post(post))

	failing, err := Typed(func(ctx context.Context, in struct{}) (string, error) {
		return "", errors.New("boom")
	})
	require.NoError(t, err)
	require.NoError(t, mustRoute(t, r, "/fail").Get(failing))

	panicking, err := Typed(func(ctx context.Context, in struct{}) (string, error) {
		panic("oops")
	})
	require.NoError(t, err)
	require.NoError(t, mustRoute(t, r, "/panic").Get(panicking))

	handler, err := Handler(r)
	require.NoError(t, err)

	tests := []struct {
		name string
		req  *http.Request
		code int
		body string
	}{
		{
			name: "params",
			req:  httptest.NewRequest(http.MethodGet, "http://example.com/users/7", nil),
			code: http.StatusOK,
			body: `{"id":7}`,
		},
		{
			name: "optional param",
			req:  httptest.NewRequest(http.MethodGet, "http://example.com/users/7/hello/gopher", nil),
			code: http.StatusOK,
			body: `{"id":7,"who":"gopher"}`,
		},
		{
			name: "bad param",
			req:  httptest.NewRequest(http.MethodGet, "http://example.com/users/abc", nil),
			code: http.StatusBadRequest,
		},
		{
			name: "body",
			req:  httptest.NewRequest(http.MethodPost, "http://example.com/greet", strings.NewReader(`{"greetings":"Hello Body"}`)),
			code: http.StatusOK,
			body: `"Hello Body"`,
		},
		{
			name: "bad body",
			req:  httptest.NewRequest(http.MethodPost, "http://example.com/greet", strings.NewReader(`{`)),
			code: http.StatusBadRequest,
		},
		{
			name: "handler error",
			req:  httptest.NewRequest(http.MethodGet, "http://example.com/fail", nil),
			code: http.StatusInternalServerError,
			body: "handling request: boom",
		},
		{
			name: "panic",
			req:  httptest.NewRequest(http.MethodGet, "http://example.com/panic", nil),
			code: http.StatusInternalServerError,
			body: "panic: oops",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler(w, tt.req)

			resp := w.Result()
			body, _ := io.ReadAll(resp.Body)

			assert.Equal(t, tt.code, resp.StatusCode)
			if tt.body != "" {
				assert.Equal(t, tt.body, strings.TrimSpace(string(body)))
			}
		})
	}
}

func TestTypedInvalidInput(t *testing.T) {
	_, err := Typed(func(ctx context.Context, in string) (string, error) { return in, nil })
	assert.Error(t, err)

	_, err = Typed(func(ctx context.Context, in struct{ private int }) (int, error) { return in.private, nil })
	assert.Error(t, err)

	_, err = Typed(func(ctx context.Context, in struct{ F float64 }) (float64, error) { return in.F, nil })
	assert.Error(t, err)
}
