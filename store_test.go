package route

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreMethodValidation(t *testing.T) {
	s := newStore()
	handler := func(http.ResponseWriter, *http.Request) {}

	assert.ErrorIs(t, s.SetHandler("get", handler), ErrInvalidMethod)
	assert.ErrorIs(t, s.SetHandler("TRACE", handler), ErrMethodNotAllowed)
	assert.ErrorIs(t, s.SetHandler(MethodAll, handler), ErrMethodNotAllowed)
	assert.ErrorIs(t, s.SetHandler("", handler), ErrMissingMethod)
	assert.ErrorIs(t, s.SetHooks("post", "h"), ErrInvalidMethod)
	assert.ErrorIs(t, s.SetHooks("CONNECT", "h"), ErrMethodNotAllowed)
	assert.ErrorIs(t, s.SetSchema("Put", "schema"), ErrInvalidMethod)
	assert.NoError(t, s.SetHooks(MethodAll, "h"))
	assert.NoError(t, s.SetHandler(MethodFallback, handler))
}

func TestStoreHooksOrder(t *testing.T) {
	s := newStore()
	require.NoError(t, s.SetHooks(MethodAll, "h1"))
	require.NoError(t, s.SetHooks(http.MethodGet, "h2"))

	hooks, err := s.Hooks(http.MethodGet)
	require.NoError(t, err)
	assert.Equal(t, []any{"h1", "h2"}, hooks)

	hooks, err = s.Hooks(http.MethodPost)
	require.NoError(t, err)
	assert.Equal(t, []any{"h1"}, hooks)

	s.Hook("h0")
	hooks, err = s.Hooks(http.MethodGet)
	require.NoError(t, err)
	assert.Equal(t, []any{"h1", "h0", "h2"}, hooks)

	_, err = s.Hooks("")
	assert.ErrorIs(t, err, ErrMissingMethod)
}

func TestStoreHooksDoNotAlias(t *testing.T) {
	s := newStore()
	require.NoError(t, s.SetHooks(MethodAll, "a"))
	require.NoError(t, s.SetHooks(http.MethodGet, "b"))

	hooks, err := s.Hooks(http.MethodGet)
	require.NoError(t, err)
	hooks[0] = "changed"

	again, err := s.Hooks(http.MethodGet)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, again)
}

type testSchema struct{ Name string }

func TestStoreBuilders(t *testing.T) {
	handler := func(http.ResponseWriter, *http.Request) {}
	hook := func(next http.Handler) http.Handler { return next }
	fileServer := http.FileServer(http.Dir("."))

	s := newStore()
	require.NoError(t, s.Get(testSchema{Name: "get"}, handler, hook))
	require.NoError(t, s.Post(handler))
	require.NoError(t, s.Put(fileServer))
	require.NoError(t, s.Patch(&testSchema{Name: "patch"}, fileServer))
	require.NoError(t, s.Delete(handler, hook, hook))
	require.NoError(t, s.Head(handler))
	require.NoError(t, s.Options(handler))
	require.NoError(t, s.Fallback(handler))

	assert.Equal(t, []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS", "FALLBACK"}, s.Methods())

	schema, ok := s.Schema(http.MethodGet)
	require.True(t, ok)
	assert.Equal(t, testSchema{Name: "get"}, schema)

	_, ok = s.Schema(http.MethodPost)
	assert.False(t, ok)

	put, ok := s.Handler(http.MethodPut)
	require.True(t, ok)
	assert.Equal(t, fileServer, put)

	schema, ok = s.Schema(http.MethodPatch)
	require.True(t, ok)
	assert.Equal(t, &testSchema{Name: "patch"}, schema)

	hooks, err := s.Hooks(http.MethodDelete)
	require.NoError(t, err)
	assert.Len(t, hooks, 2)

	hooks, err = s.Hooks(http.MethodGet)
	require.NoError(t, err)
	assert.Len(t, hooks, 1)

	assert.True(t, s.HasMethod(http.MethodHead))
	assert.False(t, s.HasMethod("TRACE"))
}

func TestStoreBuilderMissingHandler(t *testing.T) {
	s := newStore()
	assert.ErrorIs(t, s.Get(), ErrMissingHandler)
	assert.ErrorIs(t, s.Get(testSchema{}), ErrMissingHandler)
	assert.ErrorIs(t, s.Post(nil), ErrMissingHandler)
	assert.ErrorIs(t, s.Put(map[string]string{"type": "object"}, nil), ErrMissingHandler)
	assert.False(t, s.HasMethod(http.MethodGet))

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut} {
		_, ok := s.Schema(method)
		assert.False(t, ok, method)
	}
	assert.Empty(t, s.Methods())
}

func TestStoreBuilderScalarHandler(t *testing.T) {
	s := newStore()
	require.NoError(t, s.Get("handler"))
	require.NoError(t, s.Post(42, "hook"))
	require.NoError(t, s.Put(testSchema{Name: "put"}, "put-handler"))

	get, ok := s.Handler(http.MethodGet)
	require.True(t, ok)
	assert.Equal(t, "handler", get)
	_, ok = s.Schema(http.MethodGet)
	assert.False(t, ok)

	post, ok := s.Handler(http.MethodPost)
	require.True(t, ok)
	assert.Equal(t, 42, post)
	hooks, err := s.Hooks(http.MethodPost)
	require.NoError(t, err)
	assert.Equal(t, []any{"hook"}, hooks)

	put, ok := s.Handler(http.MethodPut)
	require.True(t, ok)
	assert.Equal(t, "put-handler", put)
	schema, ok := s.Schema(http.MethodPut)
	require.True(t, ok)
	assert.Equal(t, testSchema{Name: "put"}, schema)
}

func TestStoreMerge(t *testing.T) {
	dst := newStore()
	require.NoError(t, dst.SetHandler(http.MethodGet, "dst-get"))
	require.NoError(t, dst.SetHandler(http.MethodPost, "dst-post"))
	require.NoError(t, dst.SetHooks(MethodAll, "dst-all"))

	src := newStore()
	require.NoError(t, src.SetHandler(http.MethodGet, "src-get"))
	require.NoError(t, src.SetHooks(MethodAll, "src-all"))
	require.NoError(t, src.SetSchema(http.MethodGet, "src-schema"))

	assert.Equal(t, []string{"GET"}, dst.conflicts(src))

	dst.merge(src)
	get, _ := dst.Handler(http.MethodGet)
	post, _ := dst.Handler(http.MethodPost)
	schema, _ := dst.Schema(http.MethodGet)
	hooks, err := dst.Hooks(http.MethodGet)
	require.NoError(t, err)

	assert.Equal(t, "src-get", get)
	assert.Equal(t, "dst-post", post)
	assert.Equal(t, "src-schema", schema)
	assert.Equal(t, []any{"src-all"}, hooks)
}
