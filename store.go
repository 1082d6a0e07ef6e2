package route

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	// MethodFallback keys the handler used when no handler exists for the request method.
	MethodFallback = "FALLBACK"
	// MethodAll keys hooks that run for every method of a route.
	MethodAll = "ALL"
)

// allowedMethods is also the order Methods reports them in.
var allowedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
	MethodFallback,
}

// Store holds everything registered for one route: a handler per method,
// hooks per method (plus hooks for all methods) and a schema per method.
// Handlers, hooks and schemas are opaque to the router.
type Store struct {
	handlers map[string]any
	hooks    map[string][]any
	schemas  map[string]any
}

func newStore() *Store {
	return &Store{
		handlers: make(map[string]any),
		hooks:    make(map[string][]any),
		schemas:  make(map[string]any),
	}
}

func validateMethod(method string, allowAll bool) error {
	if method == "" {
		return ErrMissingMethod
	}
	if method != strings.ToUpper(method) {
		return fmt.Errorf("%w %q: must be upper case", ErrInvalidMethod, method)
	}
	if allowAll && method == MethodAll {
		return nil
	}
	if !slices.Contains(allowedMethods, method) {
		return fmt.Errorf("%w: %s", ErrMethodNotAllowed, method)
	}
	return nil
}

// SetHandler registers the handler for method, replacing any previous one.
func (s *Store) SetHandler(method string, handler any) error {
	if err := validateMethod(method, false); err != nil {
		return err
	}
	s.handlers[method] = handler
	return nil
}

// Handler returns the handler registered for method.
func (s *Store) Handler(method string) (any, bool) {
	h, ok := s.handlers[method]
	return h, ok
}

// HasMethod reports whether a handler is registered for method.
func (s *Store) HasMethod(method string) bool {
	_, ok := s.handlers[method]
	return ok
}

// Methods returns the methods with a registered handler.
func (s *Store) Methods() []string {
	methods := make([]string, 0, len(s.handlers))
	for _, m := range allowedMethods {
		if _, ok := s.handlers[m]; ok {
			methods = append(methods, m)
		}
	}
	return methods
}

// SetHooks replaces the hooks of method. method may be MethodAll.
func (s *Store) SetHooks(method string, hooks ...any) error {
	if err := validateMethod(method, true); err != nil {
		return err
	}
	s.hooks[method] = slices.Clip(slices.Clone(hooks))
	return nil
}

// Hooks returns the hooks to run for method: the MethodAll hooks first,
// then the hooks registered for method itself.
func (s *Store) Hooks(method string) ([]any, error) {
	if method == "" {
		return nil, ErrMissingMethod
	}
	all := s.hooks[MethodAll]
	if method == MethodAll {
		return slices.Clone(all), nil
	}
	own := s.hooks[method]
	hooks := make([]any, 0, len(all)+len(own))
	hooks = append(hooks, all...)
	return append(hooks, own...), nil
}

// Hook appends hooks that run for every method of the route.
func (s *Store) Hook(hooks ...any) *Store {
	s.hooks[MethodAll] = append(s.hooks[MethodAll], hooks...)
	return s
}

// SetSchema registers a validation schema for method.
func (s *Store) SetSchema(method string, schema any) error {
	if err := validateMethod(method, false); err != nil {
		return err
	}
	s.schemas[method] = schema
	return nil
}

// Schema returns the schema registered for method.
func (s *Store) Schema(method string) (any, bool) {
	schema, ok := s.schemas[method]
	return schema, ok
}

// Get registers a GET handler. args is either (handler, hooks...) or
// (schema, handler, hooks...).
func (s *Store) Get(args ...any) error { return s.register(http.MethodGet, args) }

// Post registers a POST handler, see Get for args.
func (s *Store) Post(args ...any) error { return s.register(http.MethodPost, args) }

// Put registers a PUT handler, see Get for args.
func (s *Store) Put(args ...any) error { return s.register(http.MethodPut, args) }

// Patch registers a PATCH handler, see Get for args.
func (s *Store) Patch(args ...any) error { return s.register(http.MethodPatch, args) }

// Delete registers a DELETE handler, see Get for args.
func (s *Store) Delete(args ...any) error { return s.register(http.MethodDelete, args) }

// Head registers a HEAD handler, see Get for args.
func (s *Store) Head(args ...any) error { return s.register(http.MethodHead, args) }

// Options registers an OPTIONS handler, see Get for args.
func (s *Store) Options(args ...any) error { return s.register(http.MethodOptions, args) }

// Fallback registers the handler used for methods without their own handler.
func (s *Store) Fallback(args ...any) error { return s.register(MethodFallback, args) }

func (s *Store) register(method string, args []any) error {
	var schema any
	if len(args) > 0 && isSchema(args[0]) {
		schema, args = args[0], args[1:]
	}
	if len(args) == 0 || args[0] == nil {
		return fmt.Errorf("%s: %w", method, ErrMissingHandler)
	}
	if err := s.SetHandler(method, args[0]); err != nil {
		return err
	}
	if schema != nil {
		if err := s.SetSchema(method, schema); err != nil {
			return err
		}
	}
	if len(args) > 1 {
		return s.SetHooks(method, args[1:]...)
	}
	return nil
}

// isSchema tells a schema apart from a handler in the builder arguments.
// Schemas are object-like values: structs, maps, slices, arrays and
// pointers that do not implement http.Handler. Scalars and functions are
// handlers.
func isSchema(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(http.Handler); ok {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Pointer:
		return true
	default:
		return false
	}
}

// merge copies every entry of src into s. Entries of src win.
func (s *Store) merge(src *Store) {
	for method, h := range src.handlers {
		s.handlers[method] = h
	}
	for method, hooks := range src.hooks {
		s.hooks[method] = slices.Clone(hooks)
	}
	for method, schema := range src.schemas {
		s.schemas[method] = schema
	}
}

// conflicts returns the methods that both s and src have a handler for.
func (s *Store) conflicts(src *Store) []string {
	var methods []string
	for _, m := range src.Methods() {
		if s.HasMethod(m) {
			methods = append(methods, m)
		}
	}
	return methods
}
