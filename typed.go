package route

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	json "github.com/goccy/go-json"

	"github.com/generikvault/route/v2/getter"
)

// Typed returns an http.Handler that calls handler with an Input built
// from the request and writes its Output as JSON.
//
// Input must be a struct. A field named Body is decoded from the JSON
// request body; every other field binds a route parameter as described
// in getter.IntoStructTyped. Binding failures answer 400, handler errors
// and panics 500.
func Typed[Input, Output any](handler func(context.Context, Input) (Output, error)) (http.Handler, error) {
	input := typeOf[Input]()
	if input.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input %s is not a struct", input)
	}

	t := typed[Input, Output]{
		handler: handler,
		body:    -1,
		fields:  make([]func(map[string]string) (reflect.Value, error), input.NumField()),
	}
	for i := 0; i < input.NumField(); i++ {
		field := input.Field(i)
		if !field.IsExported() {
			return nil, fmt.Errorf("field %s is not exported", field.Name)
		}
		if field.Name == "Body" {
			t.body = i
			continue
		}
		set, err := getter.FieldSetter(field)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		t.fields[i] = set
	}
	return t, nil
}

type typed[Input, Output any] struct {
	handler func(context.Context, Input) (Output, error)
	fields  []func(map[string]string) (reflect.Value, error)
	body    int
}

type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

func (t typed[Input, Output]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := t.serve(w, r); err != nil {
		status := http.StatusInternalServerError
		var bad badRequest
		if errors.As(err, &bad) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
	}
}

func (t typed[Input, Output]) serve(w http.ResponseWriter, r *http.Request) (mErr error) {
	ctx := r.Context()

	defer func() {
		if r := recover(); r != nil && mErr == nil {
			mErr = fmt.Errorf("panic: %v", r)
		}
	}()

	input, err := t.input(r)
	if err != nil {
		return badRequest{fmt.Errorf("applying input: %w", err)}
	}

	if r.Method == http.MethodHead {
		return nil
	}

	res, err := t.handler(ctx, input)
	if err != nil {
		return fmt.Errorf("handling request: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	return nil
}

func (t typed[Input, Output]) input(r *http.Request) (Input, error) {
	var input Input
	value := reflect.ValueOf(&input).Elem()
	params := ParamsFromContext(r.Context())

	for i, set := range t.fields {
		if set == nil {
			continue
		}
		v, err := set(params)
		if err != nil {
			return input, fmt.Errorf("field %s: %w", value.Type().Field(i).Name, err)
		}
		if v.IsValid() {
			value.Field(i).Set(v)
		}
	}

	if t.body >= 0 && r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(value.Field(t.body).Addr().Interface()); err != nil {
			return input, fmt.Errorf("decoding body: %w", err)
		}
	}
	return input, nil
}

func typeOf[T any]() reflect.Type {
	var t T
	return reflect.TypeOf(&t).Elem()
}
