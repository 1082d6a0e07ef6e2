// Package getter binds route parameters to struct fields.
package getter

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/ettle/strcase"
)

// IntoStructTyped returns a function that sets the fields of the given
// struct pointer type from route parameters via reflection.
//
// A field binds the parameter named by its `param` tag, or else the
// lowerCamelCase form of its name ("UserID" binds "userId"). Fields tagged
// `param:"-"`, unexported and anonymous fields are skipped.
func IntoStructTyped(t reflect.Type) (func(params map[string]string, v any) error, error) {
	if t.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("expected pointer, got %v", t)
	}
	t = t.Elem()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected pointer to struct, got %v", t)
	}
	sets := make([]func(params map[string]string) (reflect.Value, error), t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous || !field.IsExported() || field.Tag.Get("param") == "-" {
			continue
		}

		set, err := FieldSetter(field)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		sets[i] = set
	}
	return func(params map[string]string, v any) error {
		value := reflect.ValueOf(v).Elem()
		for i, set := range sets {
			if set == nil {
				continue
			}
			v, err := set(params)
			if err != nil {
				return fmt.Errorf("field %s: %w", value.Type().Field(i).Name, err)
			}
			if !v.IsValid() {
				continue
			}
			value.Field(i).Set(v)
		}
		return nil
	}, nil
}

// ParamName returns the route parameter a struct field binds.
func ParamName(field reflect.StructField) string {
	if name := field.Tag.Get("param"); name != "" {
		return name
	}
	return strcase.ToCamel(field.Name)
}

// FieldSetter returns a function producing the value of field from route
// parameters. An invalid Value means the field should be left alone.
func FieldSetter(field reflect.StructField) (func(params map[string]string) (reflect.Value, error), error) {
	name := ParamName(field)
	valueParser, err := optionalParser(field.Type)
	if err != nil {
		return nil, err
	}
	return func(params map[string]string) (reflect.Value, error) {
		value, ok := params[name]
		v, err := valueParser(value, ok)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("param %s: %w", name, err)
		}
		return v, nil
	}, nil
}

// IntoStruct uses reflection to set the fields of the given struct pointer from params.
func IntoStruct(params map[string]string, v any) error {
	parse, err := IntoStructTyped(reflect.TypeOf(v))
	if err != nil {
		return err
	}
	return parse(params, v)
}

// optionalParser parses into pointer fields, leaving them nil when the
// parameter is absent. Other fields require the parameter.
func optionalParser(t reflect.Type) (func(value string, ok bool) (reflect.Value, error), error) {
	if t.Kind() == reflect.Pointer {
		parse, err := valueParser(t.Elem())
		if err != nil {
			return nil, err
		}
		return func(value string, ok bool) (reflect.Value, error) {
			if !ok {
				return reflect.Value{}, nil
			}
			parsed, err := parse(value)
			if err != nil {
				return reflect.Value{}, err
			}
			rValue := reflect.New(t.Elem())
			rValue.Elem().Set(parsed)
			return rValue, nil
		}, nil
	}
	parse, err := valueParser(t)
	if err != nil {
		return nil, err
	}
	return func(value string, ok bool) (reflect.Value, error) {
		if !ok {
			return reflect.Value{}, fmt.Errorf("no value")
		}
		return parse(value)
	}, nil
}

func valueParser(t reflect.Type) (func(string) (reflect.Value, error), error) {
	switch t.Kind() {
	case reflect.String:
		return func(value string) (reflect.Value, error) {
			return reflect.ValueOf(value).Convert(t), nil
		}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(value string) (reflect.Value, error) {
			i, err := strconv.ParseInt(value, 10, t.Bits())
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(i).Convert(t), nil
		}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(value string) (reflect.Value, error) {
			u, err := strconv.ParseUint(value, 10, t.Bits())
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(u).Convert(t), nil
		}, nil
	case reflect.Bool:
		return func(value string) (reflect.Value, error) {
			boolValue, err := strconv.ParseBool(value)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(boolValue).Convert(t), nil
		}, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", t)
	}
}
