package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// BindQuery populates v (a pointer to struct) from URL query parameters
// using `query` struct tags. Parameters not declared by any field are
// rejected with ErrUnknownParameter so that endpoints keep a whitelist
// policy over their query surface.
//
// Supported field types: string, int and bool, plus pointers to them for
// optional parameters. A tag of "-" skips the field.
func BindQuery(r *http.Request, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: need a non-nil struct pointer", ErrUnsupportedType)
	}

	elem := rv.Elem()
	elemType := elem.Type()

	known := make(map[string]reflect.Value, elemType.NumField())
	for i := range elemType.NumField() {
		field := elemType.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Tag.Get("query")
		if name == "" {
			name = field.Name
		}
		if idx := strings.Index(name, ","); idx != -1 {
			name = name[:idx]
		}
		if name == "-" {
			continue
		}

		known[name] = elem.Field(i)
	}

	values := r.URL.Query()
	for param, vals := range values {
		target, ok := known[param]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownParameter, param)
		}
		if len(vals) == 0 {
			continue
		}

		if err := setValue(target, vals[0]); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidQuery, param, err)
		}
	}

	return nil
}

func setValue(target reflect.Value, raw string) error {
	if target.Kind() == reflect.Pointer {
		ptr := reflect.New(target.Type().Elem())
		if err := setValue(ptr.Elem(), raw); err != nil {
			return err
		}
		target.Set(ptr)
		return nil
	}

	switch target.Kind() {
	case reflect.String:
		target.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("not an integer: %q", raw)
		}
		target.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("not a boolean: %q", raw)
		}
		target.SetBool(b)
	default:
		return fmt.Errorf("cannot bind to %s", target.Kind())
	}

	return nil
}
