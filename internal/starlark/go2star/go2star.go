// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package go2star converts Go values to [starlark.Value].
package go2star

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strings"

	"go.starlark.net/starlark"
)

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

// To converts a Go value to a Starlark value.
//
// It supports the following Go types:
//
//   - nil and nil pointers: converted to [starlark.None]
//   - bool: converted to [starlark.Bool]
//   - string: converted to [starlark.String]
//   - int, int8, int16, int32, int64: converted to [starlark.Int]
//   - uint, uint8, uint16, uint32, uint64: converted to [starlark.Int]
//   - float32, float64: converted to [starlark.Float] or [starlark.Int] (if the value can be represented as an integer without loss of precision)
//   - [encoding.TextMarshaler]: converted to [starlark.String]
//   - slice and array: converted to [starlark.List] (elements are recursively converted)
//   - map: converted to [starlark.Dict] (keys and values are recursively converted)
//   - struct: converted to [starlark.Dict] (field names are used as keys, and field values are recursively converted). Unexported fields are ignored.
//
// Struct keys are taken from the "starlark" field tag, then the "json" field
// tag, then the field name. Fields tagged "-" are skipped.
//
// If the Go value cannot be converted, an error is returned.
func To(val any) (starlark.Value, error) {
	if val == nil {
		return starlark.None, nil
	}
	return toValue(reflect.ValueOf(val))
}

func toValue(rv reflect.Value) (starlark.Value, error) {
	if rv.Type().Implements(textMarshalerType) && !isNil(rv) {
		b, err := rv.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, err
		}
		return starlark.String(b), nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return starlark.None, nil
		}
		return toValue(rv.Elem())
	case reflect.Bool:
		return starlark.Bool(rv.Bool()), nil
	case reflect.String:
		return starlark.String(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		fl := rv.Float()
		if canBeInt(fl) {
			return starlark.MakeInt64(int64(fl)), nil
		}
		return starlark.Float(fl), nil
	case reflect.Slice, reflect.Array:
		list := make([]starlark.Value, 0, rv.Len())
		for i := range rv.Len() {
			conv, err := toValue(rv.Index(i))
			if err != nil {
				return nil, err
			}
			list = append(list, conv)
		}
		return starlark.NewList(list), nil
	case reflect.Map:
		return mapToDict(rv)
	case reflect.Struct:
		return structToDict(rv)
	default:
		return nil, fmt.Errorf("unsupported Go type: %s", rv.Type())
	}
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// structToDict converts Go struct to starlark.Value using reflection.
func structToDict(val reflect.Value) (starlark.Value, error) {
	dict := starlark.NewDict(val.NumField())
	structType := val.Type()

	for i := range val.NumField() {
		field := structType.Field(i)

		// Skip unexported fields.
		if !field.IsExported() {
			continue
		}

		fieldName := fieldKey(field)
		if fieldName == "-" {
			continue
		}

		fieldVal, err := toValue(val.Field(i))
		if err != nil {
			return nil, fmt.Errorf("error converting field %s: %w", fieldName, err)
		}
		if err := dict.SetKey(starlark.String(fieldName), fieldVal); err != nil {
			return nil, fmt.Errorf("error setting field %s: %w", fieldName, err)
		}
	}

	return dict, nil
}

func fieldKey(field reflect.StructField) string {
	if name, ok := field.Tag.Lookup("starlark"); ok {
		return name
	}
	if tag, ok := field.Tag.Lookup("json"); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			return name
		}
	}
	return field.Name
}

// canBeInt reports if the float can be converted to int without losing
// precision.
func canBeInt(f float64) bool {
	// Check if the float is within the representable range of int.
	if f < math.MinInt || f > math.MaxInt {
		return false
	}
	// Check if the float has a fractional part (i.e., it's not a whole number).
	return f == math.Trunc(f)
}

// mapToDict converts Go map to starlark.Value.
func mapToDict(rv reflect.Value) (starlark.Value, error) {
	dict := starlark.NewDict(rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := toValue(iter.Key())
		if err != nil {
			return nil, fmt.Errorf("error converting map key: %w", err)
		}

		val, err := toValue(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("error converting map value: %w", err)
		}

		if err := dict.SetKey(key, val); err != nil {
			return nil, fmt.Errorf("error setting key-value in Starlark dict: %w", err)
		}
	}

	return dict, nil
}
