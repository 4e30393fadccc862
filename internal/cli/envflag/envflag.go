// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package envflag defines flags whose defaults can be taken from environment
// variables.
package envflag

import (
	"flag"
	"fmt"
	"strconv"
)

// Type is the set of flag types envflag supports.
type Type interface {
	int | float64 | bool | string
}

// Value defines a flag on fs with the given name, default value and usage.
//
// If the environment variable envName holds a value that parses as T, it
// replaces the default. Unparsable values are ignored. Flags given on the
// command line always win.
func Value[T Type](
	name, envName string, value T, usage string,
	fs *flag.FlagSet, getenv func(string) string,
) *T {
	result := value
	if s := getenv(envName); s != "" {
		if v, err := parse[T](s); err == nil {
			result = v
		}
	}
	fs.Var(&flagValue[T]{value: &result}, name, usage+" Defaults to $"+envName+" when set.")
	return &result
}

func parse[T Type](s string) (T, error) {
	var (
		zero T
		v    any
		err  error
	)
	switch any(zero).(type) {
	case int:
		v, err = strconv.Atoi(s)
	case float64:
		v, err = strconv.ParseFloat(s, 64)
	case bool:
		v, err = strconv.ParseBool(s)
	case string:
		v = s
	}
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// flagValue adapts a *T to flag.Value.
type flagValue[T Type] struct {
	value *T
}

func (f *flagValue[T]) String() string {
	if f.value == nil {
		return ""
	}
	return fmt.Sprint(*f.value)
}

// IsBoolFlag lets boolean flags be passed without a value, like -strict.
func (f *flagValue[T]) IsBoolFlag() bool {
	_, ok := any(f.value).(*bool)
	return ok
}

func (f *flagValue[T]) Set(s string) error {
	v, err := parse[T](s)
	if err != nil {
		return err
	}
	*f.value = v
	return nil
}
