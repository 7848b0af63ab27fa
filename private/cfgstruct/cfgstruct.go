// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package cfgstruct binds configuration structs to flag sets using
// struct tags.
package cfgstruct

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/zeebo/errs"
)

// Error is an error class for the package.
var Error = errs.Class("cfgstruct")

// Bind registers a flag for every field of config, which must be a
// pointer to a struct. Field names become dot-separated lowercase flag
// names, nested structs contribute a prefix, and the tags
//
//	help:"..."     flag usage string
//	default:"..."  flag default value
//	hidden:"true"  hide the flag from usage output
//
// control the registration. Unexported fields and fields tagged with
// `noflag:"true"` are skipped.
func Bind(flags *pflag.FlagSet, config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic(Error.New("config (%T) must be a non-nil pointer to a struct", config))
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic(Error.New("config (%T) must be a non-nil pointer to a struct", config))
	}
	bindStruct(flags, "", v)
}

func bindStruct(flags *pflag.FlagSet, prefix string, v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" || field.Tag.Get("noflag") == "true" {
			continue
		}

		fieldValue := v.Field(i)
		name := prefix + hyphenate(field.Name)

		if fieldValue.Kind() == reflect.Struct {
			bindStruct(flags, name+".", fieldValue)
			continue
		}

		help := field.Tag.Get("help")
		def := field.Tag.Get("default")
		bindField(flags, name, help, def, fieldValue, field)

		if field.Tag.Get("hidden") == "true" {
			if err := flags.MarkHidden(name); err != nil {
				panic(Error.Wrap(err))
			}
		}
	}
}

func bindField(flags *pflag.FlagSet, name, help, def string, v reflect.Value, field reflect.StructField) {
	addr := v.Addr().Interface()
	switch target := addr.(type) {
	case *bool:
		flags.BoolVar(target, name, parseBool(name, def), help)
	case *int:
		flags.IntVar(target, name, int(parseInt(name, def)), help)
	case *int64:
		flags.Int64Var(target, name, parseInt(name, def), help)
	case *uint:
		flags.UintVar(target, name, uint(parseUint(name, def)), help)
	case *uint64:
		flags.Uint64Var(target, name, parseUint(name, def), help)
	case *float64:
		flags.Float64Var(target, name, parseFloat(name, def), help)
	case *string:
		flags.StringVar(target, name, def, help)
	case *time.Duration:
		flags.DurationVar(target, name, parseDuration(name, def), help)
	case pflag.Value:
		if def != "" {
			if err := target.Set(def); err != nil {
				panic(Error.New("invalid default %q for flag %q: %v", def, name, err))
			}
		}
		flags.Var(target, name, help)
	default:
		panic(Error.New("field %q has unsupported type %s", field.Name, field.Type.String()))
	}
}

func hyphenate(name string) string {
	var b strings.Builder
	for i, r := range name {
		if 'A' <= r && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func parseBool(name, def string) bool {
	if def == "" {
		return false
	}
	parsed, err := strconv.ParseBool(def)
	if err != nil {
		panic(Error.New("invalid default %q for flag %q: %v", def, name, err))
	}
	return parsed
}

func parseInt(name, def string) int64 {
	if def == "" {
		return 0
	}
	parsed, err := strconv.ParseInt(def, 10, 64)
	if err != nil {
		panic(Error.New("invalid default %q for flag %q: %v", def, name, err))
	}
	return parsed
}

func parseUint(name, def string) uint64 {
	if def == "" {
		return 0
	}
	parsed, err := strconv.ParseUint(def, 10, 64)
	if err != nil {
		panic(Error.New("invalid default %q for flag %q: %v", def, name, err))
	}
	return parsed
}

func parseFloat(name, def string) float64 {
	if def == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(def, 64)
	if err != nil {
		panic(Error.New("invalid default %q for flag %q: %v", def, name, err))
	}
	return parsed
}

func parseDuration(name, def string) time.Duration {
	if def == "" {
		return 0
	}
	parsed, err := time.ParseDuration(def)
	if err != nil {
		panic(Error.New("invalid default %q for flag %q: %v", def, name, err))
	}
	return parsed
}
