// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package strictcsv

import (
	"bytes"
	"encoding"
	"encoding/csv"
	"errors"
	"io"
	"reflect"
	"strconv"
)

var (
	unmarshalCSVType  = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	unmarshalTextType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// Unmarshaler is used to implement customized CSV field unmarshaling.
type Unmarshaler interface {
	UnmarshalCSV(s string) error
}

// Decoder reads CSV records from a reader and decodes them into
// structs. The first record is the header; it drives the mapping of
// columns to struct fields, so files may omit trailing columns that
// the struct knows about.
type Decoder struct {
	reader  *csv.Reader
	typ     reflect.Type
	header  []string
	columns []settableField
	line    int
}

// NewDecoder reads the header from r and prepares a decoder for
// records shaped like the given struct.
func NewDecoder(r io.Reader, shape interface{}) (*Decoder, error) {
	t := reflect.TypeOf(shape)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, Error.New("shape (%T) must be a struct or pointer to struct", shape)
	}

	fields, err := getSettableFields(t)
	if err != nil {
		return nil, err
	}
	byHeader := make(map[string]settableField, len(fields))
	for _, field := range fields {
		byHeader[field.Header] = field
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, Error.New("missing header")
		}
		return nil, Error.Wrap(err)
	}

	columns := make([]settableField, 0, len(header))
	seen := make(map[string]bool, len(header))
	for _, column := range header {
		field, ok := byHeader[column]
		if !ok {
			return nil, Error.New("unknown column %q", column)
		}
		if seen[column] {
			return nil, Error.New("duplicate column %q", column)
		}
		seen[column] = true
		columns = append(columns, field)
	}

	return &Decoder{
		reader:  reader,
		typ:     t,
		header:  header,
		columns: columns,
		line:    1,
	}, nil
}

// Header returns the header record read during construction.
func (dec *Decoder) Header() []string { return dec.header }

// Line returns the line number of the most recently decoded record.
// The header is line 1.
func (dec *Decoder) Line() int { return dec.line }

// Decode reads the next record into obj, which must be a pointer to a
// struct of the decoder's shape. It returns io.EOF when no records
// remain. Failures scoped to the record are reported as a *FieldError
// and leave the decoder usable for the following records.
func (dec *Decoder) Decode(obj interface{}) error {
	record, err := dec.reader.Read()
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	if err != nil {
		return Error.Wrap(err)
	}
	dec.line++

	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Type() != dec.typ {
		return Error.New("target (%T) must be a non-nil pointer to %s", obj, dec.typ)
	}
	v = v.Elem()
	v.Set(reflect.Zero(dec.typ))

	if len(record) > len(dec.columns) {
		return Error.Wrap(&FieldError{
			Line: dec.line,
			Err:  Error.New("record has %d fields, header has %d", len(record), len(dec.columns)),
		})
	}

	for i, column := range record {
		field := dec.columns[i]
		if err := field.Setter(v.FieldByIndex(field.Index), column); err != nil {
			return Error.Wrap(&FieldError{
				Line:  dec.line,
				Field: field.Header,
				Err:   err,
			})
		}
	}
	return nil
}

// Unmarshal unmarshals CSV data into an object.
func Unmarshal(data []byte, obj interface{}) error {
	return Read(bytes.NewReader(data), obj)
}

// UnmarshalString unmarshals a CSV string into an object.
func UnmarshalString(data string, obj interface{}) error {
	return Read(bytes.NewReader([]byte(data)), obj)
}

// Read reads CSV from the reader into obj, which must be a pointer to
// a struct (exactly one record expected) or a pointer to a slice of
// structs.
func Read(r io.Reader, obj interface{}) error {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return Error.New("target (%T) must be a non-nil pointer", obj)
	}
	v = v.Elem()

	if v.Kind() == reflect.Slice {
		elem := v.Type().Elem()
		isPtr := elem.Kind() == reflect.Ptr
		if isPtr {
			elem = elem.Elem()
		}

		dec, err := NewDecoder(r, reflect.New(elem).Interface())
		if err != nil {
			return err
		}
		for {
			rec := reflect.New(elem)
			err := dec.Decode(rec.Interface())
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if isPtr {
				v.Set(reflect.Append(v, rec))
			} else {
				v.Set(reflect.Append(v, rec.Elem()))
			}
		}
	}

	dec, err := NewDecoder(r, obj)
	if err != nil {
		return err
	}
	if err := dec.Decode(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return Error.New("no records")
		}
		return err
	}
	if err := dec.Decode(reflect.New(dec.typ).Interface()); !errors.Is(err, io.EOF) {
		return Error.New("more than one record")
	}
	return nil
}

type settableField struct {
	Header string
	Name   string
	Index  []int
	Setter func(v reflect.Value, column string) error
}

func getSettableFields(t reflect.Type) ([]settableField, error) {
	var fields []settableField
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		header := field.Tag.Get("csv")
		if header == "" {
			return nil, Error.New("field %q missing csv tag", field.Name)
		}
		if header == "-" {
			continue
		}

		var setter func(v reflect.Value, column string) error
		switch {
		case field.Type.Kind() == reflect.Ptr && field.Type.Implements(unmarshalCSVType):
			setter = setPointerValue(field.Type.Elem(), setUnmarshalCSVValue)
		case reflect.PointerTo(field.Type).Implements(unmarshalCSVType):
			setter = setUnmarshalCSVValue
		case field.Type.Kind() == reflect.Ptr && field.Type.Implements(unmarshalTextType):
			setter = setPointerValue(field.Type.Elem(), setUnmarshalTextValue)
		case reflect.PointerTo(field.Type).Implements(unmarshalTextType):
			setter = setUnmarshalTextValue
		default:
			ft := field.Type
			isPtr := ft.Kind() == reflect.Ptr
			if isPtr {
				ft = ft.Elem()
			}
			switch ft.Kind() {
			case reflect.String:
				setter = setStringValue
			case reflect.Bool:
				setter = setBoolValue
			case reflect.Int64:
				setter = setInt64Value
			case reflect.Uint64:
				setter = setUint64Value
			case reflect.Float64:
				setter = setFloat64Value
			default:
				return nil, Error.New("field %q has unsupported type %s", field.Name, field.Type.String())
			}
			if isPtr {
				setter = setPointerValue(ft, setter)
			}
		}

		fields = append(fields, settableField{
			Header: header,
			Name:   field.Name,
			Index:  field.Index,
			Setter: setter,
		})
	}
	return fields, nil
}

// setPointerValue leaves nil pointers in place for empty columns and
// otherwise allocates and sets through the element setter.
func setPointerValue(elem reflect.Type, setter func(reflect.Value, string) error) func(reflect.Value, string) error {
	return func(v reflect.Value, column string) error {
		if column == "" {
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		nv := reflect.New(elem)
		if err := setter(nv.Elem(), column); err != nil {
			return err
		}
		v.Set(nv)
		return nil
	}
}

func setStringValue(v reflect.Value, column string) error {
	v.SetString(column)
	return nil
}

func setBoolValue(v reflect.Value, column string) error {
	parsed, err := strconv.ParseBool(column)
	if err != nil {
		return err
	}
	v.SetBool(parsed)
	return nil
}

func setInt64Value(v reflect.Value, column string) error {
	parsed, err := strconv.ParseInt(column, 10, 64)
	if err != nil {
		return err
	}
	v.SetInt(parsed)
	return nil
}

func setUint64Value(v reflect.Value, column string) error {
	parsed, err := strconv.ParseUint(column, 10, 64)
	if err != nil {
		return err
	}
	v.SetUint(parsed)
	return nil
}

func setFloat64Value(v reflect.Value, column string) error {
	parsed, err := strconv.ParseFloat(column, 64)
	if err != nil {
		return err
	}
	v.SetFloat(parsed)
	return nil
}

func setUnmarshalCSVValue(v reflect.Value, column string) error {
	return v.Addr().Interface().(Unmarshaler).UnmarshalCSV(column)
}

func setUnmarshalTextValue(v reflect.Value, column string) error {
	return v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(column))
}
