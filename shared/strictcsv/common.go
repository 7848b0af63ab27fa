// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package strictcsv implements a strict struct-tag driven CSV codec.
//
// Every struct field participating in the codec must carry a `csv` tag
// naming its header column. Decoding is header-driven: columns are
// mapped to fields by name, unknown columns are rejected, and records
// may omit trailing columns but never carry extra ones.
package strictcsv

import (
	"fmt"

	"github.com/zeebo/errs"
)

var (
	// Error is an error class for the package.
	Error = errs.Class("strictcsv")
)

// FieldError describes a failure to decode a single CSV record. Field
// is empty when the whole record is malformed rather than one of its
// columns.
type FieldError struct {
	Line  int
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: field %q: %v", e.Line, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error { return e.Err }
