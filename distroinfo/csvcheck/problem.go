// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package csvcheck

import "fmt"

// Problem is a single schema violation found in a release file.
type Problem struct {
	Path  string
	Line  int
	Field string
	Err   error
}

func (p Problem) String() string {
	switch {
	case p.Line == 0:
		return fmt.Sprintf("%s: %v", p.Path, p.Err)
	case p.Field == "":
		return fmt.Sprintf("%s:%d: %v", p.Path, p.Line, p.Err)
	default:
		return fmt.Sprintf("%s:%d: %s: %v", p.Path, p.Line, p.Field, p.Err)
	}
}

type reporter struct {
	config   Config
	path     string
	problems []Problem
}

func newReporter(config Config, path string) *reporter {
	return &reporter{config: config, path: path}
}

// full reports whether the configured problem budget is exhausted.
func (r *reporter) full() bool {
	if r.config.FailFast && len(r.problems) >= 1 {
		return true
	}
	return r.config.MaxProblems > 0 && len(r.problems) >= r.config.MaxProblems
}

func (r *reporter) field(line int, field string, err error) {
	if r.full() {
		return
	}
	r.problems = append(r.problems, Problem{Path: r.path, Line: line, Field: field, Err: err})
}

func (r *reporter) file(line int, err error) {
	r.field(line, "", err)
}
