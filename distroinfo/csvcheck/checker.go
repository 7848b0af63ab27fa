// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package csvcheck implements the schema checks for distro-info-data
// release files.
package csvcheck

import (
	"context"
	"errors"
	"io"
	"os"
	"regexp"

	"github.com/spacemonkeygo/monkit/v3"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/pexip/os-distro-info-data/distroinfo"
	"github.com/pexip/os-distro-info-data/shared/strictcsv"
)

var (
	mon = monkit.Package()

	// Error is an error class for the package.
	Error = errs.Class("csvcheck")

	seriesRegex        = regexp.MustCompile(`^[a-z][a-z0-9]*$`)
	debianVersionRegex = regexp.MustCompile(`^\d+(\.\d+)?$`)
	ubuntuVersionRegex = regexp.MustCompile(`^\d+\.\d\d( LTS)?$`)
)

// Config holds the knobs for a Checker.
type Config struct {
	FailFast    bool `help:"stop checking after the first problem" default:"false"`
	MaxProblems int  `help:"maximum number of problems to report, 0 means unlimited" default:"0"`
}

// Checker validates release files against the distribution schema. It
// implements distroinfo.Validator.
type Checker struct {
	log    *zap.Logger
	config Config
}

// New creates a new Checker.
func New(log *zap.Logger, config Config) *Checker {
	return &Checker{
		log:    log,
		config: config,
	}
}

// Validate runs Check and reduces its outcome to a boolean, logging
// every problem found. It implements distroinfo.Validator.
func (checker *Checker) Validate(ctx context.Context, path string, distro distroinfo.Distribution) bool {
	problems, err := checker.Check(ctx, path, distro)
	for _, problem := range problems {
		checker.log.Warn("problem found",
			zap.String("path", problem.Path),
			zap.Int("line", problem.Line),
			zap.String("field", problem.Field),
			zap.Error(problem.Err))
	}
	if err != nil {
		checker.log.Error("validation aborted",
			zap.String("path", path),
			zap.Stringer("distro", distro),
			zap.Error(err))
		return false
	}

	checker.log.Info("validation finished",
		zap.String("path", path),
		zap.Stringer("distro", distro),
		zap.Int("problems", len(problems)))
	return len(problems) == 0
}

// Check validates the release file at path against the schema of the
// given distribution and returns the problems found. The returned
// error reports file-level failures only; schema violations are
// returned as problems.
func (checker *Checker) Check(ctx context.Context, path string, distro distroinfo.Distribution) (problems []Problem, err error) {
	defer mon.Task()(&ctx)(&err)

	if !distro.Valid() {
		return nil, Error.New("unknown distribution %q", distro)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer func() {
		err = errs.Combine(err, Error.Wrap(file.Close()))
	}()

	decoder, err := strictcsv.NewDecoder(file, distroinfo.Release{})
	if err != nil {
		// a header naming unexpected columns means the column meanings
		// cannot be trusted, so stop here
		return []Problem{{Path: path, Line: 1, Err: err}}, nil
	}

	report := newReporter(checker.config, path)

	if !equalColumns(decoder.Header(), distro.Columns()) {
		report.file(1, Error.New("header %v does not match %s schema %v",
			decoder.Header(), distro, distro.Columns()))
		return report.problems, nil
	}

	seenSeries := make(map[string]int)
	for !report.full() {
		if err := ctx.Err(); err != nil {
			return report.problems, Error.Wrap(err)
		}

		var release distroinfo.Release
		err := decoder.Decode(&release)
		if errors.Is(err, io.EOF) {
			break
		}

		var fieldErr *strictcsv.FieldError
		if errors.As(err, &fieldErr) {
			report.field(fieldErr.Line, fieldErr.Field, fieldErr.Err)
			continue
		}
		if err != nil {
			return report.problems, Error.Wrap(err)
		}

		checker.checkRelease(report, decoder.Line(), release, distro, seenSeries)
	}

	return report.problems, nil
}

func (checker *Checker) checkRelease(report *reporter, line int, release distroinfo.Release, distro distroinfo.Distribution, seenSeries map[string]int) {
	switch {
	case release.Series == "":
		report.field(line, "series", Error.New("series is required"))
	case !seriesRegex.MatchString(release.Series):
		report.field(line, "series", Error.New("series %q must match %s", release.Series, seriesRegex))
	default:
		if first, ok := seenSeries[release.Series]; ok {
			report.field(line, "series", Error.New("duplicate series %q, first seen on line %d", release.Series, first))
		} else {
			seenSeries[release.Series] = line
		}
	}

	if release.Codename == "" {
		report.field(line, "codename", Error.New("codename is required"))
	}
	if release.Created == nil {
		report.field(line, "created", Error.New("created is required"))
	}

	switch distro {
	case distroinfo.Debian:
		if release.Version != "" && !debianVersionRegex.MatchString(release.Version) {
			report.field(line, "version", Error.New("version %q must match %s", release.Version, debianVersionRegex))
		}
	case distroinfo.Ubuntu:
		switch {
		case release.Version == "":
			report.field(line, "version", Error.New("version is required"))
		case !ubuntuVersionRegex.MatchString(release.Version):
			report.field(line, "version", Error.New("version %q must match %s", release.Version, ubuntuVersionRegex))
		}
	}

	ordered := func(field string, earlier, later *distroinfo.Date) {
		if earlier == nil || later == nil {
			return
		}
		if earlier.After(*later) {
			report.field(line, field, Error.New("%s is before %s", later, earlier))
		}
	}

	ordered("release", release.Created, release.Release)
	ordered("eol", release.Release, release.EOL)
	switch distro {
	case distroinfo.Debian:
		ordered("eol-lts", release.EOL, release.EOLLTS)
		ordered("eol-elts", release.EOLLTS, release.EOLELTS)
	case distroinfo.Ubuntu:
		ordered("eol-server", release.EOL, release.EOLServer)
		ordered("eol-esm", release.EOL, release.EOLESM)
	}
}

func equalColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
