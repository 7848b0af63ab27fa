// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package distroinfo

import "context"

// Distribution identifies which release file schema applies.
type Distribution string

const (
	// Debian is the label for Debian release files.
	Debian Distribution = "debian"
	// Ubuntu is the label for Ubuntu release files.
	Ubuntu Distribution = "ubuntu"
)

// Valid reports whether the distribution is one of the known labels.
func (distro Distribution) Valid() bool {
	return distro == Debian || distro == Ubuntu
}

func (distro Distribution) String() string {
	return string(distro)
}

// Columns returns the exact CSV header for the distribution's release
// file, order included.
func (distro Distribution) Columns() []string {
	columns := []string{"version", "codename", "series", "created", "release", "eol"}
	switch distro {
	case Debian:
		return append(columns, "eol-lts", "eol-elts")
	case Ubuntu:
		return append(columns, "eol-server", "eol-esm")
	}
	return nil
}

// Validator performs the actual schema checks on a release file. The
// command only ever observes the boolean outcome; details are reported
// through the implementation's own logging.
type Validator interface {
	Validate(ctx context.Context, path string, distro Distribution) bool
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(ctx context.Context, path string, distro Distribution) bool

// Validate implements Validator.
func (fn ValidatorFunc) Validate(ctx context.Context, path string, distro Distribution) bool {
	return fn(ctx, path, distro)
}
