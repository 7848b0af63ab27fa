// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package version holds build information about the binary.
package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/errs"
)

var (
	// the following fields are set by the linker using
	// -ldflags "-X ...".
	buildTimestamp  string
	buildCommitHash string
	buildVersion    string
	buildRelease    string

	// Build is the struct cast of the above fields.
	Build Info

	versionRegex = regexp.MustCompile("^" + SemVerRegex + "$")
)

// SemVerRegex is the regular expression used to parse a semantic version.
const SemVerRegex = `v?([0-9]+)\.([0-9]+)\.([0-9]+)`

// SemVer represents a semantic version.
type SemVer struct {
	Major int64 `json:"major"`
	Minor int64 `json:"minor"`
	Patch int64 `json:"patch"`
}

// Info is the versioning information for a binary.
type Info struct {
	Timestamp  time.Time `json:"timestamp,omitempty"`
	CommitHash string    `json:"commitHash,omitempty"`
	Version    SemVer    `json:"version"`
	Release    bool      `json:"release,omitempty"`
}

// NewSemVer parses a given version and returns an instance of SemVer
// or an error if unable to parse the version.
func NewSemVer(v string) (SemVer, error) {
	match := versionRegex.FindStringSubmatch(v)
	if match == nil {
		return SemVer{}, errs.New("invalid semantic version %q", v)
	}

	major, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return SemVer{}, errs.Wrap(err)
	}
	minor, err := strconv.ParseInt(match[2], 10, 64)
	if err != nil {
		return SemVer{}, errs.Wrap(err)
	}
	patch, err := strconv.ParseInt(match[3], 10, 64)
	if err != nil {
		return SemVer{}, errs.Wrap(err)
	}

	return SemVer{Major: major, Minor: minor, Patch: patch}, nil
}

// Compare compares against the other version and returns -1, 0, or 1.
func (sem SemVer) Compare(other SemVer) int {
	if cmp := compareInt64(sem.Major, other.Major); cmp != 0 {
		return cmp
	}
	if cmp := compareInt64(sem.Minor, other.Minor); cmp != 0 {
		return cmp
	}
	return compareInt64(sem.Patch, other.Patch)
}

// IsZero checks if the semantic version is its zero value.
func (sem SemVer) IsZero() bool {
	return sem == SemVer{}
}

func (sem SemVer) String() string {
	return fmt.Sprintf("v%d.%d.%d", sem.Major, sem.Minor, sem.Patch)
}

// IsZero checks if the build information is its zero value.
func (info Info) IsZero() bool {
	return info == Info{}
}

func (info Info) String() string {
	if info.IsZero() {
		return "development build"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Version: %s", info.Version)
	if !info.Timestamp.IsZero() {
		fmt.Fprintf(&b, "\nBuild timestamp: %s", info.Timestamp.Format(time.RFC3339))
	}
	if info.CommitHash != "" {
		fmt.Fprintf(&b, "\nGit commit: %s", info.CommitHash)
	}
	fmt.Fprintf(&b, "\nRelease build: %t", info.Release)
	return b.String()
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func init() {
	if buildVersion == "" && buildTimestamp == "" && buildCommitHash == "" {
		return
	}

	timestamp, err := strconv.ParseInt(buildTimestamp, 10, 64)
	if err == nil {
		Build.Timestamp = time.Unix(timestamp, 0).UTC()
	}
	Build.CommitHash = buildCommitHash
	Build.Release = buildRelease == "true"

	Build.Version, err = NewSemVer(buildVersion)
	if err != nil {
		Build = Info{}
		return
	}
	if Build.Timestamp.IsZero() || Build.CommitHash == "" {
		Build.Release = false
	}
}
