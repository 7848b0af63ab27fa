// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package distroinfo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pexip/os-distro-info-data/distroinfo"
)

func TestDistribution_Valid(t *testing.T) {
	assert.True(t, distroinfo.Debian.Valid())
	assert.True(t, distroinfo.Ubuntu.Valid())
	assert.False(t, distroinfo.Distribution("gentoo").Valid())
	assert.False(t, distroinfo.Distribution("").Valid())
}

func TestDistribution_Columns(t *testing.T) {
	assert.Equal(t,
		[]string{"version", "codename", "series", "created", "release", "eol", "eol-lts", "eol-elts"},
		distroinfo.Debian.Columns())
	assert.Equal(t,
		[]string{"version", "codename", "series", "created", "release", "eol", "eol-server", "eol-esm"},
		distroinfo.Ubuntu.Columns())
	assert.Nil(t, distroinfo.Distribution("gentoo").Columns())
}

func TestRelease_Supported(t *testing.T) {
	date := func(s string) *distroinfo.Date {
		converted, err := distroinfo.ConvertDate(s)
		require.NoError(t, err)
		return converted
	}

	release := distroinfo.Release{
		Series:  "bookworm",
		Created: date("2021-08-14"),
		Release: date("2023-06-10"),
		EOL:     date("2026-06-10"),
	}

	assert.False(t, release.Supported(*date("2023-06-09")))
	assert.True(t, release.Supported(*date("2023-06-10")))
	assert.True(t, release.Supported(*date("2026-06-10")))
	assert.False(t, release.Supported(*date("2026-06-11")))

	// a series that never released is never supported
	assert.False(t, distroinfo.Release{Series: "sid", Created: date("1993-08-16")}.Supported(*date("2020-01-01")))

	// no eol means still supported
	open := distroinfo.Release{Series: "trixie", Release: date("2025-08-09")}
	assert.True(t, open.Supported(*date("2030-01-01")))
}
