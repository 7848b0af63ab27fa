// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package distroinfo

// Release is a single row of a distro-info-data release file. Trailing
// columns may be absent in the file, in which case the date pointers
// stay nil. Debian rows never carry eol-server/eol-esm and Ubuntu rows
// never carry eol-lts/eol-elts.
type Release struct {
	Version   string `csv:"version"`
	Codename  string `csv:"codename"`
	Series    string `csv:"series"`
	Created   *Date  `csv:"created"`
	Release   *Date  `csv:"release"`
	EOL       *Date  `csv:"eol"`
	EOLLTS    *Date  `csv:"eol-lts"`
	EOLELTS   *Date  `csv:"eol-elts"`
	EOLServer *Date  `csv:"eol-server"`
	EOLESM    *Date  `csv:"eol-esm"`
}

// Supported reports whether the release is still within its standard
// support period at the given date.
func (r Release) Supported(at Date) bool {
	if r.Release == nil || at.Before(*r.Release) {
		return false
	}
	if r.EOL == nil {
		return true
	}
	return !at.After(*r.EOL)
}
