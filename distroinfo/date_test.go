// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package distroinfo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pexip/os-distro-info-data/distroinfo"
)

func TestConvertDate(t *testing.T) {
	t.Run("empty is nil", func(t *testing.T) {
		date, err := distroinfo.ConvertDate("")
		require.NoError(t, err)
		require.Nil(t, date)
	})

	t.Run("valid", func(t *testing.T) {
		date, err := distroinfo.ConvertDate("2012-01-15")
		require.NoError(t, err)
		require.NotNil(t, date)
		assert.Equal(t, distroinfo.Date{Year: 2012, Month: time.January, Day: 15}, *date)
	})

	t.Run("leap day", func(t *testing.T) {
		date, err := distroinfo.ConvertDate("2012-02-29")
		require.NoError(t, err)
		assert.Equal(t, distroinfo.Date{Year: 2012, Month: time.February, Day: 29}, *date)

		_, err = distroinfo.ConvertDate("2011-02-29")
		require.Error(t, err)
		assert.True(t, distroinfo.ErrDateCalendar.Has(err))
	})

	t.Run("invalid month", func(t *testing.T) {
		_, err := distroinfo.ConvertDate("2012-15-01")
		require.Error(t, err)
		assert.True(t, distroinfo.ErrDateCalendar.Has(err))
	})

	t.Run("two parts", func(t *testing.T) {
		_, err := distroinfo.ConvertDate("2012-01")
		require.Error(t, err)
		assert.True(t, distroinfo.ErrDateFormat.Has(err))
	})

	t.Run("four parts", func(t *testing.T) {
		_, err := distroinfo.ConvertDate("2012-01-15-03")
		require.Error(t, err)
		assert.True(t, distroinfo.ErrDateFormat.Has(err))
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := distroinfo.ConvertDate("2012-01-ab")
		require.Error(t, err)
		assert.True(t, distroinfo.ErrDateNumeric.Has(err))
	})

	t.Run("trailing dash", func(t *testing.T) {
		// the empty part fails numeric conversion before the part count
		// is considered
		_, err := distroinfo.ConvertDate("2012-01-")
		require.Error(t, err)
		assert.True(t, distroinfo.ErrDateNumeric.Has(err))
	})
}

func TestDate_Ordering(t *testing.T) {
	earlier, err := distroinfo.ConvertDate("2012-01-15")
	require.NoError(t, err)
	later, err := distroinfo.ConvertDate("2012-01-16")
	require.NoError(t, err)

	assert.True(t, earlier.Before(*later))
	assert.True(t, later.After(*earlier))
	assert.False(t, earlier.Before(*earlier))
	assert.False(t, earlier.After(*earlier))
}

func TestDate_String(t *testing.T) {
	date, err := distroinfo.NewDate(476, time.September, 4)
	require.NoError(t, err)
	assert.Equal(t, "0476-09-04", date.String())
}

func TestDate_CSV(t *testing.T) {
	var date distroinfo.Date
	require.NoError(t, date.UnmarshalCSV("2012-01-15"))

	marshaled, err := date.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "2012-01-15", marshaled)

	require.Error(t, date.UnmarshalCSV(""))
	require.Error(t, date.UnmarshalCSV("2012-01-ab"))
}
