package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay_UsesLocation(t *testing.T) {
	jkt, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 20:00 UTC on the 1st is already the 2nd in Jakarta (UTC+7).
	ts := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, Day(ts, jkt).Day())
	assert.Equal(t, 1, Day(ts, time.UTC).Day())
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 4, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, DaysBetween(a, b, time.UTC))
	assert.Equal(t, -3, DaysBetween(b, a, time.UTC))
	assert.Equal(t, 0, DaysBetween(a, a, time.UTC))
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-02-29", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", Format(d))

	_, err = ParseDay("29/02/2024", time.UTC)
	assert.Error(t, err)
}

func TestMonthToDate(t *testing.T) {
	from, to := MonthToDate(time.Date(2024, 3, 17, 10, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, "2024-03-01", Format(from))
	assert.Equal(t, "2024-03-17", Format(to))
}
