package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_UsesLocation(t *testing.T) {
	taipei, err := time.LoadLocation("Asia/Taipei")
	require.NoError(t, err)

	// 23:30 UTC on the 14th is already the 15th in Taipei (+8).
	instant := time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-14", DateOf(instant, time.UTC))
	assert.Equal(t, "2025-03-15", DateOf(instant, taipei))
}

func TestMonthOf(t *testing.T) {
	assert.Equal(t, "2025-02", MonthOf("2025-02-28"))
	assert.Equal(t, "2025-02", MonthOf("2025-02"))
}

func TestDaysInMonth(t *testing.T) {
	cases := map[string]int{
		"2025-01": 31,
		"2025-02": 28,
		"2024-02": 29,
		"2025-04": 30,
	}
	for month, want := range cases {
		got, err := DaysInMonth(month)
		require.NoError(t, err, month)
		assert.Equal(t, want, got, month)
	}

	_, err := DaysInMonth("not-a-month")
	assert.Error(t, err)
}

func TestDateInMonth(t *testing.T) {
	assert.Equal(t, "2025-07-01", DateInMonth("2025-07", 1))
	assert.Equal(t, "2025-07-31", DateInMonth("2025-07", 31))
}

func TestParseHHMM(t *testing.T) {
	m, err := ParseHHMM("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = ParseHHMM("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = ParseHHMM("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, m)

	for _, bad := range []string{"24:00", "12:60", "1230", "ab:cd", ""} {
		_, err := ParseHHMM(bad)
		assert.Error(t, err, bad)
	}
}

func TestMinutesBetween(t *testing.T) {
	a := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 1, 9, 45, 30, 0, time.UTC)
	assert.Equal(t, 45, MinutesBetween(a, b))
	assert.Equal(t, -45, MinutesBetween(b, a))
}

func TestMinuteOfDay(t *testing.T) {
	instant := time.Date(2025, 1, 1, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, 18*60+45, MinuteOfDay(instant, time.UTC))
}
