package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DefaultSlots(t *testing.T) {
	c, err := Parse(DefaultSlots, time.UTC)
	require.NoError(t, err)

	slots := c.Slots()
	require.Len(t, slots, 10)
	assert.Equal(t, "08:00-09:00", slots[0].Label())
	assert.Equal(t, "17:00-18:00", slots[9].Label())
	assert.Equal(t, DefaultSlots, c.String())
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"garbage":      "nine-ten",
		"missing end":  "09:00",
		"inverted":     "10:00-09:00",
		"zero length":  "09:00-09:00",
		"overlapping":  "09:00-10:00,09:30-10:30",
		"out of order": "10:00-11:00,09:00-10:00",
		"duplicate":    "09:00-10:00,09:00-10:00",
		"bad minutes":  "09:75-10:00",
	}

	for name, list := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(list, time.UTC)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestCatalog_Contains(t *testing.T) {
	c := MustParse("09:00-10:00,10:00-11:00,13:30-14:15", time.UTC)

	nine, _ := ParseTimeOfDay("09:00")
	ten, _ := ParseTimeOfDay("10:00")
	eleven, _ := ParseTimeOfDay("11:00")
	half, _ := ParseTimeOfDay("13:30")
	quarter, _ := ParseTimeOfDay("14:15")

	assert.True(t, c.Contains(nine, ten))
	assert.True(t, c.Contains(ten, eleven))
	assert.True(t, c.Contains(half, quarter))
	assert.False(t, c.Contains(nine, eleven), "two consecutive slots are not one slot")
	assert.False(t, c.Contains(ten, nine))
}

func TestCatalog_Match(t *testing.T) {
	c := MustParse("09:00-10:00,10:00-11:00", time.UTC)
	day := func(h, m, s int) time.Time {
		return time.Date(2024, 1, 1, h, m, s, 0, time.UTC)
	}

	got, ok := c.Match(day(9, 0, 0), day(10, 0, 0))
	require.True(t, ok)
	assert.Equal(t, "09:00-10:00", got.Label())

	_, ok = c.Match(day(9, 30, 0), day(10, 30, 0))
	assert.False(t, ok, "off-grid interval")

	_, ok = c.Match(day(9, 0, 1), day(10, 0, 0))
	assert.False(t, ok, "seconds are not allowed")

	_, ok = c.Match(day(9, 0, 0), day(10, 0, 0).AddDate(0, 0, 1))
	assert.False(t, ok, "bounds on different days")
}

func TestCatalog_MatchUsesCatalogLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	c := MustParse("09:00-10:00", loc)

	// 06:00Z is 09:00 in UTC+3.
	start := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	got, ok := c.Match(start, start.Add(time.Hour))
	require.True(t, ok)
	assert.Equal(t, "09:00-10:00", got.Label())

	_, ok = c.Match(start.Add(3*time.Hour), start.Add(4*time.Hour))
	assert.False(t, ok)
}

func TestSlot_On(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	s := Slot{Start: 9 * 60, End: 10*60 + 30}

	start, end := s.On(time.Date(2024, 1, 1, 0, 0, 0, 0, loc), loc)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 30, 0, 0, loc), end)
}

func TestCatalog_SlotsIsACopy(t *testing.T) {
	c := Default(time.UTC)
	slots := c.Slots()
	slots[0] = Slot{Start: 0, End: 1}

	assert.Equal(t, "08:00-09:00", c.Slots()[0].Label())
}

func TestCatalog_Span(t *testing.T) {
	c := Default(time.UTC)
	start, end := c.Span(time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC), end)
}
