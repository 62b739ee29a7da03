// Package slot holds the catalog of daily time slots that bookings are
// validated against and that the availability grid is built from.
package slot

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// DefaultSlots is the catalog used when none is configured: hourly slots
// from 08:00 to 18:00.
const DefaultSlots = "08:00-09:00,09:00-10:00,10:00-11:00,11:00-12:00,12:00-13:00," +
	"13:00-14:00,14:00-15:00,15:00-16:00,16:00-17:00,17:00-18:00"

var ErrInvalidCatalog = errors.New("invalid slot catalog")

// TimeOfDay is a wall-clock time with minute granularity, stored as minutes
// since midnight.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: bad time %q", ErrInvalidCatalog, s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// TimeOfDayOf reduces t to its wall-clock time in loc. ok is false when t
// carries seconds or sub-second precision.
func TimeOfDayOf(t time.Time, loc *time.Location) (tod TimeOfDay, ok bool) {
	t = t.In(loc)
	if t.Second() != 0 || t.Nanosecond() != 0 {
		return 0, false
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), true
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Slot is a named pair of times of day. End is exclusive.
type Slot struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Label is the slot name, e.g. "09:00-10:00".
func (s Slot) Label() string {
	return s.Start.String() + "-" + s.End.String()
}

// On returns the absolute bounds of the slot on the calendar day of day,
// evaluated in loc.
func (s Slot) On(day time.Time, loc *time.Location) (start, end time.Time) {
	d := day.In(loc)
	start = time.Date(d.Year(), d.Month(), d.Day(), int(s.Start)/60, int(s.Start)%60, 0, 0, loc)
	end = time.Date(d.Year(), d.Month(), d.Day(), int(s.End)/60, int(s.End)%60, 0, 0, loc)
	return start, end
}

// Catalog is an immutable ordered set of slots shared by every room.
type Catalog struct {
	slots []Slot
	index map[Slot]int
	loc   *time.Location
}

// New builds a catalog. Slots must be non-empty, each with Start < End,
// and listed in strictly increasing order without overlaps.
func New(loc *time.Location, slots ...Slot) (*Catalog, error) {
	if loc == nil {
		loc = time.UTC
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: no slots", ErrInvalidCatalog)
	}

	c := &Catalog{
		slots: make([]Slot, 0, len(slots)),
		index: make(map[Slot]int, len(slots)),
		loc:   loc,
	}
	for i, s := range slots {
		if s.Start < 0 || s.End >= minutesPerDay || s.Start >= s.End {
			return nil, fmt.Errorf("%w: slot %s is empty or out of range", ErrInvalidCatalog, s.Label())
		}
		if i > 0 && s.Start < slots[i-1].End {
			return nil, fmt.Errorf("%w: slot %s overlaps or precedes %s", ErrInvalidCatalog, s.Label(), slots[i-1].Label())
		}
		c.index[s] = len(c.slots)
		c.slots = append(c.slots, s)
	}
	return c, nil
}

// Parse builds a catalog from a comma-separated list of "HH:MM-HH:MM" labels.
func Parse(list string, loc *time.Location) (*Catalog, error) {
	var slots []Slot
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.Split(part, "-")
		if len(bounds) != 2 {
			return nil, fmt.Errorf("%w: bad slot %q", ErrInvalidCatalog, part)
		}
		start, err := ParseTimeOfDay(bounds[0])
		if err != nil {
			return nil, err
		}
		end, err := ParseTimeOfDay(bounds[1])
		if err != nil {
			return nil, err
		}
		slots = append(slots, Slot{Start: start, End: end})
	}
	return New(loc, slots...)
}

// MustParse is Parse for package-level values and tests.
func MustParse(list string, loc *time.Location) *Catalog {
	c, err := Parse(list, loc)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the hourly 08:00-18:00 catalog in loc.
func Default(loc *time.Location) *Catalog {
	return MustParse(DefaultSlots, loc)
}

// Slots returns the slots in catalog order. The slice is a copy.
func (c *Catalog) Slots() []Slot {
	out := make([]Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

func (c *Catalog) Len() int {
	return len(c.slots)
}

// Location is the zone in which timestamps are reduced to times of day.
func (c *Catalog) Location() *time.Location {
	return c.loc
}

// Contains reports whether (start, end) is exactly one catalog slot.
func (c *Catalog) Contains(start, end TimeOfDay) bool {
	_, ok := c.index[Slot{Start: start, End: end}]
	return ok
}

// Match reduces an absolute interval to a catalog slot. Both bounds must fall
// on the same calendar day in the catalog location and have no seconds.
func (c *Catalog) Match(start, end time.Time) (Slot, bool) {
	s, e := start.In(c.loc), end.In(c.loc)
	if s.Year() != e.Year() || s.YearDay() != e.YearDay() {
		return Slot{}, false
	}
	startTOD, ok := TimeOfDayOf(s, c.loc)
	if !ok {
		return Slot{}, false
	}
	endTOD, ok := TimeOfDayOf(e, c.loc)
	if !ok {
		return Slot{}, false
	}
	candidate := Slot{Start: startTOD, End: endTOD}
	if _, ok := c.index[candidate]; !ok {
		return Slot{}, false
	}
	return candidate, true
}

// Span returns the absolute bounds covering every slot on the day of day.
func (c *Catalog) Span(day time.Time) (start, end time.Time) {
	start, _ = c.slots[0].On(day, c.loc)
	_, end = c.slots[len(c.slots)-1].On(day, c.loc)
	return start, end
}

// String renders the catalog back into its configuration form.
func (c *Catalog) String() string {
	labels := make([]string, len(c.slots))
	for i, s := range c.slots {
		labels[i] = s.Label()
	}
	return strings.Join(labels, ",")
}
