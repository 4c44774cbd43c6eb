package util

import (
	"strings"
	"sync/atomic"
	"time"
)

// LocalDateTime renders timestamps without an offset, in the location set
// through SetLocation (the host's local zone until then).
type LocalDateTime struct {
	time.Time
}

const layout = "2006-01-02T15:04:05"

var location atomic.Pointer[time.Location]

// SetLocation switches the display zone. An empty name keeps time.Local.
func SetLocation(name string) error {
	if strings.TrimSpace(name) == "" {
		location.Store(time.Local)
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	location.Store(loc)
	return nil
}

func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}
	return time.Local
}

func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{Time: t}
}

func (ldt *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.ParseInLocation(layout, s, Location())
	if err != nil {
		return err
	}
	ldt.Time = t
	return nil
}

func (ldt LocalDateTime) MarshalJSON() ([]byte, error) {
	if ldt.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + ldt.String() + `"`), nil
}

func (ldt LocalDateTime) String() string {
	return ldt.In(Location()).Format(layout)
}

func (ldt LocalDateTime) Equal(other LocalDateTime) bool {
	return ldt.Time.Equal(other.Time)
}
