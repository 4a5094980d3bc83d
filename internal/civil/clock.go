package civil

import (
	"fmt"
	"time"
)

// DefaultZone is the reference zone for every wall-clock rule.
const DefaultZone = "America/Sao_Paulo"

// Clock supplies the current instant in the reference zone.
type Clock interface {
	Now() time.Time
}

// ZoneClock reads the system clock and converts it to a fixed zone.
type ZoneClock struct {
	loc *time.Location
}

// NewZoneClock returns a clock bound to loc.
func NewZoneClock(loc *time.Location) ZoneClock {
	if loc == nil {
		loc = time.UTC
	}
	return ZoneClock{loc: loc}
}

// LoadZoneClock resolves the named zone and returns a clock bound to it.
func LoadZoneClock(name string) (ZoneClock, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return ZoneClock{}, fmt.Errorf("civil: load zone %s: %w", name, err)
	}
	return NewZoneClock(loc), nil
}

// Now returns the current time in the clock's zone.
func (c ZoneClock) Now() time.Time { return time.Now().In(c.loc) }

// Location returns the zone of the clock.
func (c ZoneClock) Location() *time.Location { return c.loc }

// FixedClock always returns the same instant. Used by tests.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.At }
