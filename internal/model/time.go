package model

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"gopkg.in/yaml.v3"
)

// TimeOfDay is a clock time expressed as whole seconds since midnight.
// Documents render it as HH:MM:SS, so one second is the finest resolution.
type TimeOfDay int

const EndOfDay TimeOfDay = 24 * 60 * 60

var (
	ErrTimeOutOfRange = errors.New("time of day must be within 00:00:00 and 24:00:00")
	ErrTimeOrder      = errors.New("begin time must not be after end time")
	ErrBadStep        = errors.New("step must be a non-negative whole-second duration")
)

func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute, second int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &hour, &minute, &second); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: want HH:MM:SS", s)
	}
	if hour < 0 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, fmt.Errorf("invalid time of day %q: want HH:MM:SS", s)
	}
	t := NewTimeOfDay(hour, minute, second)
	if !t.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrTimeOutOfRange, s)
	}
	return t, nil
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t <= EndOfDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)/60%60, int(t)%60)
}

func (t *TimeOfDay) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// RandomTime draws a time within [begin, end], inclusive on both ends.
// A zero step draws uniform whole seconds; a positive step draws a uniform
// grid point begin + k*step. Invalid bounds are reported, never clamped.
func RandomTime(rng *rand.Rand, begin, end TimeOfDay, step time.Duration) (TimeOfDay, error) {
	if !begin.Valid() {
		return 0, fmt.Errorf("%w: begin %d", ErrTimeOutOfRange, int(begin))
	}
	if !end.Valid() {
		return 0, fmt.Errorf("%w: end %d", ErrTimeOutOfRange, int(end))
	}
	if begin > end {
		return 0, fmt.Errorf("%w: begin %s, end %s", ErrTimeOrder, begin, end)
	}
	if step < 0 || step%time.Second != 0 {
		return 0, fmt.Errorf("%w: %s", ErrBadStep, step)
	}

	span := int64(end - begin)
	if step == 0 {
		return begin + TimeOfDay(rng.Int63n(span+1)), nil
	}
	stepSeconds := int64(step / time.Second)
	k := rng.Int63n(span/stepSeconds + 1)
	return begin + TimeOfDay(k*stepSeconds), nil
}
