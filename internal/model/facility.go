package model

import "fmt"

// ActivityType is one of the closed set of capability tags a facility can
// carry and an agent can perform.
type ActivityType string

const (
	ActivityHome     ActivityType = "home"
	ActivityWork     ActivityType = "work"
	ActivityShopping ActivityType = "shopping"
)

func ParseActivityType(s string) (ActivityType, error) {
	activity := ActivityType(s)
	if !activity.Valid() {
		return "", fmt.Errorf("unknown activity type %q", s)
	}
	return activity, nil
}

func (a ActivityType) Valid() bool {
	switch a {
	case ActivityHome, ActivityWork, ActivityShopping:
		return true
	}
	return false
}

// Facility is a point location agents can visit. The activity set is fixed
// at creation and never mutated.
type Facility struct {
	ID         int
	X          float64
	Y          float64
	Activities []ActivityType
}

func (f Facility) Has(activity ActivityType) bool {
	for _, a := range f.Activities {
		if a == activity {
			return true
		}
	}
	return false
}
