package builder

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"

	"matsimgen/internal/model"
)

var ErrNoActivities = errors.New("facility requires at least one activity type")

type facilityActivity struct {
	Type string `xml:"type,attr"`
}

type facilityRecord struct {
	ID         string             `xml:"id,attr"`
	X          string             `xml:"x,attr"`
	Y          string             `xml:"y,attr"`
	Activities []facilityActivity `xml:"activity"`
}

type facilitiesDoc struct {
	XMLName    xml.Name         `xml:"facilities"`
	Facilities []facilityRecord `xml:"facility"`
}

// Facilities collects facilities with sequential identities from 1.
type Facilities struct {
	all    []model.Facility
	nextID int
}

func NewFacilities() *Facilities {
	return &Facilities{nextID: 1}
}

// Add registers a facility. The activity set must be non-empty and every
// tag must belong to the closed activity-type set.
func (f *Facilities) Add(x, y float64, activities []model.ActivityType) (model.Facility, error) {
	if len(activities) == 0 {
		return model.Facility{}, ErrNoActivities
	}
	for _, a := range activities {
		if !a.Valid() {
			return model.Facility{}, fmt.Errorf("invalid activity type %q", string(a))
		}
	}

	fac := model.Facility{
		ID:         f.nextID,
		X:          x,
		Y:          y,
		Activities: append([]model.ActivityType(nil), activities...),
	}
	f.nextID++
	f.all = append(f.all, fac)
	return fac, nil
}

// All returns the registered facilities in creation order.
func (f *Facilities) All() []model.Facility {
	return f.all
}

func (f *Facilities) Count() int { return len(f.all) }

func (f *Facilities) Write(path string) error {
	doc := facilitiesDoc{Facilities: make([]facilityRecord, 0, len(f.all))}
	for _, fac := range f.all {
		record := facilityRecord{
			ID: strconv.Itoa(fac.ID),
			X:  formatFloat(fac.X),
			Y:  formatFloat(fac.Y),
		}
		for _, a := range fac.Activities {
			record.Activities = append(record.Activities, facilityActivity{Type: string(a)})
		}
		doc.Facilities = append(doc.Facilities, record)
	}
	return writeDocument(path, facilitiesDoctype, doc)
}
