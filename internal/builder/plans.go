package builder

import (
	"encoding/xml"
	"strconv"

	"matsimgen/internal/model"
)

type planActivity struct {
	Type     string `xml:"type,attr"`
	X        string `xml:"x,attr"`
	Y        string `xml:"y,attr"`
	Facility string `xml:"facility,attr"`
	EndTime  string `xml:"end_time,attr,omitempty"`
}

type plan struct {
	activities []planActivity
}

// MarshalXML interleaves a car leg between consecutive activities, which
// plain struct tags cannot express.
func (p plan) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "selected"}, Value: "yes"})
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	actName := xml.StartElement{Name: xml.Name{Local: "act"}}
	legName := xml.StartElement{Name: xml.Name{Local: "leg"}}
	leg := struct {
		Mode string `xml:"mode,attr"`
	}{Mode: "car"}
	for i, act := range p.activities {
		if i > 0 {
			if err := enc.EncodeElement(leg, legName); err != nil {
				return err
			}
		}
		if err := enc.EncodeElement(act, actName); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

type person struct {
	ID   string `xml:"id,attr"`
	Plan plan   `xml:"plan"`
}

type plansDoc struct {
	XMLName xml.Name `xml:"plans"`
	Persons []person `xml:"person"`
}

// Plans buffers one daily activity chain per agent.
type Plans struct {
	persons []person
}

func NewPlans() *Plans {
	return &Plans{}
}

// AddPerson appends a home → work → shopping → home chain. Departure times
// attach to the activity an agent leaves; the final home activity has none.
func (p *Plans) AddPerson(home, workplace, shop model.Facility, homeEnd, workEnd, shopEnd model.TimeOfDay) {
	p.persons = append(p.persons, person{
		ID: strconv.Itoa(len(p.persons) + 1),
		Plan: plan{activities: []planActivity{
			activity(model.ActivityHome, home, homeEnd.String()),
			activity(model.ActivityWork, workplace, workEnd.String()),
			activity(model.ActivityShopping, shop, shopEnd.String()),
			activity(model.ActivityHome, home, ""),
		}},
	})
}

func activity(kind model.ActivityType, fac model.Facility, endTime string) planActivity {
	return planActivity{
		Type:     string(kind),
		X:        formatFloat(fac.X),
		Y:        formatFloat(fac.Y),
		Facility: strconv.Itoa(fac.ID),
		EndTime:  endTime,
	}
}

func (p *Plans) Count() int { return len(p.persons) }

func (p *Plans) Write(path string) error {
	return writeDocument(path, plansDoctype, plansDoc{Persons: p.persons})
}
