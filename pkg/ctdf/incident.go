package ctdf

import "time"

const IncidentIDFormat = "TL:INCIDENT:%s"

type IncidentStatus string

const (
	IncidentStatusOpen     IncidentStatus = "Open"
	IncidentStatusResolved IncidentStatus = "Resolved"
)

type IncidentType string

const (
	IncidentTypeDelay     IncidentType = "Delay"
	IncidentTypeBreakdown IncidentType = "Breakdown"
	IncidentTypeAccident  IncidentType = "Accident"
	IncidentTypeOvercrowd IncidentType = "Overcrowding"
	IncidentTypeOther     IncidentType = "Other"
)

type Incident struct {
	PrimaryIdentifier string `groups:"basic" bson:"primaryidentifier"`

	CreationDateTime     time.Time `groups:"basic"`
	ModificationDateTime time.Time `groups:"detailed"`

	LineRef    string `groups:"basic" validate:"required"`
	VehicleRef string `groups:"basic"`

	Type        IncidentType   `groups:"basic" validate:"required,oneof=Delay Breakdown Accident Overcrowding Other"`
	Description string         `groups:"basic" validate:"max=1000"`
	Location    *Location      `groups:"basic"`
	Status      IncidentStatus `groups:"basic"`

	ReportedBy string `groups:"internal"`
}
