package ctdf

import "time"

const ServiceAlertIDFormat = "TL:ALERT:%s"

type ServiceAlert struct {
	PrimaryIdentifier string `groups:"basic" bson:"primaryidentifier"`

	CreationDateTime     time.Time `groups:"detailed"`
	ModificationDateTime time.Time `groups:"detailed"`

	DataSource *DataSource `groups:"internal"`

	AlertType ServiceAlertType `groups:"basic"`

	Title string `groups:"basic"`
	Text  string `groups:"basic"`

	MatchedIdentifiers []string `groups:"internal"`

	ValidFrom  time.Time `groups:"basic"`
	ValidUntil time.Time `groups:"basic"`
}

type ServiceAlertType string

const (
	ServiceAlertTypeInformation      ServiceAlertType = "Information"
	ServiceAlertTypeWarning          ServiceAlertType = "Warning"
	ServiceAlertTypeStopClosed       ServiceAlertType = "StopClosed"
	ServiceAlertTypeServiceSuspended ServiceAlertType = "ServiceSuspended"
	ServiceAlertTypeSevereDelays     ServiceAlertType = "SevereDelays"
	ServiceAlertTypeDelays           ServiceAlertType = "Delays"
	ServiceAlertTypePlanned          ServiceAlertType = "Planned"
)
