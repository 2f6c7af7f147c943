package dbwatch

import (
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/events"
)

func NewIncidentsWatch(eventQueue events.Publisher) *insertWatch[ctdf.Incident] {
	return &insertWatch[ctdf.Incident]{
		Collection: "incidents",
		EventType:  ctdf.EventTypeIncidentReported,
		EventQueue: eventQueue,
		identifier: func(incident *ctdf.Incident) string {
			return incident.PrimaryIdentifier
		},
	}
}
