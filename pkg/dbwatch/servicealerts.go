package dbwatch

import (
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/events"
)

func NewServiceAlertsWatch(eventQueue events.Publisher) *insertWatch[ctdf.ServiceAlert] {
	return &insertWatch[ctdf.ServiceAlert]{
		Collection: "service_alerts",
		EventType:  ctdf.EventTypeServiceAlertCreated,
		EventQueue: eventQueue,
		identifier: func(serviceAlert *ctdf.ServiceAlert) string {
			return serviceAlert.PrimaryIdentifier
		},
	}
}
