package ctdf

import (
	"fmt"
	"time"
)

type Event struct {
	Type      EventType
	Timestamp time.Time
	Body      interface{}
}

type EventType string

const (
	EventTypeServiceAlertCreated EventType = "ServiceAlertCreated"
	EventTypeIncidentReported    EventType = "IncidentReported"
)

// GetNotificationData expects Body to have been through a JSON round trip
func (e *Event) GetNotificationData() EventNotificationData {
	eventNotificationData := EventNotificationData{}

	eventBody, ok := e.Body.(map[string]interface{})
	if !ok {
		return eventNotificationData
	}

	switch e.Type {
	case EventTypeServiceAlertCreated:
		eventNotificationData.Title, _ = eventBody["AlertType"].(string)
		eventNotificationData.Message, _ = eventBody["Text"].(string)

		if title, _ := eventBody["Title"].(string); title != "" {
			eventNotificationData.Title = title
		}
	case EventTypeIncidentReported:
		incidentType, _ := eventBody["Type"].(string)
		lineRef, _ := eventBody["LineRef"].(string)

		eventNotificationData.Title = fmt.Sprintf("%s reported", incidentType)
		eventNotificationData.Message, _ = eventBody["Description"].(string)
		if eventNotificationData.Message == "" {
			eventNotificationData.Message = fmt.Sprintf("A %s has been reported on %s", incidentType, lineRef)
		}
	}

	return eventNotificationData
}

type EventNotificationData struct {
	Title   string
	Message string
}
