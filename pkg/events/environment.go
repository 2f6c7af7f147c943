package events

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/transitline/transitline/pkg/ctdf"
)

// AlertEnvironment is what a subscription expression is evaluated against, eg.
//
//	"TL:LINE:Metro:2" in Lines && AlertType != "Information"
type AlertEnvironment struct {
	EventType string

	AlertType string
	Title     string
	Text      string

	MatchedIdentifiers []string
	Lines              []string
}

func CompileExpression(expression string) (*vm.Program, error) {
	return expr.Compile(expression, expr.Env(AlertEnvironment{}), expr.AsBool())
}

func NewAlertEnvironment(event *ctdf.Event) (*AlertEnvironment, error) {
	bodyBytes, err := json.Marshal(event.Body)
	if err != nil {
		return nil, err
	}

	environment := &AlertEnvironment{
		EventType: string(event.Type),
	}

	switch event.Type {
	case ctdf.EventTypeServiceAlertCreated:
		var serviceAlert ctdf.ServiceAlert
		if err := json.Unmarshal(bodyBytes, &serviceAlert); err != nil {
			return nil, err
		}

		environment.AlertType = string(serviceAlert.AlertType)
		environment.Title = serviceAlert.Title
		environment.Text = serviceAlert.Text
		environment.MatchedIdentifiers = serviceAlert.MatchedIdentifiers

		for _, identifier := range serviceAlert.MatchedIdentifiers {
			if strings.HasPrefix(identifier, "TL:LINE:") {
				environment.Lines = append(environment.Lines, identifier)
			}
		}
	case ctdf.EventTypeIncidentReported:
		var incident ctdf.Incident
		if err := json.Unmarshal(bodyBytes, &incident); err != nil {
			return nil, err
		}

		environment.AlertType = string(incident.Type)
		environment.Title = fmt.Sprintf("%s reported", incident.Type)
		environment.Text = incident.Description
		environment.MatchedIdentifiers = []string{incident.LineRef}
		environment.Lines = []string{incident.LineRef}

		if incident.VehicleRef != "" {
			environment.MatchedIdentifiers = append(environment.MatchedIdentifiers, incident.VehicleRef)
		}
	default:
		return nil, fmt.Errorf("unsupported event type %s", event.Type)
	}

	return environment, nil
}
