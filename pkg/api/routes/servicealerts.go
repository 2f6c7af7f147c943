package routes

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator"
	"github.com/transitline/transitline/pkg/dataaggregator/query"
	"github.com/transitline/transitline/pkg/database"
	"github.com/transitline/transitline/pkg/util"

	iso8601 "github.com/senseyeio/duration"
)

type serviceAlertRequest struct {
	AlertType ctdf.ServiceAlertType `validate:"required,oneof=Information Warning StopClosed ServiceSuspended SevereDelays Delays Planned"`

	Title string `validate:"required,max=200"`
	Text  string `validate:"max=2000"`

	MatchedIdentifiers []string `validate:"required,min=1"`

	// ValidFrom is RFC3339, defaults to now
	ValidFrom string
	// Duration is an ISO-8601 duration eg. PT2H
	Duration string `validate:"required"`
}

func ServiceAlertRouter(router fiber.Router) {
	router.Post("/", postServiceAlert)
	router.Get("/matching/:identifier", getMatchingIdentifierServiceAlerts)
}

func newServiceAlert(request *serviceAlertRequest, now time.Time) (*ctdf.ServiceAlert, error) {
	if err := validate.Struct(request); err != nil {
		return nil, err
	}

	validFrom := now
	if request.ValidFrom != "" {
		var err error
		validFrom, err = time.Parse(time.RFC3339, request.ValidFrom)
		if err != nil {
			return nil, fmt.Errorf("ValidFrom should be an RFC3339 datetime: %w", err)
		}
	}

	validDuration, err := iso8601.ParseISO8601(request.Duration)
	if err != nil {
		return nil, fmt.Errorf("Duration should be an ISO8601 duration: %w", err)
	}

	validUntil := validDuration.Shift(validFrom)
	if !validUntil.After(validFrom) {
		return nil, fmt.Errorf("Duration %s is empty", request.Duration)
	}

	return &ctdf.ServiceAlert{
		PrimaryIdentifier:    fmt.Sprintf(ctdf.ServiceAlertIDFormat, uuid.NewString()),
		CreationDateTime:     now,
		ModificationDateTime: now,
		DataSource: &ctdf.DataSource{
			Provider: "API",
		},
		AlertType:          request.AlertType,
		Title:              request.Title,
		Text:               request.Text,
		MatchedIdentifiers: util.RemoveDuplicateStrings(request.MatchedIdentifiers, nil),
		ValidFrom:          validFrom,
		ValidUntil:         validUntil,
	}, nil
}

func postServiceAlert(c *fiber.Ctx) error {
	var request serviceAlertRequest
	if err := c.BodyParser(&request); err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	serviceAlert, err := newServiceAlert(&request, time.Now())
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	serviceAlertsCollection := database.GetCollection("service_alerts")
	if _, err := serviceAlertsCollection.InsertOne(context.Background(), serviceAlert); err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(serviceAlert)
}

func getMatchingIdentifierServiceAlerts(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	serviceAlerts, err := dataaggregator.Lookup[[]*ctdf.ServiceAlert](query.ServiceAlertsForMatchingIdentifier{
		MatchingIdentifier: identifier,
	})
	if err != nil {
		return sendError(c, fiber.StatusNotFound, err)
	}

	if serviceAlerts == nil {
		serviceAlerts = []*ctdf.ServiceAlert{}
	}

	return c.JSON(serviceAlerts)
}
