package routes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/liip/sheriff"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator"
	"github.com/transitline/transitline/pkg/dataaggregator/query"
	"github.com/transitline/transitline/pkg/database"
	"github.com/transitline/transitline/pkg/geo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type incidentRequest struct {
	LineRef     string
	VehicleRef  string
	Type        ctdf.IncidentType
	Description string

	Latitude  *float64
	Longitude *float64
}

type incidentStatusUpdate struct {
	Status ctdf.IncidentStatus `validate:"required,oneof=Open Resolved"`
}

func IncidentsRouter(router fiber.Router) {
	router.Get("/", listIncidents)
	router.Post("/", postIncident)
	router.Patch("/:identifier", patchIncident)
}

func newIncident(request *incidentRequest, now time.Time) (*ctdf.Incident, error) {
	incident := &ctdf.Incident{}
	if err := copier.Copy(incident, request); err != nil {
		return nil, err
	}

	incident.PrimaryIdentifier = fmt.Sprintf(ctdf.IncidentIDFormat, uuid.NewString())
	incident.CreationDateTime = now
	incident.ModificationDateTime = now
	incident.Status = ctdf.IncidentStatusOpen

	if request.Latitude != nil && request.Longitude != nil {
		point := geo.Point{Latitude: *request.Latitude, Longitude: *request.Longitude}
		if err := point.Validate(); err != nil {
			return nil, err
		}

		incident.Location = ctdf.NewLocation(point)
	}

	if err := validate.Struct(incident); err != nil {
		return nil, err
	}

	return incident, nil
}

func postIncident(c *fiber.Ctx) error {
	var request incidentRequest
	if err := c.BodyParser(&request); err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	incident, err := newIncident(&request, time.Now())
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	if _, err := dataaggregator.Lookup[*ctdf.Line](query.Line{PrimaryIdentifier: incident.LineRef}); err != nil {
		return sendError(c, fiber.StatusNotFound, err)
	}

	if userID, ok := c.Locals("account_userid").(string); ok {
		incident.ReportedBy = userID
	}

	incidentsCollection := database.GetCollection("incidents")
	if _, err := incidentsCollection.InsertOne(context.Background(), incident); err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(incident)
}

func listIncidents(c *fiber.Ctx) error {
	filter := bson.M{
		"status": ctdf.IncidentStatus(c.Query("status", string(ctdf.IncidentStatusOpen))),
	}
	if lineRef := c.Query("line"); lineRef != "" {
		filter["lineref"] = lineRef
	}

	incidentsCollection := database.GetCollection("incidents")
	opts := options.Find().SetSort(bson.D{{Key: "creationdatetime", Value: -1}}).SetLimit(100)
	cursor, err := incidentsCollection.Find(context.Background(), filter, opts)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	incidents := []*ctdf.Incident{}
	if err := cursor.All(context.Background(), &incidents); err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	incidentsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, incidents)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, errors.New("Sheriff could not reduce incidents"))
	}

	return c.JSON(incidentsReduced)
}

func patchIncident(c *fiber.Ctx) error {
	var update incidentStatusUpdate
	if err := c.BodyParser(&update); err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}
	if err := validate.Struct(update); err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	incidentsCollection := database.GetCollection("incidents")
	result, err := incidentsCollection.UpdateOne(context.Background(),
		bson.M{"primaryidentifier": c.Params("identifier")},
		bson.M{"$set": bson.M{
			"status":               update.Status,
			"modificationdatetime": time.Now(),
		}},
	)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	if result.MatchedCount == 0 {
		return sendError(c, fiber.StatusNotFound, errors.New("Could not find Incident matching Identifier"))
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
