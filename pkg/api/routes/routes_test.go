package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator"
	"github.com/transitline/transitline/pkg/dataaggregator/source/routeplanner"
	"github.com/transitline/transitline/pkg/geo"
	"github.com/transitline/transitline/pkg/planner"
)

type staticLineSource struct {
	lines []*ctdf.Line
}

func (s staticLineSource) ListLines(ctx context.Context) ([]*ctdf.Line, error) {
	return s.lines, nil
}

func testLine() *ctdf.Line {
	return &ctdf.Line{
		PrimaryIdentifier: ctdf.LineIdentifier(ctdf.TransportTypeBus, "1"),
		PrimaryName:       "1",
		TransportType:     ctdf.TransportTypeBus,
		Status:            ctdf.LineStatusActive,
		Stops: []*ctdf.LineStop{
			{PrimaryName: "S1", Sequence: 1, Location: ctdf.NewLocation(geo.Point{Latitude: 0, Longitude: 0})},
			{PrimaryName: "S2", Sequence: 2, Location: ctdf.NewLocation(geo.Point{Latitude: 0, Longitude: 1})},
		},
	}
}

func newPlannerApp(lines ...*ctdf.Line) *fiber.App {
	dataaggregator.GlobalAggregator = dataaggregator.Aggregator{}
	dataaggregator.GlobalAggregator.RegisterSource(routeplanner.Source{
		Planner: planner.NewPlanner(staticLineSource{lines: lines}, planner.DefaultConfig()),
	})

	app := fiber.New()
	PlannerRouter(app.Group("/planner"))

	return app
}

func doRequest(t *testing.T, app *fiber.App, request *http.Request) (int, map[string]interface{}) {
	response, err := app.Test(request, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))

	return response.StatusCode, decoded
}

func TestPlannerRouteDirect(t *testing.T) {
	app := newPlannerApp(testLine())

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet,
		"/planner?origin_lat=0&origin_lng=-0.5&destination_lat=0&destination_lng=2", nil))

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Direct", body["Type"])

	legs := body["Legs"].([]interface{})
	require.Len(t, legs, 1)

	leg := legs[0].(map[string]interface{})
	assert.Equal(t, "TL:LINE:Bus:1", leg["LineRef"])
	assert.Nil(t, leg["Line"])
	assert.Equal(t, "S1", leg["BoardStop"].(map[string]interface{})["PrimaryName"])
	assert.Equal(t, "S2", leg["AlightStop"].(map[string]interface{})["PrimaryName"])
}

func TestPlannerRouteErrors(t *testing.T) {
	tests := []struct {
		name           string
		lines          []*ctdf.Line
		query          string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "missing parameter",
			lines:          []*ctdf.Line{testLine()},
			query:          "origin_lat=0&origin_lng=0&destination_lat=1",
			expectedStatus: fiber.StatusBadRequest,
			expectedCode:   "InvalidCoordinates",
		},
		{
			name:           "unparseable number",
			lines:          []*ctdf.Line{testLine()},
			query:          "origin_lat=north&origin_lng=0&destination_lat=1&destination_lng=1",
			expectedStatus: fiber.StatusBadRequest,
			expectedCode:   "InvalidCoordinates",
		},
		{
			name:           "latitude out of range",
			lines:          []*ctdf.Line{testLine()},
			query:          "origin_lat=95&origin_lng=0&destination_lat=1&destination_lng=1",
			expectedStatus: fiber.StatusBadRequest,
			expectedCode:   "InvalidCoordinates",
		},
		{
			name:           "no lines",
			query:          "origin_lat=0&origin_lng=0&destination_lat=1&destination_lng=1",
			expectedStatus: fiber.StatusNotFound,
			expectedCode:   "NoCandidateFound",
		},
		{
			name: "unconnected lines",
			lines: []*ctdf.Line{
				testLine(),
				{
					PrimaryIdentifier: ctdf.LineIdentifier(ctdf.TransportTypeMetro, "2"),
					PrimaryName:       "2",
					TransportType:     ctdf.TransportTypeMetro,
					Status:            ctdf.LineStatusActive,
					Stops: []*ctdf.LineStop{
						{PrimaryName: "M1", Sequence: 1, Location: ctdf.NewLocation(geo.Point{Latitude: 10, Longitude: 10})},
						{PrimaryName: "M2", Sequence: 2, Location: ctdf.NewLocation(geo.Point{Latitude: 10, Longitude: 11})},
					},
				},
			},
			query:          "origin_lat=0&origin_lng=-0.5&destination_lat=10&destination_lng=11.5",
			expectedStatus: fiber.StatusNotFound,
			expectedCode:   "NoRouteFound",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			app := newPlannerApp(test.lines...)

			status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/planner?"+test.query, nil))

			assert.Equal(t, test.expectedStatus, status)
			assert.Equal(t, test.expectedCode, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestStopsRouteRejectsBadBounds(t *testing.T) {
	app := fiber.New()
	StopsRouter(app.Group("/stops"))

	for _, bounds := range []string{"", "1,2,3", "a,b,c,d", "-99.2,19.3,-99.0,91"} {
		status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/stops?bounds="+bounds, nil))

		assert.Equal(t, fiber.StatusBadRequest, status, bounds)
		assert.NotEmpty(t, body["error"], bounds)
	}
}

func TestGetBoundsQuery(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		stopsNearby, err := getBoundsQuery(c)
		require.NoError(t, err)

		assert.Equal(t, geo.Point{Latitude: 19.3, Longitude: -99.2}, stopsNearby.BottomLeft)
		assert.Equal(t, geo.Point{Latitude: 19.5, Longitude: -99.0}, stopsNearby.TopRight)

		return c.JSON(fiber.Map{"ok": true})
	})

	status, _ := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/?bounds=-99.2,19.3,-99.0,19.5", nil))
	assert.Equal(t, fiber.StatusOK, status)
}

func TestSubscriptionRouteRejectsBadExpression(t *testing.T) {
	app := fiber.New()
	AccountRouter(app.Group("/account", func(c *fiber.Ctx) error {
		c.Locals("account_userid", "user-1")
		return c.Next()
	}))

	request := httptest.NewRequest(http.MethodPost, "/account/subscriptions",
		strings.NewReader(`{"Name":"Commute","Expression":"Lines +"}`))
	request.Header.Set("Content-Type", "application/json")

	status, body := doRequest(t, app, request)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "invalid expression")
}

func TestNewSubscription(t *testing.T) {
	subscription, err := newSubscription("user-1", &subscriptionRequest{
		Name:       "Metro 2",
		Expression: `"TL:LINE:Metro:2" in Lines`,
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", subscription.UserID)
	assert.True(t, strings.HasPrefix(subscription.PrimaryIdentifier, "TL:SUBSCRIPTION:"))

	_, err = newSubscription("user-1", &subscriptionRequest{Expression: "true"})
	assert.Error(t, err)
}

func TestNewServiceAlert(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	serviceAlert, err := newServiceAlert(&serviceAlertRequest{
		AlertType:          ctdf.ServiceAlertTypeDelays,
		Title:              "Delays on Metro 2",
		MatchedIdentifiers: []string{"TL:LINE:Metro:2"},
		Duration:           "PT2H",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, now, serviceAlert.ValidFrom)
	assert.Equal(t, now.Add(2*time.Hour), serviceAlert.ValidUntil)
	assert.True(t, strings.HasPrefix(serviceAlert.PrimaryIdentifier, "TL:ALERT:"))

	serviceAlert, err = newServiceAlert(&serviceAlertRequest{
		AlertType:          ctdf.ServiceAlertTypePlanned,
		Title:              "Weekend closure",
		MatchedIdentifiers: []string{"TL:LINE:Metro:2", "TL:LINE:Metro:2"},
		ValidFrom:          "2026-03-07T00:00:00Z",
		Duration:           "P2D",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), serviceAlert.ValidUntil)
	assert.Equal(t, []string{"TL:LINE:Metro:2"}, serviceAlert.MatchedIdentifiers)

	invalid := []serviceAlertRequest{
		{AlertType: "Rumour", Title: "x", MatchedIdentifiers: []string{"a"}, Duration: "PT1H"},
		{AlertType: ctdf.ServiceAlertTypeDelays, Title: "x", Duration: "PT1H"},
		{AlertType: ctdf.ServiceAlertTypeDelays, Title: "x", MatchedIdentifiers: []string{"a"}, Duration: "two hours"},
		{AlertType: ctdf.ServiceAlertTypeDelays, Title: "x", MatchedIdentifiers: []string{"a"}, Duration: "PT1H", ValidFrom: "yesterday"},
	}
	for _, request := range invalid {
		_, err := newServiceAlert(&request, now)
		assert.Error(t, err, request)
	}
}

func TestNewIncident(t *testing.T) {
	now := time.Now()
	lat, lng := 19.43, -99.13

	incident, err := newIncident(&incidentRequest{
		LineRef:     "TL:LINE:Bus:4",
		Type:        ctdf.IncidentTypeBreakdown,
		Description: "Engine failure",
		Latitude:    &lat,
		Longitude:   &lng,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, ctdf.IncidentStatusOpen, incident.Status)
	assert.Equal(t, "TL:LINE:Bus:4", incident.LineRef)
	assert.Equal(t, []float64{lng, lat}, incident.Location.Coordinates)

	_, err = newIncident(&incidentRequest{Type: ctdf.IncidentTypeDelay}, now)
	assert.Error(t, err)

	_, err = newIncident(&incidentRequest{LineRef: "TL:LINE:Bus:4", Type: "Alien"}, now)
	assert.Error(t, err)
}

func TestApplyVehicleUpdate(t *testing.T) {
	vehicle := &ctdf.Vehicle{
		PrimaryIdentifier: "TL:VEHICLE:1",
		Status:            ctdf.VehicleStatusInService,
		Bearing:           90,
	}
	lat, lng := 19.43, -99.13

	err := applyVehicleUpdate(vehicle, &vehicleUpdate{
		Latitude:  &lat,
		Longitude: &lng,
		Status:    ctdf.VehicleStatusMaintenance,
	})
	require.NoError(t, err)

	assert.Equal(t, ctdf.VehicleStatusMaintenance, vehicle.Status)
	assert.Equal(t, float64(90), vehicle.Bearing)
	assert.Equal(t, []float64{lng, lat}, vehicle.Location.Coordinates)

	assert.Error(t, applyVehicleUpdate(vehicle, &vehicleUpdate{Latitude: &lat}))
	assert.Error(t, applyVehicleUpdate(vehicle, &vehicleUpdate{Status: "Flying"}))
	assert.Error(t, applyVehicleUpdate(vehicle, &vehicleUpdate{Bearing: 400}))
}
