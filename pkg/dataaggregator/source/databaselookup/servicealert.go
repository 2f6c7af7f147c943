package databaselookup

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator/query"
	"github.com/transitline/transitline/pkg/database"
)

func (s Source) ServiceAlertsForMatchingIdentifierQuery(q query.ServiceAlertsForMatchingIdentifier) ([]*ctdf.ServiceAlert, error) {
	collection := database.GetCollection("service_alerts")
	serviceAlerts := []*ctdf.ServiceAlert{}

	cursor, err := collection.Find(context.Background(), q.ToBson())
	if err != nil {
		return nil, err
	}

	if err := cursor.All(context.Background(), &serviceAlerts); err != nil {
		log.Error().Err(err).Msg("Failed to decode Service Alerts")
	}

	return serviceAlerts, nil
}
