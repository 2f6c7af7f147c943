package query

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type ServiceAlertsForMatchingIdentifier struct {
	MatchingIdentifier string
}

func (s *ServiceAlertsForMatchingIdentifier) ToBson() bson.M {
	now := time.Now()

	return bson.M{
		"matchedidentifiers": s.MatchingIdentifier,
		"validfrom":          bson.M{"$lte": now},
		"validuntil":         bson.M{"$gte": now},
	}
}
