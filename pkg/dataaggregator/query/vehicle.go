package query

import "go.mongodb.org/mongo-driver/bson"

type Vehicle struct {
	PrimaryIdentifier string
}

func (v *Vehicle) ToBson() bson.M {
	return bson.M{"primaryidentifier": v.PrimaryIdentifier}
}

type VehiclesForLine struct {
	LineRef string
}

func (v *VehiclesForLine) ToBson() bson.M {
	return bson.M{"lineref": v.LineRef}
}
