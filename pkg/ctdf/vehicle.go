package ctdf

import (
	"context"
	"time"

	"github.com/transitline/transitline/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
)

const VehicleIDFormat = "TL:VEHICLE:%s"

type VehicleStatus string

const (
	VehicleStatusInService    VehicleStatus = "InService"
	VehicleStatusOutOfService VehicleStatus = "OutOfService"
	VehicleStatusMaintenance  VehicleStatus = "Maintenance"
)

type Vehicle struct {
	PrimaryIdentifier string `groups:"basic" bson:"primaryidentifier"`

	ModificationDateTime time.Time `groups:"detailed"`

	DataSource *DataSource `groups:"internal"`

	LineRef string `groups:"basic"`
	Line    *Line  `groups:"detailed" bson:"-"`

	TransportType TransportType `groups:"basic"`
	Registration  string        `groups:"basic"`

	Location *Location     `groups:"basic"`
	Bearing  float64       `groups:"basic"`
	Status   VehicleStatus `groups:"basic"`
}

func (v *Vehicle) GetReferences() {
	v.GetLine()
}

func (v *Vehicle) GetLine() {
	if v.LineRef == "" {
		return
	}

	linesCollection := database.GetCollection("lines")
	linesCollection.FindOne(context.Background(), bson.M{"primaryidentifier": v.LineRef}).Decode(&v.Line)
}
