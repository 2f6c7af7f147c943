package ctdf

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slices"
)

const LineIDFormat = "TL:LINE:%s:%s"

var ErrLineStopOrder = errors.New("line stop sequence must be strictly increasing")

type LineStatus string

const (
	LineStatusActive   LineStatus = "active"
	LineStatusInactive LineStatus = "inactive"
)

type Line struct {
	PrimaryIdentifier string `groups:"basic" bson:"primaryidentifier"`

	CreationDateTime     time.Time `groups:"detailed"`
	ModificationDateTime time.Time `groups:"detailed"`

	DataSource *DataSource `groups:"internal"`

	PrimaryName   string        `groups:"basic"`
	TransportType TransportType `groups:"basic"`
	Fare          float64       `groups:"basic"`
	Status        LineStatus    `groups:"basic"`

	Stops []*LineStop `groups:"detailed"`
}

type LineStop struct {
	PrimaryName string    `groups:"basic"`
	Location    *Location `groups:"basic"`
	Sequence    int       `groups:"basic"`
}

func LineIdentifier(transportType TransportType, name string) string {
	return fmt.Sprintf(LineIDFormat, transportType, name)
}

func (line *Line) IsActive() bool {
	return line.Status == LineStatusActive
}

func (line *Line) SortStops() {
	slices.SortStableFunc(line.Stops, func(a, b *LineStop) int {
		return a.Sequence - b.Sequence
	})
}

// Validate checks that the line is identifiable and its stops are in strictly increasing sequence
func (line *Line) Validate() error {
	if line.PrimaryName == "" {
		return errors.New("line has no name")
	}
	if line.TransportType != TransportTypeBus && line.TransportType != TransportTypeMetro {
		return fmt.Errorf("line %s has unsupported transport type %s", line.PrimaryName, line.TransportType)
	}

	for i, stop := range line.Stops {
		if !stop.Location.HasPoint() {
			return fmt.Errorf("line %s stop %s has no location", line.PrimaryName, stop.PrimaryName)
		}
		if err := stop.Location.Point().Validate(); err != nil {
			return fmt.Errorf("line %s stop %s: %w", line.PrimaryName, stop.PrimaryName, err)
		}

		if i > 0 && stop.Sequence <= line.Stops[i-1].Sequence {
			return fmt.Errorf("%w: line %s stop %s", ErrLineStopOrder, line.PrimaryName, stop.PrimaryName)
		}
	}

	return nil
}

// StopOnLine is a stop flattened together with its owning line
type StopOnLine struct {
	LineRef       string        `groups:"basic"`
	LineName      string        `groups:"basic"`
	TransportType TransportType `groups:"basic"`

	Stop *LineStop `groups:"basic"`
}
