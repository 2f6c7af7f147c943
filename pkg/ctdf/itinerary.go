package ctdf

type ItineraryType string

const (
	ItineraryTypeDirect   ItineraryType = "Direct"
	ItineraryTypeTransfer ItineraryType = "Transfer"
)

type Itinerary struct {
	Type ItineraryType `groups:"basic"`

	Origin      *Location `groups:"basic"`
	Destination *Location `groups:"basic"`

	Legs      []*ItineraryLeg      `groups:"basic"`
	Transfers []*ItineraryTransfer `groups:"basic"`

	TotalWalkingMeters float64 `groups:"basic"`
}

type ItineraryLeg struct {
	LineRef string `groups:"basic"`
	Line    *Line  `groups:"detailed" bson:"-"`

	BoardStop  *LineStop `groups:"basic"`
	AlightStop *LineStop `groups:"basic"`
}

// ItineraryTransfer is the walk between the alight stop of one leg and the board stop of the next
type ItineraryTransfer struct {
	FromLineRef string `groups:"basic"`
	ToLineRef   string `groups:"basic"`

	FromStop *LineStop `groups:"basic"`
	ToStop   *LineStop `groups:"basic"`

	WalkingDistanceMeters float64 `groups:"basic"`
}

func (i *Itinerary) LineRefs() []string {
	var refs []string
	for _, leg := range i.Legs {
		refs = append(refs, leg.LineRef)
	}

	return refs
}
