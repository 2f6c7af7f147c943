package ctdf

type TransportType string

const (
	TransportTypeBus     TransportType = "Bus"
	TransportTypeMetro   TransportType = "Metro"
	TransportTypeUnknown TransportType = "UNKNOWN"
)

func ParseTransportType(value string) TransportType {
	switch value {
	case "Bus", "bus", "BUS":
		return TransportTypeBus
	case "Metro", "metro", "METRO":
		return TransportTypeMetro
	default:
		return TransportTypeUnknown
	}
}
