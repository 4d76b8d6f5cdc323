package domain

import "fmt"

// VehicleType is the closed set of vehicle categories. The zero value is
// invalid — obtain instances from the package-level variables or
// ParseVehicleType, so no unknown category can exist at runtime.
type VehicleType struct {
	wire string
}

// The three known categories. The wire value (lowercase name) is what goes
// into the database column and over the JSON API.
var (
	TypePassenger = VehicleType{wire: "passenger"}
	TypeBus       = VehicleType{wire: "bus"}
	TypeTruck     = VehicleType{wire: "truck"}
)

var displayNames = map[VehicleType]string{
	TypePassenger: "Passenger Car",
	TypeBus:       "Bus",
	TypeTruck:     "Truck",
}

// ParseVehicleType maps a wire value to its VehicleType.
// The match is case-sensitive: exactly "passenger", "bus", or "truck".
// Anything else returns ErrUnknownType naming the rejected value.
func ParseVehicleType(s string) (VehicleType, error) {
	switch s {
	case TypePassenger.wire:
		return TypePassenger, nil
	case TypeBus.wire:
		return TypeBus, nil
	case TypeTruck.wire:
		return TypeTruck, nil
	default:
		return VehicleType{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// AllVehicleTypes returns every known type in declaration order.
func AllVehicleTypes() []VehicleType {
	return []VehicleType{TypePassenger, TypeBus, TypeTruck}
}

// WireValue returns the canonical string stored in the database and used by
// the JSON API, e.g. "passenger".
func (t VehicleType) WireValue() string {
	return t.wire
}

// DisplayName returns the human-readable label, e.g. "Passenger Car".
func (t VehicleType) DisplayName() string {
	return displayNames[t]
}

func (t VehicleType) String() string {
	return t.wire
}
