package domain

import "strings"

type VehicleCategory string

const (
	VehicleMotorcycle  VehicleCategory = "motorcycle"
	VehicleCar         VehicleCategory = "car"
	VehicleSUVTruck    VehicleCategory = "suv_truck"
	VehicleHandicapped VehicleCategory = "handicapped"
)

func ParseVehicleCategory(s string) (VehicleCategory, bool) {
	switch VehicleCategory(strings.ToLower(strings.TrimSpace(s))) {
	case VehicleMotorcycle:
		return VehicleMotorcycle, true
	case VehicleCar:
		return VehicleCar, true
	case VehicleSUVTruck:
		return VehicleSUVTruck, true
	case VehicleHandicapped:
		return VehicleHandicapped, true
	}
	return "", false
}

// Vehicle is a value object carried on the parking session. The facility
// keeps no vehicle registry; everything it needs to bill a visit is
// captured at the entry barrier.
type Vehicle struct {
	Plate           string          `json:"plate"`
	Category        VehicleCategory `json:"category"`
	HasHandicapCard bool            `json:"has_handicap_card"`
	IsVIP           bool            `json:"is_vip"`
}

// NormalizePlate strips spaces and dashes and uppercases the rest so the
// same physical plate always maps to one ledger.
func NormalizePlate(plate string) string {
	plate = strings.ReplaceAll(plate, " ", "")
	plate = strings.ReplaceAll(plate, "-", "")
	return strings.ToUpper(plate)
}
