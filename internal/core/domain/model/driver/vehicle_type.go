package driver

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

type VehicleType string

const (
	VehicleBike       VehicleType = "bike"
	VehicleCar        VehicleType = "car"
	VehicleVan        VehicleType = "van"
	VehicleMiniTruck  VehicleType = "mini_truck"
	VehicleLargeTruck VehicleType = "large_truck"
)

func VehicleTypes() []VehicleType {
	return []VehicleType{VehicleBike, VehicleCar, VehicleVan, VehicleMiniTruck, VehicleLargeTruck}
}

func ParseVehicleType(s string) (VehicleType, error) {
	for _, v := range VehicleTypes() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%q is not a known vehicle type", s))
}

func (v VehicleType) String() string {
	return string(v)
}
