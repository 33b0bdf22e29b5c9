package models

// Vehicle is the truck/van attached to a driver (practically 1:1).
type Vehicle struct {
	ID              string `json:"id"`
	DriverID        string `json:"driverId"`
	LicensePlate    string `json:"licensePlate"`
	Model           string `json:"model"`
	Capacity        string `json:"capacity"`
	InsuranceExpiry string `json:"insuranceExpiry"`
}

type NewVehicle struct {
	DriverID        string `json:"driverId"`
	LicensePlate    string `json:"licensePlate"`
	Model           string `json:"model"`
	Capacity        string `json:"capacity"`
	InsuranceExpiry string `json:"insuranceExpiry"`
}

// VehicleUpdate is a partial update; nil fields are left unchanged.
type VehicleUpdate struct {
	DriverID        *string `json:"driverId"`
	LicensePlate    *string `json:"licensePlate"`
	Model           *string `json:"model"`
	Capacity        *string `json:"capacity"`
	InsuranceExpiry *string `json:"insuranceExpiry"`
}
