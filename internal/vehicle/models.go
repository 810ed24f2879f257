// Package vehicle manages driver vehicle registrations.
package vehicle

import (
	"errors"
	"time"
)

// ErrVehicleNotFound is returned when a vehicle does not exist.
var ErrVehicleNotFound = errors.New("vehicle not found")

// Vehicle represents a driver's registered vehicle. BatteryType records the
// battery family the vehicle accepts and drives swap matching.
type Vehicle struct {
	ID                  int64
	UserID              int64
	VIN                 string
	Model               string
	BatteryType         string
	RegisterInformation string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
