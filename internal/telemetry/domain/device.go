package domain

import "time"

// Device holds the latest sample reported for a sensor. Every ingestion
// overwrites the reading fields; there is no per-device history.
type Device struct {
	DeviceID      string
	Temperature   float64
	Humidity      float64
	TimeCollected time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
