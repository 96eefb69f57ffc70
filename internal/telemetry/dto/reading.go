package dto

import (
	"time"

	"github.com/FJR5209/Dashboard-backend/internal/telemetry/domain"
)

// ReadingInput is the ingestion payload. UserID and UserName are accepted
// for compatibility with older firmware but device ownership lives on the
// user record, so they are not persisted.
type ReadingInput struct {
	DeviceID      string     `json:"deviceId"`
	Temperature   *float64   `json:"temperature"`
	Humidity      *float64   `json:"humidity"`
	UserID        string     `json:"userId"`
	UserName      string     `json:"userName"`
	TimeCollected *time.Time `json:"timeCollected"`
}

type DeviceOutput struct {
	DeviceID      string    `json:"deviceId"`
	Temperature   float64   `json:"temperature"`
	Humidity      float64   `json:"humidity"`
	TimeCollected time.Time `json:"timeCollected"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewDeviceOutput(d *domain.Device) DeviceOutput {
	return DeviceOutput{
		DeviceID:      d.DeviceID,
		Temperature:   d.Temperature,
		Humidity:      d.Humidity,
		TimeCollected: d.TimeCollected,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
