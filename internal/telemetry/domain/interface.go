package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_device_repository.go -package=mocks github.com/FJR5209/Dashboard-backend/internal/telemetry/domain DeviceRepository

type DeviceRepository interface {
	// Upsert writes the device record, reporting whether a new row was
	// created rather than an existing one overwritten.
	Upsert(ctx context.Context, device *Device) (created bool, err error)
	GetByDeviceID(ctx context.Context, deviceID string) (*Device, error)
	List(ctx context.Context) ([]Device, error)
	DeleteByDeviceID(ctx context.Context, deviceID string) (int64, error)
	ExistingIDs(ctx context.Context, deviceIDs []string) ([]string, error)
}
