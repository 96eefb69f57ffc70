package service

import (
	"context"
	"time"

	apperrors "github.com/FJR5209/Dashboard-backend/internal/errors"
	"github.com/FJR5209/Dashboard-backend/internal/telemetry/domain"
	"github.com/FJR5209/Dashboard-backend/internal/telemetry/dto"
)

type DeviceService struct {
	repo domain.DeviceRepository
}

func NewDeviceService(repo domain.DeviceRepository) *DeviceService {
	return &DeviceService{repo: repo}
}

// Ingest stores a reading, overwriting any previous sample for the same
// device identifier. The returned flag reports whether the device is new.
func (s *DeviceService) Ingest(ctx context.Context, input dto.ReadingInput) (*domain.Device, bool, error) {
	if input.DeviceID == "" || input.Temperature == nil || input.Humidity == nil {
		return nil, false, apperrors.ErrMissingFields
	}

	now := time.Now()
	collected := now
	if input.TimeCollected != nil {
		collected = *input.TimeCollected
	}

	device := &domain.Device{
		DeviceID:      input.DeviceID,
		Temperature:   *input.Temperature,
		Humidity:      *input.Humidity,
		TimeCollected: collected,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Upsert(ctx, device)
	if err != nil {
		return nil, false, err
	}

	return device, created, nil
}

func (s *DeviceService) Get(ctx context.Context, deviceID string) (*domain.Device, error) {
	device, err := s.repo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, apperrors.ErrDeviceNotFound
	}
	return device, nil
}

func (s *DeviceService) List(ctx context.Context) ([]domain.Device, error) {
	return s.repo.List(ctx)
}

// Purge removes a device's stored data and reports how many rows went away.
func (s *DeviceService) Purge(ctx context.Context, deviceID string) (int64, error) {
	deleted, err := s.repo.DeleteByDeviceID(ctx, deviceID)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, apperrors.ErrDeviceNotFound
	}
	return deleted, nil
}
