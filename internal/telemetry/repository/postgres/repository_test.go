package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/FJR5209/Dashboard-backend/internal/telemetry/domain"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var deviceColumns = []string{"device_id", "temperature", "humidity", "time_collected", "created_at", "updated_at"}

func sampleDevice() *domain.Device {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Device{
		DeviceID:      "sensor-01",
		Temperature:   25.5,
		Humidity:      60,
		TimeCollected: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func addDeviceRow(rows *pgxmock.Rows, d *domain.Device) *pgxmock.Rows {
	return rows.AddRow(d.DeviceID, d.Temperature, d.Humidity, d.TimeCollected, d.CreatedAt, d.UpdatedAt)
}

func TestUpsert(t *testing.T) {
	t.Run("first contact is an insert", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		device := sampleDevice()
		mock.ExpectQuery(`INSERT INTO devices`).
			WithArgs(device.DeviceID, device.Temperature, device.Humidity,
				device.TimeCollected, device.CreatedAt, device.UpdatedAt).
			WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(true))

		repo := NewPostgresRepository(mock)
		created, err := repo.Upsert(context.Background(), device)
		require.NoError(t, err)
		assert.True(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second sample overwrites", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		device := sampleDevice()
		mock.ExpectQuery(`INSERT INTO devices`).
			WithArgs(device.DeviceID, device.Temperature, device.Humidity,
				device.TimeCollected, device.CreatedAt, device.UpdatedAt).
			WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(false))

		repo := NewPostgresRepository(mock)
		created, err := repo.Upsert(context.Background(), device)
		require.NoError(t, err)
		assert.False(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByDeviceID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		device := sampleDevice()
		mock.ExpectQuery(`SELECT (.+) FROM devices`).
			WithArgs(device.DeviceID).
			WillReturnRows(addDeviceRow(pgxmock.NewRows(deviceColumns), device))

		repo := NewPostgresRepository(mock)
		got, err := repo.GetByDeviceID(context.Background(), device.DeviceID)
		require.NoError(t, err)
		assert.Equal(t, device.Temperature, got.Temperature)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found returns nil", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT (.+) FROM devices`).
			WithArgs("missing").
			WillReturnRows(pgxmock.NewRows(deviceColumns))

		repo := NewPostgresRepository(mock)
		got, err := repo.GetByDeviceID(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	first := sampleDevice()
	second := sampleDevice()
	second.DeviceID = "sensor-02"
	second.Temperature = 31.2

	rows := pgxmock.NewRows(deviceColumns)
	addDeviceRow(rows, first)
	addDeviceRow(rows, second)
	mock.ExpectQuery(`SELECT (.+) FROM devices`).WillReturnRows(rows)

	repo := NewPostgresRepository(mock)
	devices, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "sensor-02", devices[1].DeviceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByDeviceID(t *testing.T) {
	t.Run("reports deleted rows", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM devices`).
			WithArgs("sensor-01").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := NewPostgresRepository(mock)
		deleted, err := repo.DeleteByDeviceID(context.Background(), "sensor-01")
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows for unknown device", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM devices`).
			WithArgs("missing").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := NewPostgresRepository(mock)
		deleted, err := repo.DeleteByDeviceID(context.Background(), "missing")
		require.NoError(t, err)
		assert.Zero(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestExistingIDs(t *testing.T) {
	t.Run("reports known identifiers", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		ids := []string{"sensor-01", "ghost"}
		mock.ExpectQuery(`SELECT device_id FROM devices`).
			WithArgs(ids).
			WillReturnRows(pgxmock.NewRows([]string{"device_id"}).AddRow("sensor-01"))

		repo := NewPostgresRepository(mock)
		found, err := repo.ExistingIDs(context.Background(), ids)
		require.NoError(t, err)
		assert.Equal(t, []string{"sensor-01"}, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty input skips the query", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPostgresRepository(mock)
		found, err := repo.ExistingIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Nil(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
