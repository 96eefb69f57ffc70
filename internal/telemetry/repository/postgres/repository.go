package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/FJR5209/Dashboard-backend/internal/telemetry/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxIface is satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type PgxIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db PgxIface
}

func NewPostgresRepository(db PgxIface) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert keeps exactly one row per device: an insert on first contact, an
// overwrite of the reading fields on every subsequent sample. xmax = 0
// distinguishes a fresh insert from a conflict-update.
func (r *PostgresRepository) Upsert(ctx context.Context, device *domain.Device) (bool, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO devices (device_id, temperature, humidity, time_collected, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (device_id)
		DO UPDATE SET
			temperature = EXCLUDED.temperature,
			humidity = EXCLUDED.humidity,
			time_collected = EXCLUDED.time_collected,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)
	`, device.DeviceID, device.Temperature, device.Humidity,
		device.TimeCollected, device.CreatedAt, device.UpdatedAt)

	var created bool
	if err := row.Scan(&created); err != nil {
		return false, fmt.Errorf("failed to upsert device: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) GetByDeviceID(ctx context.Context, deviceID string) (*domain.Device, error) {
	row := r.db.QueryRow(ctx, `
		SELECT device_id, temperature, humidity, time_collected, created_at, updated_at
		FROM devices
		WHERE device_id = $1
		LIMIT 1
	`, deviceID)

	device, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return device, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]domain.Device, error) {
	rows, err := r.db.Query(ctx, `
		SELECT device_id, temperature, humidity, time_collected, created_at, updated_at
		FROM devices
		ORDER BY device_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []domain.Device
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, *device)
	}

	return devices, rows.Err()
}

func (r *PostgresRepository) DeleteByDeviceID(ctx context.Context, deviceID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM devices WHERE device_id = $1`, deviceID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete device data: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ExistingIDs reports which of the given identifiers are registered.
func (r *PostgresRepository) ExistingIDs(ctx context.Context, deviceIDs []string) ([]string, error) {
	if len(deviceIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `SELECT device_id FROM devices WHERE device_id = ANY($1)`, deviceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to check devices: %w", err)
	}
	defer rows.Close()

	var found []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan device id: %w", err)
		}
		found = append(found, id)
	}

	return found, rows.Err()
}

func scanDevice(row pgx.Row) (*domain.Device, error) {
	var device domain.Device
	err := row.Scan(&device.DeviceID, &device.Temperature, &device.Humidity,
		&device.TimeCollected, &device.CreatedAt, &device.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &device, nil
}
