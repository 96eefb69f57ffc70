package postgres

import (
	"context"
	"fmt"

	"github.com/FJR5209/Dashboard-backend/internal/alerting/domain"
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

func (r *PostgresRepository) Create(ctx context.Context, alert *domain.Alert) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO alerts (id, user_id, temp_limit, humidity_limit, channel, temperature, humidity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, alert.ID, alert.UserID, alert.TempLimit, alert.HumidityLimit,
		alert.Channel, alert.Temperature, alert.Humidity, alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]domain.Alert, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, temp_limit, humidity_limit, channel, temperature, humidity, created_at
		FROM alerts
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	return collectAlerts(rows)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Alert, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, temp_limit, humidity_limit, channel, temperature, humidity, created_at
		FROM alerts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts for user: %w", err)
	}

	return collectAlerts(rows)
}

func collectAlerts(rows pgx.Rows) ([]domain.Alert, error) {
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		var alert domain.Alert
		err := rows.Scan(&alert.ID, &alert.UserID, &alert.TempLimit, &alert.HumidityLimit,
			&alert.Channel, &alert.Temperature, &alert.Humidity, &alert.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, alert)
	}

	return alerts, rows.Err()
}
