package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_alert_repository.go -package=mocks github.com/FJR5209/Dashboard-backend/internal/alerting/domain AlertRepository
//go:generate mockgen -destination=../../mocks/mock_mailer.go -package=mocks github.com/FJR5209/Dashboard-backend/internal/alerting/domain Mailer

type AlertRepository interface {
	Create(ctx context.Context, alert *Alert) error
	List(ctx context.Context, limit int) ([]Alert, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Alert, error)
}

// Mailer sends a plain-text notification. Implementations bound the send
// with the given context.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
