package dto

import (
	"time"

	"github.com/FJR5209/Dashboard-backend/internal/alerting/domain"
)

// TriggerInput is the manual evaluation payload: one explicit reading for
// one user.
type TriggerInput struct {
	UserID      string   `json:"userId"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
}

type AlertOutput struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	TempLimit     float64   `json:"tempLimit"`
	HumidityLimit float64   `json:"humidityLimit"`
	Channel       string    `json:"channel"`
	Temperature   float64   `json:"temperature"`
	Humidity      float64   `json:"humidity"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewAlertOutput(a *domain.Alert) AlertOutput {
	return AlertOutput{
		ID:            a.ID,
		UserID:        a.UserID,
		TempLimit:     a.TempLimit,
		HumidityLimit: a.HumidityLimit,
		Channel:       a.Channel,
		Temperature:   a.Temperature,
		Humidity:      a.Humidity,
		CreatedAt:     a.CreatedAt,
	}
}
