package dto

import (
	"time"

	"github.com/FJR5209/Dashboard-backend/internal/auth/domain"
)

type UserOutput struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	TempLimit     float64   `json:"tempLimit"`
	HumidityLimit float64   `json:"humidityLimit"`
	Devices       []string  `json:"devices"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type UpdateUserInput struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	TempLimit     *float64 `json:"tempLimit"`
	HumidityLimit *float64 `json:"humidityLimit"`
	Devices       []string `json:"devices"`
}

func NewUserOutput(u *domain.User) UserOutput {
	devices := u.DeviceIDs
	if devices == nil {
		devices = []string{}
	}
	return UserOutput{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		TempLimit:     u.TempLimit,
		HumidityLimit: u.HumidityLimit,
		Devices:       devices,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
