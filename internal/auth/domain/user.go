package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID            string
	Name          string
	Email         string
	Role          string
	PasswordHash  string
	TempLimit     float64
	HumidityLimit float64
	DeviceIDs     []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
