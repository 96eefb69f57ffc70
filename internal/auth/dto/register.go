package dto

type RegisterInput struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	Role          string   `json:"role"`
	TempLimit     *float64 `json:"tempLimit"`
	HumidityLimit *float64 `json:"humidityLimit"`
	DeviceID      string   `json:"deviceId"`
}
