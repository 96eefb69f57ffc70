package domain

import "time"

const ChannelEmail = "email"

// Alert records one detected breach: the limits in effect at evaluation
// time and the observed values that crossed them. Insert-only.
type Alert struct {
	ID            string
	UserID        string
	TempLimit     float64
	HumidityLimit float64
	Channel       string
	Temperature   float64
	Humidity      float64
	CreatedAt     time.Time
}
