package service

// BreachPolicy selects the predicate used to compare a reading against a
// user's limits. The deployed policy is a product decision: historical
// revisions of the dashboard disagreed on AND vs OR and on whether low
// humidity counts as a breach, so all three variants stay selectable.
type BreachPolicy string

const (
	// PolicyAnyExceeds fires when either value is above its limit
	// (both limits are ceilings). This is the canonical default.
	PolicyAnyExceeds BreachPolicy = "any-exceeds"
	// PolicyAllExceed fires only when both values are above their limits.
	PolicyAllExceed BreachPolicy = "all-exceed"
	// PolicyTempHighHumidityLow fires when temperature is above its limit
	// and humidity is below its limit (humidity limit as a floor).
	PolicyTempHighHumidityLow BreachPolicy = "temp-high-humidity-low"
)

// ParseBreachPolicy maps a config string onto a policy, falling back to
// PolicyAnyExceeds for unknown values. Callers should log the fallback: a
// typo must not silently change alerting semantics.
func ParseBreachPolicy(s string) (BreachPolicy, bool) {
	switch BreachPolicy(s) {
	case PolicyAnyExceeds, PolicyAllExceed, PolicyTempHighHumidityLow:
		return BreachPolicy(s), true
	default:
		return PolicyAnyExceeds, false
	}
}

// Limits are a user's configured thresholds.
type Limits struct {
	TempLimit     float64
	HumidityLimit float64
}

// Reading is one observed (temperature, humidity) pair.
type Reading struct {
	Temperature float64
	Humidity    float64
}

// Breach evaluates the reading against the limits under the given policy.
func Breach(policy BreachPolicy, limits Limits, reading Reading) bool {
	tempExceeded := reading.Temperature > limits.TempLimit
	humidityExceeded := reading.Humidity > limits.HumidityLimit

	switch policy {
	case PolicyAllExceed:
		return tempExceeded && humidityExceeded
	case PolicyTempHighHumidityLow:
		return tempExceeded && reading.Humidity < limits.HumidityLimit
	default:
		return tempExceeded || humidityExceeded
	}
}
