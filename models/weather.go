package models

// Coarse weather conditions the seating policy understands. Anything the
// provider reports outside this set maps to ConditionOther.
const (
	ConditionClear        = "Clear"
	ConditionRain         = "Rain"
	ConditionDrizzle      = "Drizzle"
	ConditionThunderstorm = "Thunderstorm"
	ConditionOther        = "Other"
)

// WeatherSnapshot is a best-effort, point-in-time forecast reading.
type WeatherSnapshot struct {
	TemperatureCelsius float64 `bson:"temperature_celsius" json:"temperatureCelsius"`
	Condition          string  `bson:"condition" json:"condition"`
	Description        string  `bson:"description" json:"description"`
}
