// File: services/dialogue/seating.go
package dialogue

import (
	"fmt"

	"flavortable/models"
)

// SeatingDecision is the outcome of the seating policy. Rationale is empty
// when no weather data backed the decision.
type SeatingDecision struct {
	Area      string
	Rationale string
}

// hotThresholdCelsius: above this, outdoor seating is not offered.
const hotThresholdCelsius = 30.0

// DecideSeating assigns a seating area from a weather snapshot. The rules are
// evaluated in fixed priority order: no data, adverse condition, heat, then
// the favorable default. A hot rainy day is indoor for the rain reason alone.
func DecideSeating(weather *models.WeatherSnapshot) SeatingDecision {
	if weather == nil {
		// No data, no weather claim.
		return SeatingDecision{Area: models.SeatingIndoor}
	}

	switch weather.Condition {
	case models.ConditionRain, models.ConditionDrizzle, models.ConditionThunderstorm:
		return SeatingDecision{
			Area:      models.SeatingIndoor,
			Rationale: fmt.Sprintf("It looks like rain (%s). I've reserved an indoor table.", weather.Description),
		}
	}

	if weather.TemperatureCelsius > hotThresholdCelsius {
		return SeatingDecision{
			Area:      models.SeatingIndoor,
			Rationale: fmt.Sprintf("It's quite hot (%.0f°C), so I've booked an indoor table for comfort.", weather.TemperatureCelsius),
		}
	}

	return SeatingDecision{
		Area:      models.SeatingOutdoor,
		Rationale: fmt.Sprintf("The weather is lovely (%.0f°C). I've set you up for outdoor seating.", weather.TemperatureCelsius),
	}
}
