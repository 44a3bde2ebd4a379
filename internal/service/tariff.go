package service

import (
	"travelplanner/internal/ai"
	"travelplanner/internal/types"
)

// Tariff converts token counts into an estimated upstream charge.
// Prices are USD per million tokens.
type Tariff struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// DefaultTariff is the published price of the default model.
var DefaultTariff = Tariff{InputPerMTok: 3, OutputPerMTok: 15}

func (t Tariff) Cost(u ai.Usage) types.USD {
	return types.USD(float64(u.InputTokens)/1_000_000*t.InputPerMTok +
		float64(u.OutputTokens)/1_000_000*t.OutputPerMTok)
}
