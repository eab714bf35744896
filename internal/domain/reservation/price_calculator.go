package reservation

import (
	"condo-reservations/internal/domain/calendar"

	"github.com/shopspring/decimal"
)

const costDecimalPlaces int32 = 2

var minutesPerHour = decimal.NewFromInt(60)

type PriceCalculator interface {
	Calculate(hourlyRate decimal.Decimal, slot calendar.TimeSlot) decimal.Decimal
}

// HourlyRateCalculator charges rate × minutes / 60, rounded half up to cents.
type HourlyRateCalculator struct{}

func NewHourlyRateCalculator() *HourlyRateCalculator {
	return &HourlyRateCalculator{}
}

func (HourlyRateCalculator) Calculate(hourlyRate decimal.Decimal, slot calendar.TimeSlot) decimal.Decimal {
	minutes := decimal.NewFromInt(int64(slot.Minutes()))
	// DivRound rounds half away from zero, which is half up for non-negative costs.
	return hourlyRate.Mul(minutes).DivRound(minutesPerHour, costDecimalPlaces)
}
