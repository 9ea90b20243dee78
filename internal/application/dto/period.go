package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/SellerOps-api/internal/domain"
)

// DefaultRangeDays días que cubre un rango cuando no se envía start_date.
const DefaultRangeDays = 30

// ParsePeriod convierte start/end (YYYY-MM-DD) en un rango inclusivo en la zona de now.
// end vacío = hoy; start vacío = end menos DefaultRangeDays-1 días. End se extiende hasta el
// último nanosegundo del día.
func ParsePeriod(startStr, endStr string, now time.Time) (start, end time.Time, err error) {
	loc := now.Location()
	if endStr == "" {
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	} else {
		end, err = time.ParseInLocation(DateLayout, endStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date inválido: %s", domain.ErrInvalidInput, endStr)
		}
	}

	if startStr == "" {
		start = end.AddDate(0, 0, -(DefaultRangeDays - 1))
	} else {
		start, err = time.ParseInLocation(DateLayout, startStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date inválido: %s", domain.ErrInvalidInput, startStr)
		}
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date no puede ser posterior a end_date", domain.ErrInvalidInput)
	}
	return start, EndOfDay(end), nil
}

// EndOfDay último instante del día de t.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).Add(24*time.Hour - time.Nanosecond)
}

// StartOfDay medianoche del día de t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
