package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/MrLemur/gitreport/internal/models"
)

// ErrInvalidDateFormat is returned when a date argument is not YYYY-MM-DD
var ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

// ParseDateRange resolves start and optional end dates into a full-day range.
// Reversed dates are swapped; only the format is ever rejected.
func ParseDateRange(start, end string) (models.DateRange, error) {
	startDay, err := parseDay(start)
	if err != nil {
		return models.DateRange{}, err
	}

	endDay := startDay
	if end != "" {
		if endDay, err = parseDay(end); err != nil {
			return models.DateRange{}, err
		}
	}

	if startDay.After(endDay) {
		startDay, endDay = endDay, startDay
	}

	return models.DateRange{
		Start: startDay,
		End:   time.Date(endDay.Year(), endDay.Month(), endDay.Day(), 23, 59, 59, 0, time.Local),
	}, nil
}

func parseDay(s string) (time.Time, error) {
	day, err := time.ParseInLocation(models.DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return day, nil
}

// DaysInRange lists every calendar day covered by the range as YYYY-MM-DD
func DaysInRange(r models.DateRange) []string {
	var days []string
	last := r.End.Format(models.DateLayout)
	for day := r.Start; ; day = day.AddDate(0, 0, 1) {
		s := day.Format(models.DateLayout)
		days = append(days, s)
		if s >= last {
			break
		}
	}
	return days
}
