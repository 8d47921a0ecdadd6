package interfaces

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

func decimalFromString(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}

// parsePeriod reads year and month query parameters, defaulting to the
// current calendar month when absent.
func parsePeriod(r *http.Request) (int, time.Month, bool) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil || parsed < 1900 {
			return 0, 0, false
		}
		year = parsed
	}
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, false
		}
		month = time.Month(parsed)
	}
	return year, month, true
}

func parseYear(r *http.Request) (int, bool) {
	yearStr := r.URL.Query().Get("year")
	if yearStr == "" {
		return time.Now().Year(), true
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1900 {
		return 0, false
	}
	return year, true
}
