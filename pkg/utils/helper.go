package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// GenerateBookingName creates the human readable booking number.
// Format: BOOK-YYYYMMDD-HHMMSS-NNNN
func GenerateBookingName(now time.Time) string {
	return fmt.Sprintf("BOOK-%s-%s-%04d",
		now.Format("20060102"),
		now.Format("150405"),
		rand.Intn(10000),
	)
}
