package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatExpenseID returns an expense ID like "2025-01-001".
func FormatExpenseID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// ParseExpenseID parses "2025-01-001" into year, month, seq.
func ParseExpenseID(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid expense ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in expense ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("invalid month in expense ID %q", id)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil || seq < 1 {
		return 0, 0, 0, fmt.Errorf("invalid sequence in expense ID %q", id)
	}

	return year, month, seq, nil
}

// MonthKey returns "YYYY-MM" for grouping.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// ParseMonthKey parses "YYYY-MM".
func ParseMonthKey(key string) (year, month int, err error) {
	y, m, ok := strings.Cut(key, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid month %q: want YYYY-MM", key)
	}
	year, err = strconv.Atoi(y)
	if err != nil || len(y) != 4 {
		return 0, 0, fmt.Errorf("invalid year in month %q", key)
	}
	month, err = strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month in %q", key)
	}
	return year, month, nil
}
