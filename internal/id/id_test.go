package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatExpenseID(t *testing.T) {
	tests := []struct {
		year, month, seq int
		want             string
	}{
		{2025, 1, 1, "2025-01-001"},
		{2025, 12, 99, "2025-12-099"},
		{2025, 1, 1234, "2025-01-1234"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatExpenseID(tt.year, tt.month, tt.seq))
	}
}

func TestParseExpenseID(t *testing.T) {
	tests := []struct {
		input               string
		wantYear, wantMonth int
		wantSeq             int
	}{
		{"2025-01-001", 2025, 1, 1},
		{"2025-12-099", 2025, 12, 99},
		{"2025-01-1234", 2025, 1, 1234},
	}
	for _, tt := range tests {
		year, month, seq, err := ParseExpenseID(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantYear, year)
		assert.Equal(t, tt.wantMonth, month)
		assert.Equal(t, tt.wantSeq, seq)
	}
}

func TestParseExpenseID_Errors(t *testing.T) {
	for _, input := range []string{"", "not-valid", "2025-01", "xxxx-01-001", "2025-13-001", "2025-01-000", "2025-01-001a"} {
		_, _, _, err := ParseExpenseID(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-03", MonthKey(2025, 3))

	y, m, err := ParseMonthKey("2025-03")
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 3, m)

	for _, bad := range []string{"", "2025", "25-03", "2025-00", "2025-xx"} {
		_, _, err := ParseMonthKey(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
