package ledger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/spendcat/internal/model"
)

func TestRoundTrip(t *testing.T) {
	started := time.Date(2025, 1, 3, 9, 12, 44, 0, time.UTC)
	completed := time.Date(2025, 1, 4, 10, 1, 2, 0, time.UTC)
	expenses := []model.Expense{
		{
			ID: "2025-01-001", Date: date(2025, 1, 4), Vendor: "STARBUCKS #4521", Description: "STARBUCKS #4521",
			Amount: dec("4.85"), Category: "Meals", ProjectID: "proj-1",
			StartedAt: &started, CompletedAt: &completed, Source: "jan.csv",
		},
		{
			ID: "2025-01-002", Date: date(2025, 1, 7), Vendor: `Uber, Trip "Airport"`, Description: `Uber, Trip "Airport"`,
			Amount: dec("42.5"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, expenses))

	got, err := ReadExpenses(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, expenses[0].ID, got[0].ID)
	assert.True(t, expenses[0].Amount.Equal(got[0].Amount))
	assert.Equal(t, "Meals", got[0].Category)
	assert.Equal(t, "proj-1", got[0].ProjectID)
	require.NotNil(t, got[0].StartedAt)
	assert.True(t, started.Equal(*got[0].StartedAt))
	assert.Equal(t, "jan.csv", got[0].Source)

	assert.Equal(t, `Uber, Trip "Airport"`, got[1].Description)
	assert.Nil(t, got[1].StartedAt)
	assert.Nil(t, got[1].CompletedAt)
	assert.Empty(t, got[1].Category)
}

func TestRoundTrip_FractionalSeconds(t *testing.T) {
	started := time.Date(2025, 1, 3, 9, 12, 44, 123456789, time.FixedZone("CET", 3600))
	completed := time.Date(2025, 1, 4, 10, 1, 2, 500000000, time.UTC)
	e := expense("Coffee", "3.10", date(2025, 1, 4))
	e.ID = "2025-01-001"
	e.StartedAt = &started
	e.CompletedAt = &completed

	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, []model.Expense{e}))
	assert.Contains(t, buf.String(), "2025-01-03T09:12:44.123456789+01:00")

	got, err := ReadExpenses(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].StartedAt)
	require.NotNil(t, got[0].CompletedAt)
	assert.True(t, started.Equal(*got[0].StartedAt))
	assert.True(t, completed.Equal(*got[0].CompletedAt))
}

func TestMarshalExpense_Columns(t *testing.T) {
	row := MarshalExpense(expense("Coffee", "3.10", date(2025, 2, 1)))
	assert.Len(t, row, numFields)
	assert.Equal(t, "2025-02-01", row[colDate])
	assert.Equal(t, "3.1", row[colAmount])
	assert.Empty(t, row[colStartedAt])
}

func TestUnmarshalExpense_Errors(t *testing.T) {
	good := MarshalExpense(expense("Coffee", "3.10", date(2025, 2, 1)))

	_, err := UnmarshalExpense(good[:3])
	assert.ErrorContains(t, err, "expected 10 fields")

	bad := append([]string(nil), good...)
	bad[colDate] = "02/01/2025"
	_, err = UnmarshalExpense(bad)
	assert.ErrorContains(t, err, "parsing date")

	bad = append([]string(nil), good...)
	bad[colAmount] = "abc"
	_, err = UnmarshalExpense(bad)
	assert.ErrorContains(t, err, "parsing amount")

	bad = append([]string(nil), good...)
	bad[colCompletedAt] = "yesterday"
	_, err = UnmarshalExpense(bad)
	assert.ErrorContains(t, err, "completed_at")
}

func TestReadExpenses_HeaderOnly(t *testing.T) {
	got, err := ReadExpenses(strings.NewReader(Header + "\n"))
	require.NoError(t, err)
	assert.Nil(t, got)
}
