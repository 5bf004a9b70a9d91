package importer

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementHeader = "Type,Product,Started Date,Completed Date,Description,Amount,Fee,Currency,State,Balance\n"

func readStatement(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/revolut_statement.csv")
	require.NoError(t, err)
	return string(data)
}

func fixedNow() time.Time {
	return time.Date(2025, 2, 14, 16, 45, 0, 0, time.UTC)
}

func TestParseStatement_Testdata(t *testing.T) {
	res, err := ParseStatement(readStatement(t))
	require.NoError(t, err)
	require.Len(t, res.Expenses, 5)
	assert.Equal(t, 6, res.Rows())

	first := res.Expenses[0]
	assert.Equal(t, "STARBUCKS #4521", first.Description)
	assert.Equal(t, first.Description, first.Vendor)
	assert.Equal(t, "4.85", first.Amount.StringFixed(2))
	assert.Equal(t, time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC), first.Date)
	require.NotNil(t, first.StartedAt)
	require.NotNil(t, first.CompletedAt)
	assert.Equal(t, time.Date(2025, 1, 3, 9, 12, 44, 0, time.UTC), *first.StartedAt)
	assert.Empty(t, first.Category)
	assert.Empty(t, first.ProjectID)

	assert.Equal(t, `Uber, Trip "Airport"`, res.Expenses[1].Description)
	assert.Equal(t, "42.50", res.Expenses[1].Amount.StringFixed(2))
}

func TestParseStatement_PreservesOrderAroundDroppedRow(t *testing.T) {
	res, err := ParseStatement(readStatement(t))
	require.NoError(t, err)

	var descs []string
	for _, e := range res.Expenses {
		descs = append(descs, e.Description)
	}
	assert.Equal(t, []string{
		"STARBUCKS #4521",
		`Uber, Trip "Airport"`,
		"Rent January",
		"Top-up by *1234",
		"GitHub Pro",
	}, descs)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 5, res.Skipped[0].Row)
	assert.Equal(t, "N/A", res.Skipped[0].Value)
	assert.Equal(t, "unparseable amount", res.Skipped[0].Reason)
}

func TestParseStatement_AmountIsAbsolute(t *testing.T) {
	csv := statementHeader +
		"CARD_PAYMENT,Current,,2024-03-01 10:00:00,Coffee,-42.50,0,EUR,COMPLETED,0\n" +
		"TOPUP,Current,,2024-03-01 10:00:00,Salary,100,0,EUR,COMPLETED,0\n"
	res, err := ParseStatement(csv)
	require.NoError(t, err)
	require.Len(t, res.Expenses, 2)
	assert.Equal(t, "42.5", res.Expenses[0].Amount.String())
	assert.False(t, res.Expenses[0].Amount.IsNegative())
	assert.Equal(t, "100", res.Expenses[1].Amount.String())
}

func TestParseStatement_DateFallback(t *testing.T) {
	csv := statementHeader +
		"CARD_PAYMENT,Current,2024-03-01T10:00:00Z,,Started only,-1,0,EUR,PENDING,0\n" +
		"CARD_PAYMENT,Current,,,No dates,-1,0,EUR,PENDING,0\n" +
		"CARD_PAYMENT,Current,garbage,also garbage,Bad dates,-1,0,EUR,PENDING,0\n" +
		"CARD_PAYMENT,Current,2024-03-01,2024-03-02T23:30:00+02:00,Both,-1,0,EUR,COMPLETED,0\n"

	p := &StatementParser{Logger: zerolog.Nop(), Now: fixedNow}
	res, err := p.ParseText(csv)
	require.NoError(t, err)
	require.Len(t, res.Expenses, 4)

	startedOnly := res.Expenses[0]
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), startedOnly.Date)
	assert.Nil(t, startedOnly.CompletedAt)
	require.NotNil(t, startedOnly.StartedAt)

	today := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, today, res.Expenses[1].Date)
	assert.Nil(t, res.Expenses[1].StartedAt)
	assert.Equal(t, today, res.Expenses[2].Date)
	assert.Nil(t, res.Expenses[2].StartedAt)
	assert.Nil(t, res.Expenses[2].CompletedAt)

	// Calendar day is taken in the timestamp's own zone.
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), res.Expenses[3].Date)
}

func TestParseStatement_DateFallsBackToWallClock(t *testing.T) {
	csv := statementHeader + "CARD_PAYMENT,Current,,,No dates,-1,0,EUR,PENDING,0\n"
	before := time.Now()
	res, err := ParseStatement(csv)
	after := time.Now()
	require.NoError(t, err)
	require.Len(t, res.Expenses, 1)

	got := res.Expenses[0].Date
	okBefore := got.Equal(truncateDay(before))
	okAfter := got.Equal(truncateDay(after))
	assert.True(t, okBefore || okAfter, "date %s should be today", got)
}

func TestParseStatement_MissingAmountColumn(t *testing.T) {
	csv := "Type,Product,Started Date,Completed Date,Description,Fee\nCARD_PAYMENT,Current,,,Coffee,0\n"
	_, err := ParseStatement(csv)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))

	var mErr *MalformedInputError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, []string{"Amount"}, mErr.Missing)
	assert.Contains(t, err.Error(), "Amount")
}

func TestParseStatement_MissingSeveralColumns(t *testing.T) {
	_, err := ParseStatement("type,description,amount,completed date\nx,y,1,\n")
	var mErr *MalformedInputError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, []string{"Type", "Description", "Amount", "Completed Date"}, mErr.Missing)
}

func TestParseStatement_HeaderOnly(t *testing.T) {
	_, err := ParseStatement(statementHeader)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.Contains(t, err.Error(), "got 1 rows")
}

func TestParseStatement_Empty(t *testing.T) {
	_, err := ParseStatement("\n\n  \r\n")
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestParseStatement_ShortRowAndExtraColumns(t *testing.T) {
	csv := "Type,Description,Amount,Completed Date,Extra\n" +
		"CARD_PAYMENT,Coffee,3.20\n" +
		"CARD_PAYMENT,Tea,2.10,2024-05-05,x,y,z\n"
	p := &StatementParser{Now: fixedNow}
	res, err := p.ParseText(csv)
	require.NoError(t, err)
	require.Len(t, res.Expenses, 2)
	assert.Nil(t, res.Expenses[0].CompletedAt)
	assert.Equal(t, time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), res.Expenses[0].Date)
	assert.Equal(t, time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC), res.Expenses[1].Date)
}

func TestParseStatement_EmptyDescriptionIsAbsent(t *testing.T) {
	csv := statementHeader + "CARD_PAYMENT,Current,,2024-03-01,   ,-1,0,EUR,COMPLETED,0\n"
	res, err := ParseStatement(csv)
	require.NoError(t, err)
	require.Len(t, res.Expenses, 1)
	assert.Empty(t, res.Expenses[0].Description)
	assert.Empty(t, res.Expenses[0].Vendor)
}

func TestParseStatement_EmptyAmountDropped(t *testing.T) {
	csv := statementHeader +
		"CARD_PAYMENT,Current,,2024-03-01,Before,-1,0,EUR,COMPLETED,0\n" +
		"CARD_PAYMENT,Current,,2024-03-01,No amount,,0,EUR,COMPLETED,0\n" +
		"CARD_PAYMENT,Current,,2024-03-01,After,-2,0,EUR,COMPLETED,0\n"
	res, err := ParseStatement(csv)
	require.NoError(t, err)
	require.Len(t, res.Expenses, 2)
	assert.Equal(t, "Before", res.Expenses[0].Description)
	assert.Equal(t, "After", res.Expenses[1].Description)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 3, res.Skipped[0].Row)
}

func TestParseStatement_CRLF(t *testing.T) {
	csv := strings.ReplaceAll(readStatement(t), "\n", "\r\n")
	res, err := ParseStatement(csv)
	require.NoError(t, err)
	assert.Len(t, res.Expenses, 5)
}

func TestStatementParser_LogsSkippedRows(t *testing.T) {
	var buf bytes.Buffer
	p := NewStatementParser(zerolog.New(&buf))
	res, err := p.Parse(strings.NewReader(readStatement(t)))
	require.NoError(t, err)
	require.Len(t, res.Skipped, 1)

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"row":5`)
	assert.Contains(t, out, `"amount":"N/A"`)
}

func TestStatementParser_Format(t *testing.T) {
	assert.Equal(t, "revolut", (&StatementParser{}).Format())
}

func TestParseStatement_AmountOutOfRange(t *testing.T) {
	csv := statementHeader +
		"CARD_PAYMENT,Current,,2024-03-01 10:00:00,Huge,1e400,0,EUR,COMPLETED,0\n" +
		"CARD_PAYMENT,Current,,2024-03-01 10:00:00,Absurd,-1e5000000,0,EUR,COMPLETED,0\n" +
		"CARD_PAYMENT,Current,,2024-03-01 10:00:00,Coffee,3.20,0,EUR,COMPLETED,0\n"

	done := make(chan struct{})
	var res *Result
	var err error
	go func() {
		defer close(done)
		res, err = ParseStatement(csv)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("parsing huge exponents did not finish")
	}

	require.NoError(t, err)
	require.Len(t, res.Expenses, 1)
	assert.Equal(t, "Coffee", res.Expenses[0].Description)

	require.Len(t, res.Skipped, 2)
	assert.Equal(t, SkippedRow{Row: 2, Reason: "amount out of range", Value: "1e400"}, res.Skipped[0])
	assert.Equal(t, SkippedRow{Row: 3, Reason: "amount out of range", Value: "-1e5000000"}, res.Skipped[1])
}

func TestParseStatement_AmountBounds(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1.7e308", "17" + strings.Repeat("0", 307)},
		{"1e-5000000", "0"},
		{"-0.123456789012345678", "0.1234567890123457"},
		{"0e999", "0"},
		{"0.00", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			csv := statementHeader + "CARD_PAYMENT,Current,,2024-03-01,X," + tt.raw + ",0,EUR,COMPLETED,0\n"
			res, err := ParseStatement(csv)
			require.NoError(t, err)
			require.Len(t, res.Expenses, 1)
			assert.Equal(t, tt.want, res.Expenses[0].Amount.String())
		})
	}
}

func TestParseStatement_DateUsesTimestampZone(t *testing.T) {
	csv := statementHeader +
		"CARD_PAYMENT,Current,,2024-03-01T23:30:00-05:00,Late dinner,-30,0,EUR,COMPLETED,0\n"
	res, err := ParseStatement(csv)
	require.NoError(t, err)
	require.Len(t, res.Expenses, 1)

	e := res.Expenses[0]
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), e.Date)
	require.NotNil(t, e.CompletedAt)
	assert.Equal(t, time.Date(2024, 3, 2, 4, 30, 0, 0, time.UTC), e.CompletedAt.UTC())
}

func TestStatementParser_LogsOutOfRangeRows(t *testing.T) {
	var buf bytes.Buffer
	p := NewStatementParser(zerolog.New(&buf))

	_, err := p.ParseText(statementHeader + "CARD_PAYMENT,Current,,2024-03-01,X,9e999,0,EUR,COMPLETED,0\n")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"skipping row with amount out of range"`)
	assert.Contains(t, buf.String(), `"amount":"9e999"`)
}
