package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spendcat/internal/model"
)

// Header is the CSV header for expenses.csv.
const Header = "expense_id,date,vendor,description,amount,category,project_id,started_at,completed_at,source"

const (
	numFields      = 10
	dateFormat     = "2006-01-02"
	colID          = 0
	colDate        = 1
	colVendor      = 2
	colDesc        = 3
	colAmount      = 4
	colCategory    = 5
	colProject     = 6
	colStartedAt   = 7
	colCompletedAt = 8
	colSource      = 9
)

// ReadExpenses reads all expenses from an expenses.csv reader.
func ReadExpenses(r io.Reader) ([]model.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var expenses []model.Expense
	for i, rec := range records[1:] {
		e, err := UnmarshalExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// WriteExpenses writes expenses including the header.
func WriteExpenses(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range expenses {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendExpenses appends expenses to an existing expenses.csv writer (no header).
func AppendExpenses(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)

	for i, e := range expenses {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colDate] = e.Date.Format(dateFormat)
	row[colVendor] = e.Vendor
	row[colDesc] = e.Description
	row[colAmount] = e.Amount.String()
	row[colCategory] = e.Category
	row[colProject] = e.ProjectID
	row[colStartedAt] = formatTimestamp(e.StartedAt)
	row[colCompletedAt] = formatTimestamp(e.CompletedAt)
	row[colSource] = e.Source
	return row
}

// UnmarshalExpense converts a CSV row to an Expense.
func UnmarshalExpense(record []string) (model.Expense, error) {
	if len(record) != numFields {
		return model.Expense{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	started, err := parseTimestamp(record[colStartedAt])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing started_at: %w", err)
	}
	completed, err := parseTimestamp(record[colCompletedAt])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing completed_at: %w", err)
	}

	return model.Expense{
		ID:          record[colID],
		Date:        date,
		Vendor:      record[colVendor],
		Description: record[colDesc],
		Amount:      amount,
		Category:    record[colCategory],
		ProjectID:   record[colProject],
		StartedAt:   started,
		CompletedAt: completed,
		Source:      record[colSource],
	}, nil
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTimestamp(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s, err)
	}
	return &t, nil
}
