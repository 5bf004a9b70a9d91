package importer

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spendcat/internal/model"
)

// FormatRevolut is the registry name of the statement export format.
const FormatRevolut = "revolut"

// Column names of the statement export. Only the ones read below matter;
// Product, Fee, Currency, State and Balance are ignored.
const (
	colType        = "Type"
	colStarted     = "Started Date"
	colCompleted   = "Completed Date"
	colDescription = "Description"
	colAmount      = "Amount"
)

// Skip reasons recorded in SkippedRow.Reason.
const (
	reasonUnparseable = "unparseable amount"
	reasonOutOfRange  = "amount out of range"
)

const (
	maxMagnitude = 309 // integer digits of math.MaxFloat64
	maxScale     = 16
)

var requiredColumns = []string{colType, colDescription, colAmount, colCompleted}

// timestampLayouts are tried in order. Layouts without a zone parse as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// SkippedRow describes a data row that produced no expense.
type SkippedRow struct {
	Row    int // 1-based position among non-blank rows; the header is row 1
	Reason string
	Value  string // offending field text
}

// Result is the output of one statement parse.
type Result struct {
	Expenses []model.Expense
	Skipped  []SkippedRow
}

// Rows returns the number of data rows seen, emitted or skipped.
func (r *Result) Rows() int {
	return len(r.Expenses) + len(r.Skipped)
}

// StatementParser converts statement exports into expenses.
// The zero value is usable: it logs nothing and reads the wall clock.
type StatementParser struct {
	Logger zerolog.Logger
	Now    func() time.Time
}

// NewStatementParser returns a parser that reports dropped rows to logger.
func NewStatementParser(logger zerolog.Logger) *StatementParser {
	return &StatementParser{Logger: logger}
}

// ParseStatement parses statement text with a silent default parser.
func ParseStatement(text string) (*Result, error) {
	p := StatementParser{Logger: zerolog.Nop()}
	return p.ParseText(text)
}

// Format returns the parser name.
func (p *StatementParser) Format() string { return FormatRevolut }

// Parse reads a whole statement from r.
func (p *StatementParser) Parse(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	return p.ParseText(string(data))
}

// ParseText parses statement text. A *MalformedInputError is returned when
// there is no data row or a required column is missing; rows with an
// unparseable amount are skipped and listed in Result.Skipped.
func (p *StatementParser) ParseText(text string) (*Result, error) {
	rows := Tokenize(text)
	if len(rows) < 2 {
		return nil, &MalformedInputError{
			Reason: fmt.Sprintf("need a header and at least one data row, got %d rows", len(rows)),
		}
	}

	header := rows[0]
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, &MalformedInputError{Reason: "missing required columns", Missing: missing}
	}

	now := p.now()
	res := &Result{}
	for i, rec := range rows[1:] {
		if isBlank(rec) {
			continue
		}
		rowNum := i + 2
		fields := zipRow(header, rec)

		exp, reason := mapRow(fields, now)
		if reason != "" {
			raw := fields[colAmount]
			p.Logger.Warn().
				Int("row", rowNum).
				Str("amount", raw).
				Msgf("skipping row with %s", reason)
			res.Skipped = append(res.Skipped, SkippedRow{
				Row:    rowNum,
				Reason: reason,
				Value:  raw,
			})
			continue
		}
		res.Expenses = append(res.Expenses, exp)
	}
	return res, nil
}

func (p *StatementParser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, c := range requiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// zipRow maps a row onto header names. Short rows get "" for the missing
// trailing columns; surplus fields are dropped.
func zipRow(header, rec []string) map[string]string {
	fields := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(rec) {
			fields[name] = rec[i]
		} else {
			fields[name] = ""
		}
	}
	return fields
}

// mapRow builds an expense from one row, or returns why the row is skipped.
func mapRow(fields map[string]string, now time.Time) (model.Expense, string) {
	amount, err := decimal.NewFromString(strings.TrimSpace(fields[colAmount]))
	if err != nil {
		return model.Expense{}, reasonUnparseable
	}
	amount, ok := boundAmount(amount)
	if !ok {
		return model.Expense{}, reasonOutOfRange
	}

	started := parseTimestamp(fields[colStarted])
	completed := parseTimestamp(fields[colCompleted])

	date := now
	switch {
	case completed != nil:
		date = *completed
	case started != nil:
		date = *started
	}

	desc := strings.TrimSpace(fields[colDescription])
	return model.Expense{
		Vendor:      desc,
		Description: desc,
		Amount:      amount.Abs(),
		Date:        truncateDay(date),
		StartedAt:   started,
		CompletedAt: completed,
	}, ""
}

// boundAmount rejects amounts beyond float64 range and rounds away digits
// past maxScale. The magnitude is read off the exponent before any
// arithmetic, since rescaling "1e5000000" is itself unbounded work.
func boundAmount(d decimal.Decimal) (decimal.Decimal, bool) {
	if d.IsZero() {
		if d.Exponent() < -maxScale || d.Exponent() > 0 {
			return decimal.Zero, true
		}
		return d, true
	}
	magnitude := int64(d.NumDigits()) + int64(d.Exponent())
	switch {
	case magnitude > maxMagnitude:
		return decimal.Decimal{}, false
	case magnitude < -maxScale:
		return decimal.Zero, true
	}
	if f, _ := d.Float64(); math.IsInf(f, 0) {
		return decimal.Decimal{}, false
	}
	if d.Exponent() < -maxScale {
		d = d.Round(maxScale)
	}
	return d, true
}

// parseTimestamp returns nil for empty or unrecognized text.
func parseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// truncateDay keeps the calendar day as seen in t's own zone.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
