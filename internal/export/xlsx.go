// Package export writes ledger expenses to spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/spendcat/internal/ledger"
	"github.com/cleared-dev/spendcat/internal/model"
)

// Sheet names in the exported workbook.
const (
	ExpensesSheet = "Expenses"
	SummarySheet  = "Summary"
)

var expenseColumns = []any{"Expense ID", "Date", "Vendor", "Description", "Amount", "Category", "Project"}

var summaryColumns = []any{"Category", "Count", "Total"}

// WriteXLSX writes an Expenses sheet and a per-category Summary sheet to w.
func WriteXLSX(w io.Writer, expenses []model.Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExpensesSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if err := writeExpenses(f, expenses); err != nil {
		return err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	if err := writeSummary(f, expenses); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeExpenses(f *excelize.File, expenses []model.Expense) error {
	if err := setRow(f, ExpensesSheet, 1, expenseColumns); err != nil {
		return err
	}
	for i, e := range expenses {
		amount, _ := e.Amount.Float64()
		row := []any{e.ID, e.Date.Format("2006-01-02"), e.Vendor, e.Description, amount, e.Category, e.ProjectID}
		if err := setRow(f, ExpensesSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, expenses []model.Expense) error {
	if err := setRow(f, SummarySheet, 1, summaryColumns); err != nil {
		return err
	}
	totals := ledger.Summarize(expenses)
	for i, ct := range totals {
		total, _ := ct.Total.Float64()
		if err := setRow(f, SummarySheet, i+2, []any{ct.Category, ct.Count, total}); err != nil {
			return err
		}
	}
	grand, _ := ledger.Total(expenses).Float64()
	return setRow(f, SummarySheet, len(totals)+2, []any{"Total", len(expenses), grand})
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}
