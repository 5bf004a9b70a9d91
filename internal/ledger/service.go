package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/spendcat/internal/id"
	"github.com/cleared-dev/spendcat/internal/model"
)

// Service stores expenses in one expenses.csv per month under the repo root.
type Service struct {
	repoRoot string
}

// NewService creates a ledger Service.
func NewService(repoRoot string) *Service {
	return &Service{repoRoot: repoRoot}
}

// Append assigns IDs to expenses, validates each affected month together
// with what is already stored, and appends them. The returned slice is in
// input order with IDs filled in. Nothing is written if any month fails
// validation.
func (s *Service) Append(expenses []model.Expense) ([]model.Expense, error) {
	out := make([]model.Expense, len(expenses))
	copy(out, expenses)

	byMonth := make(map[string][]int)
	var months []string
	for i, e := range out {
		key := id.MonthKey(e.Month())
		if _, seen := byMonth[key]; !seen {
			months = append(months, key)
		}
		byMonth[key] = append(byMonth[key], i)
	}
	sort.Strings(months)

	pending := make(map[string][]model.Expense, len(months))
	for _, key := range months {
		year, month, _ := id.ParseMonthKey(key)

		existing, err := s.ReadMonth(year, month)
		if err != nil {
			return nil, err
		}
		seq := nextSeq(existing)

		var fresh []model.Expense
		for _, i := range byMonth[key] {
			out[i].ID = id.FormatExpenseID(year, month, seq)
			seq++
			fresh = append(fresh, out[i])
		}

		all := append(existing, fresh...)
		if verrs := ValidateExpenses(all, year, month); len(verrs) > 0 {
			msgs := make([]string, len(verrs))
			for i, ve := range verrs {
				msgs[i] = ve.Error()
			}
			return nil, fmt.Errorf("validation failed for %s: %s", key, strings.Join(msgs, "; "))
		}
		pending[key] = fresh
	}

	for _, key := range months {
		year, month, _ := id.ParseMonthKey(key)
		if err := s.appendMonth(year, month, pending[key]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Service) appendMonth(year, month int, expenses []model.Expense) error {
	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := AppendExpenses(f, expenses); err != nil {
		return fmt.Errorf("appending expenses: %w", err)
	}
	return nil
}

// ReadMonth reads all expenses for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.Expense, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	expenses, err := ReadExpenses(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return expenses, nil
}

// NextSeq returns the next available sequence number for a month.
func (s *Service) NextSeq(year, month int) (int, error) {
	expenses, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}
	return nextSeq(expenses), nil
}

func nextSeq(expenses []model.Expense) int {
	maxSeq := 0
	for _, e := range expenses {
		_, _, seq, err := id.ParseExpenseID(e.ID)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.repoRoot, MonthDir(year, month), "expenses.csv")
}

// MonthDir returns the YYYY/MM directory of a month, relative to the repo root.
func MonthDir(year, month int) string {
	return filepath.Join(fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month))
}
