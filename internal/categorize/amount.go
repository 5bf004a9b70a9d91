package categorize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type rangeOp int

const (
	opGreater rangeOp = iota
	opLess
	opBetween
)

// AmountRange is a parsed amountRange pattern: ">x", "<x" or "min-max".
type AmountRange struct {
	op  rangeOp
	lo  decimal.Decimal
	hi  decimal.Decimal
	raw string
}

// ErrBadRange is wrapped by every ParseAmountRange failure.
var ErrBadRange = errors.New("invalid amount range")

// ParseAmountRange parses an amountRange pattern value. Ranges with more
// than one dash are rejected rather than truncated.
func ParseAmountRange(pattern string) (AmountRange, error) {
	p := strings.TrimSpace(pattern)
	switch {
	case strings.HasPrefix(p, ">"):
		v, err := parseBound(p[1:])
		if err != nil {
			return AmountRange{}, fmt.Errorf("%w %q: %w", ErrBadRange, pattern, err)
		}
		return AmountRange{op: opGreater, lo: v, raw: p}, nil
	case strings.HasPrefix(p, "<"):
		v, err := parseBound(p[1:])
		if err != nil {
			return AmountRange{}, fmt.Errorf("%w %q: %w", ErrBadRange, pattern, err)
		}
		return AmountRange{op: opLess, hi: v, raw: p}, nil
	case strings.Contains(p, "-"):
		parts := strings.Split(p, "-")
		if len(parts) != 2 {
			return AmountRange{}, fmt.Errorf("%w %q: expected exactly one dash", ErrBadRange, pattern)
		}
		lo, err := parseBound(parts[0])
		if err != nil {
			return AmountRange{}, fmt.Errorf("%w %q: min: %w", ErrBadRange, pattern, err)
		}
		hi, err := parseBound(parts[1])
		if err != nil {
			return AmountRange{}, fmt.Errorf("%w %q: max: %w", ErrBadRange, pattern, err)
		}
		return AmountRange{op: opBetween, lo: lo, hi: hi, raw: p}, nil
	default:
		return AmountRange{}, fmt.Errorf("%w %q: expected >x, <x or min-max", ErrBadRange, pattern)
	}
}

func parseBound(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, errors.New("empty bound")
	}
	return decimal.NewFromString(s)
}

// Contains reports whether amount falls in the range. Between is inclusive
// on both ends; > and < are strict.
func (r AmountRange) Contains(amount decimal.Decimal) bool {
	switch r.op {
	case opGreater:
		return amount.GreaterThan(r.lo)
	case opLess:
		return amount.LessThan(r.hi)
	case opBetween:
		return amount.GreaterThanOrEqual(r.lo) && amount.LessThanOrEqual(r.hi)
	}
	return false
}

func (r AmountRange) String() string { return r.raw }

func matchAmount(amount decimal.Decimal, pattern string) bool {
	r, err := ParseAmountRange(pattern)
	if err != nil {
		return false
	}
	return r.Contains(amount)
}
