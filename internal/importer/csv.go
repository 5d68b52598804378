// Package importer parses bank statement CSV exports into ledger entry
// drafts. Statements vary per bank, so columns are located by header name
// rather than position, and each row is categorized from its description.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"budget/internal/core"
)

var (
	// ErrMissingColumns means the header row lacks a recognizable date,
	// description or amount column. The whole file is rejected.
	ErrMissingColumns = errors.New("could not identify date, description and amount columns")
	// ErrNoData means the file has no rows beyond the header.
	ErrNoData = errors.New("file must contain a header row and at least one data row")
)

// Result is the outcome of parsing one statement. Skipped counts rows
// dropped for unparseable amounts or dates; they never fail the file.
type Result struct {
	Entries []core.Entry
	Skipped int
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"02-01-2006",
}

// Parse reads a CSV statement and returns categorized entry drafts.
// Amounts are stored as magnitudes; the bank's sign convention only
// informs the kind when no keyword matches.
func Parse(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) < 2 {
		return Result{}, ErrNoData
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	dateCol := findColumn(headers, "date")
	descCol := findColumn(headers, "description", "memo", "transaction")
	amountCol := findColumn(headers, "amount", "debit", "credit")
	if dateCol < 0 || descCol < 0 || amountCol < 0 {
		return Result{}, ErrMissingColumns
	}

	var res Result
	for i, rec := range records[1:] {
		entry, ok := parseRow(rec, dateCol, descCol, amountCol)
		if !ok {
			slog.Warn("Skipping statement row", "row", i+2)
			res.Skipped++
			continue
		}
		res.Entries = append(res.Entries, entry)
	}
	return res, nil
}

// findColumn returns the index of the first header containing any of the
// given substrings, or -1.
func findColumn(headers []string, substrings ...string) int {
	for i, h := range headers {
		for _, s := range substrings {
			if strings.Contains(h, s) {
				return i
			}
		}
	}
	return -1
}

func parseRow(rec []string, dateCol, descCol, amountCol int) (core.Entry, bool) {
	max := dateCol
	if descCol > max {
		max = descCol
	}
	if amountCol > max {
		max = amountCol
	}
	if len(rec) <= max {
		return core.Entry{}, false
	}

	date, ok := parseDate(strings.TrimSpace(rec[dateCol]))
	if !ok {
		return core.Entry{}, false
	}

	amount, err := decimal.NewFromString(cleanAmount(rec[amountCol]))
	if err != nil {
		return core.Entry{}, false
	}

	desc := strings.TrimSpace(rec[descCol])
	if desc == "" {
		return core.Entry{}, false
	}

	category, kind := Categorize(desc, amount)
	return core.Entry{
		Kind:        kind,
		Category:    category,
		Amount:      amount.Abs(),
		Description: desc,
		Date:        core.DateOf(date),
	}, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// cleanAmount strips currency symbols and thousands separators, keeping
// digits, a leading minus and the decimal point.
func cleanAmount(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '-' || r == '.' {
			return r
		}
		return -1
	}, s)
}

type keywordRule struct {
	keywords []string
	category string
	kind     core.Kind
}

// Keyword rules are checked in order; the first match wins.
var keywordRules = []keywordRule{
	{[]string{"salary", "payroll", "deposit", "income"}, "salary", core.Income},
	{[]string{"savings", "investment"}, "emergency", core.Savings},
	{[]string{"grocery", "food", "restaurant", "cafe"}, "food", core.Expense},
	{[]string{"gas", "fuel", "uber", "taxi", "bus"}, "transportation", core.Expense},
	{[]string{"movie", "netflix", "spotify", "entertainment"}, "entertainment", core.Expense},
	{[]string{"electric", "water", "utility", "phone", "internet"}, "utilities", core.Expense},
	{[]string{"doctor", "pharmacy", "hospital", "medical"}, "healthcare", core.Expense},
	{[]string{"amazon", "walmart", "target", "shopping"}, "shopping", core.Expense},
}

// Categorize picks a category and kind from a statement description.
// When no keyword matches, the bank sign convention decides: positive
// amounts are charges, negative amounts are credits.
func Categorize(description string, amount decimal.Decimal) (string, core.Kind) {
	desc := strings.ToLower(description)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.category, rule.kind
			}
		}
	}
	if amount.IsPositive() {
		return "other", core.Expense
	}
	return "other", core.Income
}
