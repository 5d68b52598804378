package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"budget/internal/core"
)

func TestParse(t *testing.T) {
	input := `Date,Description,Amount
2024-03-01,PAYROLL DEPOSIT ACME,-3000.00
2024-03-02,GROCERY MART,54.20
2024-03-03,SHELL GAS STATION,40.00
2024-03-04,NETFLIX.COM,12.99
2024-03-05,TRANSFER TO SAVINGS,200.00
`
	res, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if res.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", res.Skipped)
	}
	if len(res.Entries) != 5 {
		t.Fatalf("got %d entries, want 5", len(res.Entries))
	}

	want := []struct {
		category string
		kind     core.Kind
		amount   string
	}{
		{"salary", core.Income, "3000"},
		{"food", core.Expense, "54.2"},
		{"transportation", core.Expense, "40"},
		{"entertainment", core.Expense, "12.99"},
		{"emergency", core.Savings, "200"},
	}
	for i, w := range want {
		e := res.Entries[i]
		if e.Category != w.category || e.Kind != w.kind {
			t.Errorf("entry %d: (%s, %s), want (%s, %s)", i, e.Category, e.Kind, w.category, w.kind)
		}
		if !e.Amount.Equal(decimal.RequireFromString(w.amount)) {
			t.Errorf("entry %d: amount = %s, want %s", i, e.Amount, w.amount)
		}
		if e.Amount.IsNegative() {
			t.Errorf("entry %d: negative amount stored", i)
		}
	}

	if got := res.Entries[0].Date.Format("2006-01-02"); got != "2024-03-01" {
		t.Errorf("first entry date = %s, want 2024-03-01", got)
	}
}

func TestParse_HeaderVariants(t *testing.T) {
	input := `Transaction Date,Memo,Debit
03/15/2024,"STARBUCKS CAFE #123","$5.75"
`
	res, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(res.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(res.Entries))
	}
	e := res.Entries[0]
	if e.Category != "food" || e.Kind != core.Expense {
		t.Errorf("categorized as (%s, %s), want (food, expense)", e.Category, e.Kind)
	}
	if !e.Amount.Equal(decimal.RequireFromString("5.75")) {
		t.Errorf("amount = %s, want 5.75", e.Amount)
	}
	if got := e.Date.Format("2006-01-02"); got != "2024-03-15" {
		t.Errorf("date = %s, want 2024-03-15", got)
	}
}

func TestParse_MissingColumns(t *testing.T) {
	input := `Foo,Bar
1,2
`
	_, err := Parse(strings.NewReader(input))
	if !errors.Is(err, ErrMissingColumns) {
		t.Errorf("Parse() error = %v, want ErrMissingColumns", err)
	}
}

func TestParse_NoData(t *testing.T) {
	_, err := Parse(strings.NewReader("Date,Description,Amount\n"))
	if !errors.Is(err, ErrNoData) {
		t.Errorf("Parse() error = %v, want ErrNoData", err)
	}
}

func TestParse_SkipsBadRows(t *testing.T) {
	input := `Date,Description,Amount
2024-03-01,VALID ROW,10.00
2024-03-02,BAD AMOUNT,abc
not-a-date,BAD DATE,5.00
`
	res, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(res.Entries) != 1 {
		t.Errorf("got %d entries, want 1", len(res.Entries))
	}
	if res.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", res.Skipped)
	}
}

func TestCategorize_SignFallback(t *testing.T) {
	tests := []struct {
		name     string
		desc     string
		amount   string
		category string
		kind     core.Kind
	}{
		{"positive unknown is a charge", "MYSTERY VENDOR", "25.00", "other", core.Expense},
		{"negative unknown is a credit", "MYSTERY REFUND", "-25.00", "other", core.Income},
		{"keyword beats sign", "PAYROLL ACME", "3000.00", "salary", core.Income},
		{"medical keyword", "CITY PHARMACY", "14.00", "healthcare", core.Expense},
		{"utility keyword", "ELECTRIC COMPANY", "90.00", "utilities", core.Expense},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, kind := Categorize(tt.desc, decimal.RequireFromString(tt.amount))
			if category != tt.category || kind != tt.kind {
				t.Errorf("Categorize(%q) = (%s, %s), want (%s, %s)",
					tt.desc, category, kind, tt.category, tt.kind)
			}
		})
	}
}
