package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSortExpenses_DateDescThenIDDesc(t *testing.T) {
	expenses := []*Expense{
		{ID: "a", Date: day("2024-06-01")},
		{ID: "c", Date: day("2024-06-15")},
		{ID: "b", Date: day("2024-06-15")},
		{ID: "d", Date: day("2024-05-30")},
	}

	SortExpenses(expenses)

	want := []string{"c", "b", "a", "d"}
	for i, id := range want {
		if expenses[i].ID != id {
			t.Fatalf("position %d: got %s, want %s", i, expenses[i].ID, id)
		}
	}
}

func TestExpenseFilter_InclusiveBounds(t *testing.T) {
	start := day("2024-06-01")
	end := day("2024-06-30")
	f := ExpenseFilter{StartDate: &start, EndDate: &end}

	if !f.Matches(&Expense{Date: day("2024-06-01")}) {
		t.Error("start date should be inclusive")
	}
	if !f.Matches(&Expense{Date: day("2024-06-30")}) {
		t.Error("end date should be inclusive")
	}
	if f.Matches(&Expense{Date: day("2024-05-31")}) {
		t.Error("date before start should not match")
	}
	if f.Matches(&Expense{Date: day("2024-07-01")}) {
		t.Error("date after end should not match")
	}
}

func TestExpenseFilter_Category(t *testing.T) {
	catFood := "food"
	uncategorized := ""

	anyCategory := ExpenseFilter{}
	if !anyCategory.Matches(&Expense{CategoryID: "food", Date: day("2024-06-01")}) {
		t.Error("nil category filter should match categorized expense")
	}
	if !anyCategory.Matches(&Expense{Date: day("2024-06-01")}) {
		t.Error("nil category filter should match uncategorized expense")
	}

	onlyFood := ExpenseFilter{CategoryID: &catFood}
	if !onlyFood.Matches(&Expense{CategoryID: "food", Date: day("2024-06-01")}) {
		t.Error("category filter should match same category")
	}
	if onlyFood.Matches(&Expense{CategoryID: "rent", Date: day("2024-06-01")}) {
		t.Error("category filter should not match other category")
	}

	onlyUncategorized := ExpenseFilter{CategoryID: &uncategorized}
	if !onlyUncategorized.Matches(&Expense{Date: day("2024-06-01")}) {
		t.Error("empty category filter should match uncategorized expense")
	}
	if onlyUncategorized.Matches(&Expense{CategoryID: "food", Date: day("2024-06-01")}) {
		t.Error("empty category filter should not match categorized expense")
	}
}

func TestSumAmountBase_ExactDecimalSum(t *testing.T) {
	expenses := []*Expense{
		{AmountBase: dec("0.10")},
		{AmountBase: dec("0.20")},
		{AmountBase: dec("829.99")},
	}

	total := SumAmountBase(expenses)
	if !total.Equal(dec("830.29")) {
		t.Fatalf("total = %s, want 830.29", total)
	}

	if !SumAmountBase(nil).Equal(decimal.Zero) {
		t.Fatal("empty sum should be zero")
	}
}

func TestExpenseEnteredFields(t *testing.T) {
	usd := dec("10.00")
	converted := &Expense{AmountBase: dec("830.00"), OriginalAmount: &usd, OriginalCurrency: "USD"}
	if converted.EnteredCurrency("INR") != "USD" {
		t.Error("converted expense should report original currency")
	}
	if !converted.EnteredAmount().Equal(usd) {
		t.Error("converted expense should report original amount")
	}

	native := &Expense{AmountBase: dec("100.00")}
	if native.EnteredCurrency("INR") != "INR" {
		t.Error("native expense should report base currency")
	}
	if !native.EnteredAmount().Equal(dec("100.00")) {
		t.Error("native expense should report base amount")
	}
}
