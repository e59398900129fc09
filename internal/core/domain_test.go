package core

import (
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		ID:          1,
		Description: "Supermercado",
		Amount:      120.50,
		Type:        Expense,
		Category:    "Alimentação",
		Date:        NewCalendarDate(2024, 5, 10),
		CreatedAt:   time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{name: "valid", mutate: func(*Transaction) {}},
		{name: "empty description", mutate: func(tx *Transaction) { tx.Description = "  " }, wantErr: ErrEmptyDescription},
		{name: "negative amount", mutate: func(tx *Transaction) { tx.Amount = -5 }, wantErr: ErrInvalidAmount},
		{name: "unknown type", mutate: func(tx *Transaction) { tx.Type = "transfer" }, wantErr: ErrInvalidType},
		{name: "empty category", mutate: func(tx *Transaction) { tx.Category = "" }, wantErr: ErrEmptyCategory},
		{name: "zero date", mutate: func(tx *Transaction) { tx.Date = CalendarDate{} }, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseTransactionType(t *testing.T) {
	if got, err := ParseTransactionType("income"); err != nil || got != Income {
		t.Errorf("ParseTransactionType(income) = %v, %v", got, err)
	}
	if got, err := ParseTransactionType(" Expense "); err != nil || got != Expense {
		t.Errorf("ParseTransactionType(' Expense ') = %v, %v", got, err)
	}
	if _, err := ParseTransactionType("transfer"); err == nil {
		t.Error("ParseTransactionType(transfer) should fail")
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"12.34", 12.34},
		{"12,34", 12.34},
		{" 100 ", 100},
		{"0", 0},
		{"abc", 0},
		{"", 0},
		{"NaN", 0},
	}

	for _, tt := range tests {
		if got := ParseAmount(tt.input); got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseAmountStrict(t *testing.T) {
	if _, err := ParseAmountStrict("0"); err == nil {
		t.Error("ParseAmountStrict(0) should fail")
	}
	if _, err := ParseAmountStrict("-5"); err == nil {
		t.Error("ParseAmountStrict(-5) should fail")
	}
	if v, err := ParseAmountStrict("42,50"); err != nil || v != 42.5 {
		t.Errorf("ParseAmountStrict(42,50) = %v, %v", v, err)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.MonthlyGoal != 500 {
		t.Errorf("MonthlyGoal = %v, want 500", s.MonthlyGoal)
	}
	if len(s.Categories) != 8 {
		t.Errorf("len(Categories) = %d, want 8", len(s.Categories))
	}
	if !s.HasCategory("Alimentação") || s.HasCategory("Inexistente") {
		t.Error("HasCategory misbehaves on default set")
	}
}
