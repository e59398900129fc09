package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	// TransactionType is the closed set of transaction kinds. The sign of a
	// transaction is implied by its type; Amount is always a magnitude.
	TransactionType string

	// Transaction is a single income or expense record.
	Transaction struct {
		ID          int64           `json:"id"`
		Description string          `json:"description"`
		Amount      float64         `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Date        CalendarDate    `json:"date"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	// Settings is the persisted settings aggregate: the monthly spending goal
	// and the user's category list.
	Settings struct {
		MonthlyGoal float64  `json:"monthlyGoal"`
		Categories  []string `json:"categories"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

func (t TransactionType) String() string { return string(t) }

// ParseTransactionType parses a transaction type string.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.TrimSpace(strings.ToLower(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

func (tx Transaction) Validate() error {
	if len(strings.TrimSpace(tx.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(tx.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if tx.Amount < 0 {
		return ErrInvalidAmount
	}
	if !tx.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	return tx.Date.Validate()
}

// DefaultSettings returns the starter settings used to bootstrap a fresh
// ledger: a 500 monthly goal and the fixed starter category set.
func DefaultSettings() Settings {
	return Settings{
		MonthlyGoal: 500,
		Categories: []string{
			"Alimentação",
			"Transporte",
			"Moradia",
			"Lazer",
			"Saúde",
			"Educação",
			"Trabalho",
			"Outros",
		},
	}
}

// HasCategory reports whether name is already in the settings category list.
func (s Settings) HasCategory(name string) bool {
	for _, c := range s.Categories {
		if c == name {
			return true
		}
	}
	return false
}
