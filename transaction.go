package moneybook

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionType tells whether a cash movement is money in or money out.
type TransactionType int

const (
	Income TransactionType = iota
	Expense
)

func (t TransactionType) String() string {
	switch t {
	case Income:
		return "income"
	case Expense:
		return "expense"
	default:
		return "unknown"
	}
}

// ParseTransactionType parses a string into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch s {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	default:
		return 0, fmt.Errorf("unknown transaction type: %q", s)
	}
}

func (t TransactionType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTransactionType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Category labels a transaction. The set is open: the book accepts any
// label, the CLI offers the standard ones.
type Category = string

// StandardCategories lists the categories the application proposes.
func StandardCategories() []Category {
	return []Category{
		"food", "transport", "shopping", "leisure", "health",
		"housing", "household", "salary", "investment", "other",
	}
}

// Transaction is a dated, typed, categorized cash movement. It is flat and
// immutable once created except via explicit replace-by-id or remove-by-id
// on the book.
type Transaction struct {
	ID          string
	Date        Date
	Type        TransactionType
	Category    Category
	Amount      decimal.Decimal
	Description string
}

// MarshalJSON writes the transaction with a stable field order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Append("type", t.Type)
	w.Append("category", t.Category)
	w.Append("amount", t.Amount)
	w.Optional("description", t.Description)
	return w.MarshalJSON()
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var j struct {
		ID          string          `json:"id"`
		Date        Date            `json:"date"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*t = Transaction{
		ID:          j.ID,
		Date:        j.Date,
		Type:        j.Type,
		Category:    j.Category,
		Amount:      j.Amount,
		Description: j.Description,
	}
	return nil
}

// Summary aggregates the cash movements of a date range.
type Summary struct {
	Range      Range
	Income     decimal.Decimal
	Expense    decimal.Decimal
	ByCategory map[Category]decimal.Decimal // expenses only
}

// Balance returns income minus expense for the summarized range.
func (s *Summary) Balance() decimal.Decimal { return s.Income.Sub(s.Expense) }

// Summarize computes income, expense and the per-category expense
// breakdown for all transactions falling in the range.
func Summarize(transactions []*Transaction, r Range) *Summary {
	s := &Summary{Range: r, ByCategory: make(map[Category]decimal.Decimal)}
	for _, tx := range transactions {
		if !r.Contains(tx.Date) {
			continue
		}
		switch tx.Type {
		case Income:
			s.Income = s.Income.Add(tx.Amount)
		case Expense:
			s.Expense = s.Expense.Add(tx.Amount)
			s.ByCategory[tx.Category] = s.ByCategory[tx.Category].Add(tx.Amount)
		}
	}
	return s
}
