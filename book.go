package moneybook

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sentinel errors surfaced by book mutators. They are always wrapped with
// context; test with errors.Is.
var (
	// ErrNotFound is returned by mutations referencing an unknown id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when a required field is missing or not numeric.
	ErrInvalidInput = errors.New("invalid input")
)

// Book is the whole collection persisted for one user: cash transactions,
// valued assets, and saved advisory insights.
//
// Mutators never touch entries they were not asked about, and a failed
// mutation leaves the book unchanged. The book itself provides no locking:
// callers serialize writes to a given book (one logical session at a time).
type Book struct {
	name         string
	Transactions []*Transaction
	Assets       []*Asset
	Insights     []*Insight

	// now is the injected clock, settable in tests. Nil means time.Now.
	now func() time.Time
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{}
}

// Name returns the book's name, set by the loader from its file path.
func (b *Book) Name() string { return b.name }

// SetName sets the book's name, used by the loader to locate its file.
func (b *Book) SetName(name string) { b.name = name }

// SetClock injects the wall clock used for LastUpdated stamps.
func (b *Book) SetClock(now func() time.Time) { b.now = now }

func (b *Book) timestamp() time.Time {
	if b.now != nil {
		return b.now()
	}
	return time.Now()
}

// ParseAmount parses a user-supplied numeric string into an amount.
// Failures are reported as ErrInvalidInput.
func ParseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("missing required amount: %w", ErrInvalidInput)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount %q is not numeric: %w", s, ErrInvalidInput)
	}
	return d, nil
}

// Asset returns the asset with the given id, or ErrNotFound.
func (b *Book) Asset(id string) (*Asset, error) {
	for _, a := range b.Assets {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("asset %q: %w", id, ErrNotFound)
}

// AssetSpec carries the caller-provided fields for a new asset.
type AssetSpec struct {
	Name           string
	Type           AssetType
	PurchaseAmount decimal.Decimal
	InitialValue   decimal.Decimal
	Date           Date // the asset's creation day; callers default it to today
	Ticker         string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
}

// AddAsset creates a new asset: it allocates an id, sets the creation date,
// and seeds the history with a single snapshot {spec.Date, spec.InitialValue}.
// On rejection the book is not mutated.
func (b *Book) AddAsset(spec AssetSpec) (*Asset, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("asset name is required: %w", ErrInvalidInput)
	}
	if spec.Date.IsZero() {
		return nil, fmt.Errorf("asset creation date is required: %w", ErrInvalidInput)
	}
	if spec.PurchaseAmount.IsNegative() || spec.InitialValue.IsNegative() {
		return nil, fmt.Errorf("amounts cannot be negative: %w", ErrInvalidInput)
	}
	a := &Asset{
		ID:             uuid.NewString(),
		Name:           spec.Name,
		Type:           spec.Type,
		PurchaseAmount: spec.PurchaseAmount,
		CurrentValue:   spec.InitialValue,
		LastUpdated:    b.timestamp(),
		CreatedAt:      spec.Date,
		Ticker:         spec.Ticker,
		Quantity:       spec.Quantity,
		UnitPrice:      spec.UnitPrice,
	}
	a.History.Append(spec.Date, spec.InitialValue)
	b.Assets = append(b.Assets, a)
	return a, nil
}

// ValueUpdate names one asset and the newly observed value to record for it.
// UnitPrice and Quantity are partial updates: a zero value leaves the
// asset's corresponding field unchanged.
type ValueUpdate struct {
	AssetID   string
	Value     decimal.Decimal
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
}

// RecordValue records a newly observed value for an asset as of the given
// day. If the history already holds a snapshot for that exact day, its
// value is overwritten in place; otherwise a new snapshot is appended.
// CurrentValue and LastUpdated are refreshed either way.
//
// When a bulk market refresh and a manual edit touch the same asset on the
// same day, the last call wins.
func (b *Book) RecordValue(u ValueUpdate, on Date) (*Asset, error) {
	a, err := b.Asset(u.AssetID)
	if err != nil {
		return nil, err
	}
	if on.IsZero() {
		return nil, fmt.Errorf("record date is required: %w", ErrInvalidInput)
	}
	a.History.Append(on, u.Value)
	a.CurrentValue = u.Value
	if !u.UnitPrice.IsZero() {
		a.UnitPrice = u.UnitPrice
	}
	if !u.Quantity.IsZero() {
		a.Quantity = u.Quantity
	}
	a.LastUpdated = b.timestamp()
	return a, nil
}

// RecordValues applies RecordValue to every named asset as a single
// logical batch, all stamped with the same day. One entry's failure does
// not block the others: the applied subset is returned along with the
// joined errors of the entries that failed.
func (b *Book) RecordValues(updates []ValueUpdate, on Date) ([]*Asset, error) {
	var applied []*Asset
	var errs error
	for _, u := range updates {
		a, err := b.RecordValue(u, on)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		applied = append(applied, a)
	}
	return applied, errs
}

// RetireAsset logically deletes an asset as of the given day. History is
// untouched: the asset stays visible to valuation queries for days before
// the deletion date, and excluded from any day on or after it.
func (b *Book) RetireAsset(id string, on Date) (*Asset, error) {
	a, err := b.Asset(id)
	if err != nil {
		return nil, err
	}
	if on.IsZero() {
		return nil, fmt.Errorf("deletion date is required: %w", ErrInvalidInput)
	}
	a.DeletedAt = on
	a.LastUpdated = b.timestamp()
	return a, nil
}

// Transaction returns the transaction with the given id, or ErrNotFound.
func (b *Book) Transaction(id string) (*Transaction, error) {
	for _, tx := range b.Transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, fmt.Errorf("transaction %q: %w", id, ErrNotFound)
}

// AddTransaction records a new cash movement and returns it.
func (b *Book) AddTransaction(on Date, typ TransactionType, category Category, amount decimal.Decimal, description string) (*Transaction, error) {
	if on.IsZero() {
		return nil, fmt.Errorf("transaction date is required: %w", ErrInvalidInput)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("transaction amount cannot be negative: %w", ErrInvalidInput)
	}
	tx := &Transaction{
		ID:          uuid.NewString(),
		Date:        on,
		Type:        typ,
		Category:    category,
		Amount:      amount,
		Description: description,
	}
	b.Transactions = append(b.Transactions, tx)
	b.sortTransactions()
	return tx, nil
}

// UpdateTransaction replaces the fields of the transaction with the given
// id, keeping the id itself.
func (b *Book) UpdateTransaction(id string, on Date, typ TransactionType, category Category, amount decimal.Decimal, description string) (*Transaction, error) {
	tx, err := b.Transaction(id)
	if err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("transaction amount cannot be negative: %w", ErrInvalidInput)
	}
	tx.Date = on
	tx.Type = typ
	tx.Category = category
	tx.Amount = amount
	tx.Description = description
	b.sortTransactions()
	return tx, nil
}

// DeleteTransaction removes the transaction with the given id.
func (b *Book) DeleteTransaction(id string) error {
	for i, tx := range b.Transactions {
		if tx.ID == id {
			b.Transactions = slices.Delete(b.Transactions, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("transaction %q: %w", id, ErrNotFound)
}

// sortTransactions keeps the book in chronological order. The sort is
// stable: transactions on the same day keep their relative order.
func (b *Book) sortTransactions() {
	slices.SortStableFunc(b.Transactions, func(x, y *Transaction) int {
		if x.Date.Before(y.Date) {
			return -1
		}
		if x.Date.After(y.Date) {
			return 1
		}
		return 0
	})
}

// SaveInsight prepends a new advisory report, keeping at most the
// maxInsights most recent ones.
func (b *Book) SaveInsight(in *Insight) {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	b.Insights = append([]*Insight{in}, b.Insights...)
	if len(b.Insights) > maxInsights {
		b.Insights = b.Insights[:maxInsights]
	}
}
