package moneybook

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AssetType classifies a holding. Exactly one type, Loan, has liability
// semantics: it counts negatively toward net worth. All others count
// positively.
type AssetType int

const (
	Cash AssetType = iota
	Savings
	Bond
	Stock
	Crypto
	Car
	RealEstate
	Commodity
	Loan
)

func (t AssetType) String() string {
	switch t {
	case Cash:
		return "cash"
	case Savings:
		return "savings"
	case Bond:
		return "bond"
	case Stock:
		return "stock"
	case Crypto:
		return "crypto"
	case Car:
		return "car"
	case RealEstate:
		return "real-estate"
	case Commodity:
		return "commodity"
	case Loan:
		return "loan"
	default:
		return "unknown"
	}
}

// ParseAssetType parses a string into an AssetType.
func ParseAssetType(s string) (AssetType, error) {
	for _, t := range AssetTypes() {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown asset type: %q", s)
}

// AssetTypes returns all asset types in display order: liquid to illiquid,
// liabilities last. This ordering is part of the report contract.
func AssetTypes() []AssetType {
	return []AssetType{Cash, Savings, Bond, Stock, Crypto, Car, RealEstate, Commodity, Loan}
}

// IsLiability reports whether the type contributes negatively to net worth.
func (t AssetType) IsLiability() bool { return t == Loan }

// displayRank returns the position of t in the fixed display ordering.
func (t AssetType) displayRank() int {
	for i, o := range AssetTypes() {
		if o == t {
			return i
		}
	}
	return len(AssetTypes())
}

// Market reports whether assets of this type can be linked to a market
// ticker and refreshed from the price oracle.
func (t AssetType) Market() bool { return t == Stock || t == Crypto }

func (t AssetType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *AssetType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAssetType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Asset represents one holding or liability.
//
// Identity and classification are immutable after creation, as is
// PurchaseAmount. CurrentValue is the latest known value and History the
// sparse log of dated observations behind it. The asset is active on the
// half-open window [CreatedAt, DeletedAt); a zero DeletedAt means the
// asset was never retired.
type Asset struct {
	ID             string
	Name           string
	Type           AssetType
	PurchaseAmount decimal.Decimal
	CurrentValue   decimal.Decimal
	History        History
	LastUpdated    time.Time // wall clock of the last mutation, not a calendar date
	CreatedAt      Date
	DeletedAt      Date

	// Market-linked fields, present only for Stock and Crypto assets.
	Ticker    string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// ActiveOn reports whether the asset counts toward valuation on the given
// day: CreatedAt <= on < DeletedAt, with an absent DeletedAt treated as
// unbounded future.
func (a *Asset) ActiveOn(on Date) bool {
	if on.Before(a.CreatedAt) {
		return false
	}
	if !a.DeletedAt.IsZero() && !on.Before(a.DeletedAt) {
		return false
	}
	return true
}

// Retired reports whether the asset has been logically deleted.
func (a *Asset) Retired() bool { return !a.DeletedAt.IsZero() }

// Gain returns the difference between the latest known value and the
// original acquisition cost.
func (a *Asset) Gain() decimal.Decimal { return a.CurrentValue.Sub(a.PurchaseAmount) }

// MarshalJSON writes the asset with a stable field order, omitting unset
// optional fields.
func (a Asset) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", a.ID)
	w.Append("name", a.Name)
	w.Append("type", a.Type)
	w.Append("purchaseAmount", a.PurchaseAmount)
	w.Append("currentValue", a.CurrentValue)
	w.Append("history", a.History)
	w.Append("lastUpdated", a.LastUpdated.UTC().Format(time.RFC3339))
	w.Append("createdAt", a.CreatedAt)
	w.Optional("deletedAt", a.DeletedAt)
	w.Optional("ticker", a.Ticker)
	if !a.Quantity.IsZero() {
		w.Append("quantity", a.Quantity)
	}
	if !a.UnitPrice.IsZero() {
		w.Append("unitPrice", a.UnitPrice)
	}
	return w.MarshalJSON()
}

func (a *Asset) UnmarshalJSON(data []byte) error {
	var j struct {
		ID             string          `json:"id"`
		Name           string          `json:"name"`
		Type           AssetType       `json:"type"`
		PurchaseAmount decimal.Decimal `json:"purchaseAmount"`
		CurrentValue   decimal.Decimal `json:"currentValue"`
		History        History         `json:"history"`
		LastUpdated    time.Time       `json:"lastUpdated"`
		CreatedAt      Date            `json:"createdAt"`
		DeletedAt      *Date           `json:"deletedAt"`
		Ticker         string          `json:"ticker"`
		Quantity       decimal.Decimal `json:"quantity"`
		UnitPrice      decimal.Decimal `json:"unitPrice"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*a = Asset{
		ID:             j.ID,
		Name:           j.Name,
		Type:           j.Type,
		PurchaseAmount: j.PurchaseAmount,
		CurrentValue:   j.CurrentValue,
		History:        j.History,
		LastUpdated:    j.LastUpdated,
		CreatedAt:      j.CreatedAt,
		Ticker:         j.Ticker,
		Quantity:       j.Quantity,
		UnitPrice:      j.UnitPrice,
	}
	if j.DeletedAt != nil {
		a.DeletedAt = *j.DeletedAt
	}
	return nil
}

var _ json.Marshaler = Asset{}
var _ json.Unmarshaler = (*Asset)(nil)
