package moneybook

import "github.com/shopspring/decimal"

// dec is a helper for tests to create decimal values from consts.
func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
