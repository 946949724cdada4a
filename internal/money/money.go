/*
 * Copyright (c) 2025, TradeOps Software Ltd. (https://www.tradeops.io).
 *
 * TradeOps Software Ltd. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package money provides a fixed-point monetary value type. All arithmetic
// preserves exact minor-unit precision; percentage multiplication rounds
// half-up to two minor-unit places, once per call. Floating point never
// enters the arithmetic.
package money

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	errors2 "github.com/tradeops/pricing-rules-service/internal/system/errors"
)

// minorUnitPlaces is the number of decimal places kept after rounding.
const minorUnitPlaces = 2

// Amount is an immutable monetary value: a fixed-point decimal plus a currency code.
type Amount struct {
	value    decimal.Decimal
	currency string
}

// FromString constructs an Amount from a decimal string such as "100.00".
func FromString(value, currency string) (Amount, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Amount{}, errors2.NewClientErrorWithDescription(errors2.INVALID_AMOUNT,
			fmt.Sprintf("%q is not a valid decimal amount.", value), http.StatusBadRequest)
	}
	return Amount{value: d, currency: currency}, nil
}

// FromStringNonNegative constructs an Amount that must not be negative.
func FromStringNonNegative(value, currency string) (Amount, error) {
	a, err := FromString(value, currency)
	if err != nil {
		return Amount{}, err
	}
	if a.IsNegative() {
		return Amount{}, errors2.NewClientErrorWithDescription(errors2.INVALID_AMOUNT,
			fmt.Sprintf("Amount %q must not be negative.", value), http.StatusBadRequest)
	}
	return a, nil
}

// FromMinorUnits constructs an Amount from integer minor units, e.g. 10000 -> 100.00.
func FromMinorUnits(units int64, currency string) Amount {
	return Amount{value: decimal.New(units, -minorUnitPlaces), currency: currency}
}

// FromDecimal wraps an existing decimal value as an Amount.
func FromDecimal(d decimal.Decimal, currency string) Amount {
	return Amount{value: d, currency: currency}
}

// Zero returns a zero Amount in the given currency.
func Zero(currency string) Amount {
	return Amount{value: decimal.Zero, currency: currency}
}

// Add returns a + b. Both operands must share a currency.
func (a Amount) Add(b Amount) (Amount, error) {
	if err := a.sameCurrency(b); err != nil {
		return Amount{}, err
	}
	return Amount{value: a.value.Add(b.value), currency: a.currency}, nil
}

// Sub returns a - b. Both operands must share a currency.
func (a Amount) Sub(b Amount) (Amount, error) {
	if err := a.sameCurrency(b); err != nil {
		return Amount{}, err
	}
	return Amount{value: a.value.Sub(b.value), currency: a.currency}, nil
}

// MulPercent returns pct percent of a, rounded half-up to minor-unit
// precision. The rounding happens here and nowhere else, so each adjustment
// step rounds exactly once.
func (a Amount) MulPercent(pct decimal.Decimal) Amount {
	v := a.value.Mul(pct).Div(decimal.NewFromInt(100)).Round(minorUnitPlaces)
	return Amount{value: v, currency: a.currency}
}

// MulInt returns a multiplied by an integer quantity.
func (a Amount) MulInt(n int64) Amount {
	return Amount{value: a.value.Mul(decimal.NewFromInt(n)), currency: a.currency}
}

// ClampNonNegative returns a, or zero if a is negative.
func (a Amount) ClampNonNegative() Amount {
	if a.value.IsNegative() {
		return Amount{value: decimal.Zero, currency: a.currency}
	}
	return a
}

// Cmp compares two amounts: -1 if a < b, 0 if equal, +1 if a > b.
func (a Amount) Cmp(b Amount) int {
	return a.value.Cmp(b.value)
}

// Equal reports whether a and b have the same numeric value and currency.
func (a Amount) Equal(b Amount) bool {
	return a.currency == b.currency && a.value.Equal(b.value)
}

func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

func (a Amount) IsNegative() bool {
	return a.value.IsNegative()
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Currency returns the currency code.
func (a Amount) Currency() string {
	return a.currency
}

// String renders the amount with minor-unit precision, e.g. "80.00".
func (a Amount) String() string {
	return a.value.StringFixed(minorUnitPlaces)
}

// MarshalJSON renders the amount as a decimal string, never a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

func (a Amount) sameCurrency(b Amount) error {
	if a.currency != b.currency {
		return fmt.Errorf("currency mismatch: %s vs %s", a.currency, b.currency)
	}
	return nil
}
