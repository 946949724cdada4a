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

// Package abac enforces attribute based limits on an evaluated price.
// The acting user's discount ceiling caps the effective discount; users
// without the override attribute exceed their ceiling only with approval.
package abac

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/tradeops/pricing-rules-service/internal/money"
	errors2 "github.com/tradeops/pricing-rules-service/internal/system/errors"
)

var hundred = decimal.NewFromInt(100)

// UserAttributes are the acting user's pricing related attributes.
type UserAttributes struct {
	UserID             string
	Role               string
	MaxDiscountPercent decimal.Decimal
	CanOverride        bool
}

// Outcome is the result of applying the user's limits to a derived price.
type Outcome struct {
	FinalPrice       money.Amount
	DiscountPercent  decimal.Decimal
	Clamped          bool
	RequiresApproval bool
}

// FallbackAttributes returns the attributes used when the acting user's
// attributes cannot be resolved. The evaluation fails closed: no discount
// allowance and no override capability.
func FallbackAttributes(userID string) UserAttributes {

	return UserAttributes{
		UserID:             userID,
		Role:               "restricted",
		MaxDiscountPercent: decimal.Zero,
		CanOverride:        false,
	}
}

// Validate rejects malformed attribute sets before they can gate a price.
func (ua UserAttributes) Validate() error {

	if ua.Role == "" {
		return errors2.NewClientErrorWithDescription(errors2.INVALID_POLICY_CONTEXT,
			"Acting user role must not be empty.", http.StatusBadRequest)
	}
	if ua.MaxDiscountPercent.IsNegative() || ua.MaxDiscountPercent.Cmp(hundred) > 0 {
		return errors2.NewClientErrorWithDescription(errors2.INVALID_POLICY_CONTEXT,
			fmt.Sprintf("max_discount_percent must be within [0, 100], got %s.",
				ua.MaxDiscountPercent.String()), http.StatusBadRequest)
	}
	return nil
}

// Evaluate applies the user's discount ceiling to the rule-derived price.
// When the effective discount exceeds the ceiling, users who can override
// keep the derived price but the evaluation requires approval; users who
// cannot have the price clamped to exactly the ceiling.
func Evaluate(attrs UserAttributes, original, derived money.Amount) (Outcome, error) {

	if err := attrs.Validate(); err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{FinalPrice: derived}

	// A raised price carries no discount and is never gated.
	if derived.Cmp(original) >= 0 || original.IsZero() {
		return outcome, nil
	}

	diff, err := original.Sub(derived)
	if err != nil {
		return Outcome{}, err
	}
	outcome.DiscountPercent = diff.Decimal().Mul(hundred).Div(original.Decimal())

	if outcome.DiscountPercent.Cmp(attrs.MaxDiscountPercent) <= 0 {
		return outcome, nil
	}

	outcome.RequiresApproval = true
	if attrs.CanOverride {
		return outcome, nil
	}

	// Clamp to the ceiling: final = original * (100 - limit) / 100.
	outcome.FinalPrice = original.MulPercent(hundred.Sub(attrs.MaxDiscountPercent))
	outcome.DiscountPercent = attrs.MaxDiscountPercent
	outcome.Clamped = true
	return outcome, nil
}

// Restrictions renders the user's limits as display strings for the
// evaluation result.
func (ua UserAttributes) Restrictions() []string {

	restrictions := []string{
		fmt.Sprintf("max_discount_percent:%s", ua.MaxDiscountPercent.String()),
	}
	if !ua.CanOverride {
		restrictions = append(restrictions, "no_override")
	}
	return restrictions
}
