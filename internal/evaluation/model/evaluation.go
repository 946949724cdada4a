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

package model

import (
	"github.com/shopspring/decimal"

	"github.com/tradeops/pricing-rules-service/internal/money"
)

// EvaluationRequest is the request body of the price evaluation endpoint.
// BasePrice is a decimal string such as "100.00". TargetEntity and TargetId
// default to "service" and ServiceId when omitted.
type EvaluationRequest struct {
	BasePrice          string `json:"base_price"`
	Currency           string `json:"currency,omitempty"`
	Quantity           int    `json:"quantity"`
	CustomerCategoryId string `json:"customer_category_id,omitempty"`
	ServiceId          string `json:"service_id,omitempty"`
	PackageId          string `json:"package_id,omitempty"`
	TargetEntity       string `json:"target_entity,omitempty"`
	TargetId           string `json:"target_id,omitempty"`
}

// AppliedAdjustment records one rule application as a before/after step.
type AppliedAdjustment struct {
	RuleId          string          `json:"rule_id"`
	RuleName        string          `json:"rule_name"`
	RuleType        string          `json:"rule_type"`
	AdjustmentType  string          `json:"adjustment_type"`
	AdjustmentValue decimal.Decimal `json:"adjustment_value"`
	PriceBefore     money.Amount    `json:"price_before"`
	PriceAfter      money.Amount    `json:"price_after"`
}

// AppliedRule is the rule reference listed on the result, carrying the
// price the evaluation held after the rule was applied.
type AppliedRule struct {
	RuleId          string          `json:"rule_id"`
	RuleName        string          `json:"rule_name"`
	RuleType        string          `json:"rule_type"`
	AdjustmentType  string          `json:"adjustment_type"`
	AdjustmentValue decimal.Decimal `json:"adjustment_value"`
	NewPrice        money.Amount    `json:"new_price"`
	Priority        int             `json:"priority"`
}

// ABACContext describes how the acting user's attributes constrained the
// evaluation.
type ABACContext struct {
	CanOverride       bool            `json:"can_override"`
	UserRestrictions  []string        `json:"user_restrictions"`
	UserDiscountLimit decimal.Decimal `json:"user_discount_limit"`
	ABACFailed        bool            `json:"abac_failed,omitempty"`
}

// EvaluationSummary aggregates the discount applied across the whole
// evaluation.
type EvaluationSummary struct {
	TotalDiscount           money.Amount    `json:"total_discount"`
	TotalDiscountPercentage decimal.Decimal `json:"total_discount_percentage"`
	RequiresApproval        bool            `json:"requires_approval"`
}

// EvaluationResult is the response body of the price evaluation endpoint.
// BasePriceAfterABAC is the per-unit price once the discount ceiling has
// been applied; it equals FinalPrice and is kept as a separate field for
// callers that read the gated unit price directly.
type EvaluationResult struct {
	OriginalPrice      money.Amount        `json:"original_price"`
	FinalPrice         money.Amount        `json:"final_price"`
	BasePriceAfterABAC money.Amount        `json:"base_price_after_abac"`
	TotalAmount        money.Amount        `json:"total_amount"`
	Adjustments        []AppliedAdjustment `json:"adjustments"`
	AppliedRules       []AppliedRule       `json:"applied_rules"`
	ABACContext        ABACContext         `json:"abac_context"`
	Summary            EvaluationSummary   `json:"summary"`
}
