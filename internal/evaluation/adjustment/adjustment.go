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

// Package adjustment applies a single rule's price adjustment to a running
// unit price.
package adjustment

import (
	"fmt"

	evalmodel "github.com/tradeops/pricing-rules-service/internal/evaluation/model"
	"github.com/tradeops/pricing-rules-service/internal/money"
	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/model"
	"github.com/tradeops/pricing-rules-service/internal/system/constants"
)

// Apply applies the rule's adjustment to the current unit price and returns
// the new price together with the step record. Percentage and fixed
// adjustments are discounts and clamp at zero; an override replaces the
// price outright.
func Apply(current money.Amount, rule model.PricingRule) (money.Amount, evalmodel.AppliedAdjustment, error) {

	var next money.Amount
	switch rule.AdjustmentType {
	case constants.AdjustmentPercentage:
		discount := current.MulPercent(rule.AdjustmentValue)
		reduced, err := current.Sub(discount)
		if err != nil {
			return money.Amount{}, evalmodel.AppliedAdjustment{}, err
		}
		next = reduced.ClampNonNegative()
	case constants.AdjustmentFixed:
		reduced, err := current.Sub(money.FromDecimal(rule.AdjustmentValue, current.Currency()))
		if err != nil {
			return money.Amount{}, evalmodel.AppliedAdjustment{}, err
		}
		next = reduced.ClampNonNegative()
	case constants.AdjustmentOverride:
		next = money.FromDecimal(rule.AdjustmentValue, current.Currency())
	default:
		return money.Amount{}, evalmodel.AppliedAdjustment{},
			fmt.Errorf("unknown adjustment type: %s", rule.AdjustmentType)
	}

	step := evalmodel.AppliedAdjustment{
		RuleId:          rule.RuleId,
		RuleName:        rule.Name,
		RuleType:        rule.RuleType,
		AdjustmentType:  rule.AdjustmentType,
		AdjustmentValue: rule.AdjustmentValue,
		PriceBefore:     current,
		PriceAfter:      next,
	}
	return next, step, nil
}
