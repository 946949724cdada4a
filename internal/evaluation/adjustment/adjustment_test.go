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

package adjustment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tradeops/pricing-rules-service/internal/money"
	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/model"
	"github.com/tradeops/pricing-rules-service/internal/system/constants"
)

func rule(adjustmentType string, value string) model.PricingRule {
	v, _ := decimal.NewFromString(value)
	return model.PricingRule{
		RuleId:          "rule-1",
		Name:            "Test rule",
		RuleType:        constants.RuleTypeCustomerCategory,
		AdjustmentType:  adjustmentType,
		AdjustmentValue: v,
	}
}

func usd(value string) money.Amount {
	a, _ := money.FromString(value, "USD")
	return a
}

func TestApplyPercentage(t *testing.T) {

	t.Run("Twenty_percent_off_hundred", func(t *testing.T) {
		next, step, err := Apply(usd("100.00"), rule(constants.AdjustmentPercentage, "20"))
		require.NoError(t, err)
		require.Equal(t, "80.00", next.String())
		require.Equal(t, "100.00", step.PriceBefore.String())
		require.Equal(t, "80.00", step.PriceAfter.String())
	})

	t.Run("Rounds_once_per_step", func(t *testing.T) {
		// 33.335 discount rounds half-up to 33.34.
		next, _, err := Apply(usd("66.67"), rule(constants.AdjustmentPercentage, "50"))
		require.NoError(t, err)
		require.Equal(t, "33.33", next.String())
	})

	t.Run("Hundred_percent_reaches_zero", func(t *testing.T) {
		next, _, err := Apply(usd("59.99"), rule(constants.AdjustmentPercentage, "100"))
		require.NoError(t, err)
		require.True(t, next.IsZero())
	})
}

func TestApplyFixed(t *testing.T) {

	t.Run("Subtracts_amount", func(t *testing.T) {
		next, _, err := Apply(usd("50.00"), rule(constants.AdjustmentFixed, "15.50"))
		require.NoError(t, err)
		require.Equal(t, "34.50", next.String())
	})

	t.Run("Clamps_at_zero", func(t *testing.T) {
		next, _, err := Apply(usd("10.00"), rule(constants.AdjustmentFixed, "25.00"))
		require.NoError(t, err)
		require.Equal(t, "0.00", next.String())
	})
}

func TestApplyOverride(t *testing.T) {

	next, step, err := Apply(usd("100.00"), rule(constants.AdjustmentOverride, "60.00"))
	require.NoError(t, err)
	require.Equal(t, "60.00", next.String())
	require.Equal(t, constants.AdjustmentOverride, step.AdjustmentType)
}

func TestApplyUnknownType(t *testing.T) {

	_, _, err := Apply(usd("100.00"), rule("surcharge", "10"))
	require.Error(t, err)
}
