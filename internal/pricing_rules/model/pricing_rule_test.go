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
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tradeops/pricing-rules-service/internal/system/constants"
)

func validCategoryRule() PricingRule {
	return PricingRule{
		Name:     "Wholesale discount",
		RuleType: constants.RuleTypeCustomerCategory,
		Conditions: RuleConditions{
			CustomerCategory: &CustomerCategoryCondition{CustomerCategoryId: "wholesale"},
		},
		AdjustmentType:  constants.AdjustmentPercentage,
		AdjustmentValue: decimal.NewFromInt(20),
		TargetEntity:    constants.TargetService,
		Priority:        50,
		IsActive:        true,
	}
}

func TestValidate(t *testing.T) {

	t.Run("Valid_rule_passes", func(t *testing.T) {
		rule := validCategoryRule()
		require.NoError(t, rule.Validate())
	})

	t.Run("Missing_name", func(t *testing.T) {
		rule := validCategoryRule()
		rule.Name = ""
		require.Error(t, rule.Validate())
	})

	t.Run("Unknown_rule_type", func(t *testing.T) {
		rule := validCategoryRule()
		rule.RuleType = "seasonal"
		require.Error(t, rule.Validate())
	})

	t.Run("Unknown_adjustment_type", func(t *testing.T) {
		rule := validCategoryRule()
		rule.AdjustmentType = "surcharge"
		require.Error(t, rule.Validate())
	})

	t.Run("Priority_out_of_range", func(t *testing.T) {
		rule := validCategoryRule()
		rule.Priority = 0
		require.Error(t, rule.Validate())

		rule.Priority = 101
		require.Error(t, rule.Validate())
	})

	t.Run("Validity_window_inverted", func(t *testing.T) {
		rule := validCategoryRule()
		rule.ValidFrom = 2000
		rule.ValidUntil = 1000
		require.Error(t, rule.Validate())
	})

	t.Run("Percentage_above_hundred", func(t *testing.T) {
		rule := validCategoryRule()
		rule.AdjustmentValue = decimal.NewFromInt(150)
		require.Error(t, rule.Validate())
	})

	t.Run("Negative_fixed_adjustment", func(t *testing.T) {
		rule := validCategoryRule()
		rule.AdjustmentType = constants.AdjustmentFixed
		rule.AdjustmentValue = decimal.NewFromInt(-5)
		require.Error(t, rule.Validate())
	})

	t.Run("Condition_shape_must_match_rule_type", func(t *testing.T) {
		rule := validCategoryRule()
		rule.Conditions = RuleConditions{
			Quantity: &QuantityCondition{MinQuantity: 2},
		}
		require.Error(t, rule.Validate())
	})

	t.Run("Multiple_condition_shapes_rejected", func(t *testing.T) {
		rule := validCategoryRule()
		rule.Conditions.Quantity = &QuantityCondition{MinQuantity: 2}
		require.Error(t, rule.Validate())
	})
}

func TestValidateQuantityRule(t *testing.T) {

	quantityRule := func(min int, max *int) PricingRule {
		rule := validCategoryRule()
		rule.RuleType = constants.RuleTypeQuantity
		rule.Conditions = RuleConditions{
			Quantity: &QuantityCondition{MinQuantity: min, MaxQuantity: max},
		}
		return rule
	}

	t.Run("Open_ended_range", func(t *testing.T) {
		rule := quantityRule(5, nil)
		require.NoError(t, rule.Validate())
	})

	t.Run("Min_below_one", func(t *testing.T) {
		rule := quantityRule(0, nil)
		require.Error(t, rule.Validate())
	})

	t.Run("Max_below_min", func(t *testing.T) {
		max := 3
		rule := quantityRule(5, &max)
		require.Error(t, rule.Validate())
	})
}

func TestValidateTimeBasedRule(t *testing.T) {

	timeRule := func(days []string, start, end string) PricingRule {
		rule := validCategoryRule()
		rule.RuleType = constants.RuleTypeTimeBased
		rule.Conditions = RuleConditions{
			TimeBased: &TimeBasedCondition{DaysOfWeek: days, TimeOfDayStart: start, TimeOfDayEnd: end},
		}
		return rule
	}

	t.Run("Days_only", func(t *testing.T) {
		rule := timeRule([]string{"saturday", "sunday"}, "", "")
		require.NoError(t, rule.Validate())
	})

	t.Run("Unknown_day_name", func(t *testing.T) {
		rule := timeRule([]string{"caturday"}, "", "")
		require.Error(t, rule.Validate())
	})

	t.Run("Start_without_end", func(t *testing.T) {
		rule := timeRule([]string{"monday"}, "09:00", "")
		require.Error(t, rule.Validate())
	})

	t.Run("Cross_midnight_window_is_valid", func(t *testing.T) {
		rule := timeRule([]string{"friday"}, "22:00", "02:00")
		require.NoError(t, rule.Validate())
	})

	t.Run("Malformed_time", func(t *testing.T) {
		rule := timeRule([]string{"monday"}, "25:00", "26:00")
		require.Error(t, rule.Validate())
	})
}

func TestParseTimeOfDay(t *testing.T) {

	minutes, err := ParseTimeOfDay("14:30")
	require.NoError(t, err)
	require.Equal(t, 14*60+30, minutes)

	_, err = ParseTimeOfDay("14h30")
	require.Error(t, err)
}
