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

package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/model"
	"github.com/tradeops/pricing-rules-service/internal/system/constants"
)

// Column positions of the condition columns within ruleRowArgs, matching
// the ruleColumns order.
const (
	argCustomerCategoryId = 5
	argMinQuantity        = 6
	argMaxQuantity        = 7
	argTimeOfDayStart     = 8
	argTimeOfDayEnd       = 9
	argPackageId          = 10
)

func baseRule(ruleType string, conditions model.RuleConditions) model.PricingRule {
	return model.PricingRule{
		RuleId:          "rule-1",
		OrgHandle:       "acme",
		Name:            "Test rule",
		RuleType:        ruleType,
		Conditions:      conditions,
		AdjustmentType:  constants.AdjustmentPercentage,
		AdjustmentValue: decimal.NewFromInt(10),
		TargetEntity:    constants.TargetService,
		Priority:        50,
		IsActive:        true,
	}
}

// The condition columns are NOT NULL in the schema, so columns not belonging
// to the rule's type must carry their zero values rather than SQL NULL.
func TestRuleRowArgsNeverEmitNullConditionColumns(t *testing.T) {

	maxQuantity := 10
	rules := map[string]model.PricingRule{
		"customer_category": baseRule(constants.RuleTypeCustomerCategory, model.RuleConditions{
			CustomerCategory: &model.CustomerCategoryCondition{CustomerCategoryId: "wholesale"},
		}),
		"quantity": baseRule(constants.RuleTypeQuantity, model.RuleConditions{
			Quantity: &model.QuantityCondition{MinQuantity: 5, MaxQuantity: &maxQuantity},
		}),
		"time_based": baseRule(constants.RuleTypeTimeBased, model.RuleConditions{
			TimeBased: &model.TimeBasedCondition{
				DaysOfWeek:     []string{"monday"},
				TimeOfDayStart: "09:00",
				TimeOfDayEnd:   "17:00",
			},
		}),
		"bundle": baseRule(constants.RuleTypeBundle, model.RuleConditions{
			Bundle: &model.BundleCondition{PackageId: "pkg-1"},
		}),
	}

	for name, rule := range rules {
		t.Run(name, func(t *testing.T) {
			args := ruleRowArgs(rule)
			for i, arg := range args {
				if i == argMaxQuantity {
					continue
				}
				require.NotNil(t, arg, "column index %d must not be SQL NULL", i)
			}
		})
	}
}

func TestRuleRowArgsZeroValuesForForeignConditionColumns(t *testing.T) {

	rule := baseRule(constants.RuleTypeQuantity, model.RuleConditions{
		Quantity: &model.QuantityCondition{MinQuantity: 5},
	})
	args := ruleRowArgs(rule)

	require.Equal(t, "", args[argCustomerCategoryId])
	require.Equal(t, 5, args[argMinQuantity])
	// Open-ended quantity ranges are the one nullable condition column.
	require.Nil(t, args[argMaxQuantity])
	require.Equal(t, "", args[argTimeOfDayStart])
	require.Equal(t, "", args[argTimeOfDayEnd])
	require.Equal(t, "", args[argPackageId])
}
