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

package integration

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/model"
	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/service"
	"github.com/tradeops/pricing-rules-service/internal/system/constants"
)

func TestPricingRuleLifecycle(t *testing.T) {

	orgHandle := fmt.Sprintf("pricing-org-%d", time.Now().UnixNano())
	ruleService := service.GetPricingRuleService()

	rule := model.PricingRule{
		Name:        "Wholesale discount",
		Description: "20 percent off for wholesale customers",
		RuleType:    constants.RuleTypeCustomerCategory,
		Conditions: model.RuleConditions{
			CustomerCategory: &model.CustomerCategoryCondition{CustomerCategoryId: "wholesale"},
		},
		AdjustmentType:  constants.AdjustmentPercentage,
		AdjustmentValue: decimal.NewFromInt(20),
		TargetEntity:    constants.TargetService,
		Priority:        50,
		IsActive:        true,
	}

	var ruleId string

	t.Run("Add_pricing_rule", func(t *testing.T) {
		created, err := ruleService.AddPricingRule(rule, orgHandle)
		require.NoError(t, err, "Failed to add pricing rule")
		require.NotEmpty(t, created.RuleId)
		require.Equal(t, orgHandle, created.OrgHandle)
		ruleId = created.RuleId
	})

	t.Run("Get_all_pricing_rules", func(t *testing.T) {
		rules, err := ruleService.GetPricingRules(orgHandle)
		require.NoError(t, err, "Failed to fetch pricing rules")
		require.Len(t, rules, 1)
		require.Equal(t, "Wholesale discount", rules[0].Name)
	})

	t.Run("Get_pricing_rule_by_id", func(t *testing.T) {
		fetched, err := ruleService.GetPricingRule(orgHandle, ruleId)
		require.NoError(t, err, "Failed to fetch pricing rule")
		require.Equal(t, constants.RuleTypeCustomerCategory, fetched.RuleType)
		require.NotNil(t, fetched.Conditions.CustomerCategory)
		require.Equal(t, "wholesale", fetched.Conditions.CustomerCategory.CustomerCategoryId)
		require.True(t, fetched.AdjustmentValue.Equal(decimal.NewFromInt(20)))
	})

	t.Run("Update_pricing_rule", func(t *testing.T) {
		updated := rule
		updated.AdjustmentValue = decimal.NewFromInt(25)
		updated.Priority = 60

		result, err := ruleService.UpdatePricingRule(ruleId, orgHandle, updated)
		require.NoError(t, err, "Failed to update pricing rule")
		require.True(t, result.AdjustmentValue.Equal(decimal.NewFromInt(25)))

		fetched, err := ruleService.GetPricingRule(orgHandle, ruleId)
		require.NoError(t, err)
		require.Equal(t, 60, fetched.Priority)
	})

	t.Run("Delete_pricing_rule", func(t *testing.T) {
		err := ruleService.DeletePricingRule(orgHandle, ruleId)
		require.NoError(t, err, "Failed to delete pricing rule")

		_, err = ruleService.GetPricingRule(orgHandle, ruleId)
		require.Error(t, err, "Deleted rule should not be found")
	})
}

func TestPricingRuleValidationAtCreate(t *testing.T) {

	orgHandle := fmt.Sprintf("pricing-org-%d", time.Now().UnixNano())
	ruleService := service.GetPricingRuleService()

	rule := model.PricingRule{
		Name:            "Bad rule",
		RuleType:        "seasonal",
		AdjustmentType:  constants.AdjustmentPercentage,
		AdjustmentValue: decimal.NewFromInt(10),
		TargetEntity:    constants.TargetService,
		Priority:        50,
	}

	_, err := ruleService.AddPricingRule(rule, orgHandle)
	require.Error(t, err, "Unknown rule_type must be rejected")
}

func TestTimeBasedRuleRoundTrip(t *testing.T) {

	orgHandle := fmt.Sprintf("pricing-org-%d", time.Now().UnixNano())
	ruleService := service.GetPricingRuleService()

	rule := model.PricingRule{
		Name:     "Happy hour",
		RuleType: constants.RuleTypeTimeBased,
		Conditions: model.RuleConditions{
			TimeBased: &model.TimeBasedCondition{
				DaysOfWeek:     []string{"friday", "saturday"},
				TimeOfDayStart: "22:00",
				TimeOfDayEnd:   "02:00",
			},
		},
		AdjustmentType:  constants.AdjustmentFixed,
		AdjustmentValue: decimal.RequireFromString("5.00"),
		TargetEntity:    constants.TargetService,
		TargetId:        "svc-drinks",
		Priority:        10,
		IsActive:        true,
	}

	created, err := ruleService.AddPricingRule(rule, orgHandle)
	require.NoError(t, err)

	fetched, err := ruleService.GetPricingRule(orgHandle, created.RuleId)
	require.NoError(t, err)
	require.NotNil(t, fetched.Conditions.TimeBased)
	require.ElementsMatch(t, []string{"friday", "saturday"}, fetched.Conditions.TimeBased.DaysOfWeek)
	require.Equal(t, "22:00", fetched.Conditions.TimeBased.TimeOfDayStart)
	require.Equal(t, "02:00", fetched.Conditions.TimeBased.TimeOfDayEnd)
}

func TestFindApplicableSnapshot(t *testing.T) {

	orgHandle := fmt.Sprintf("pricing-org-%d", time.Now().UnixNano())
	ruleService := service.GetPricingRuleService()

	active := model.PricingRule{
		Name:     "Active rule",
		RuleType: constants.RuleTypeQuantity,
		Conditions: model.RuleConditions{
			Quantity: &model.QuantityCondition{MinQuantity: 1},
		},
		AdjustmentType:  constants.AdjustmentPercentage,
		AdjustmentValue: decimal.NewFromInt(5),
		TargetEntity:    constants.TargetService,
		Priority:        20,
		IsActive:        true,
	}
	inactive := active
	inactive.Name = "Inactive rule"
	inactive.IsActive = false

	_, err := ruleService.AddPricingRule(active, orgHandle)
	require.NoError(t, err)
	_, err = ruleService.AddPricingRule(inactive, orgHandle)
	require.NoError(t, err)

	applicable, err := ruleService.FindApplicable(orgHandle, constants.TargetService, "svc-1")
	require.NoError(t, err)
	require.Len(t, applicable, 1)
	require.Equal(t, "Active rule", applicable[0].Name)
}

func TestDeleteFromAnotherOrgLeavesRuleIntact(t *testing.T) {

	ownerOrg := fmt.Sprintf("pricing-org-%d", time.Now().UnixNano())
	otherOrg := ownerOrg + "-other"
	ruleService := service.GetPricingRuleService()

	rule := model.PricingRule{
		Name:     "Weekend special",
		RuleType: constants.RuleTypeTimeBased,
		Conditions: model.RuleConditions{
			TimeBased: &model.TimeBasedCondition{
				DaysOfWeek:     []string{"saturday", "sunday"},
				TimeOfDayStart: "10:00",
				TimeOfDayEnd:   "16:00",
			},
		},
		AdjustmentType:  constants.AdjustmentPercentage,
		AdjustmentValue: decimal.NewFromInt(15),
		TargetEntity:    constants.TargetService,
		Priority:        30,
		IsActive:        true,
	}

	created, err := ruleService.AddPricingRule(rule, ownerOrg)
	require.NoError(t, err)

	// A delete issued under a different organization must not touch the
	// rule, and in particular must not strip its weekday rows.
	err = ruleService.DeletePricingRule(otherOrg, created.RuleId)
	require.Error(t, err, "Deleting another org's rule should not succeed")

	fetched, err := ruleService.GetPricingRule(ownerOrg, created.RuleId)
	require.NoError(t, err)
	require.NotNil(t, fetched.Conditions.TimeBased)
	require.ElementsMatch(t, []string{"saturday", "sunday"}, fetched.Conditions.TimeBased.DaysOfWeek)
}
