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
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tradeops/pricing-rules-service/internal/evaluation/abac"
	evalmodel "github.com/tradeops/pricing-rules-service/internal/evaluation/model"
	evalservice "github.com/tradeops/pricing-rules-service/internal/evaluation/service"
	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/model"
	ruleservice "github.com/tradeops/pricing-rules-service/internal/pricing_rules/service"
	"github.com/tradeops/pricing-rules-service/internal/system/constants"
	"github.com/tradeops/pricing-rules-service/internal/system/security"
)

type staticAttrProvider struct {
	attrs abac.UserAttributes
}

func (p *staticAttrProvider) GetUserAttributes(ctx context.Context, orgHandle, userID string) (
	abac.UserAttributes, error) {
	return p.attrs, nil
}

// TestEvaluateAgainstStoredRules runs the evaluation engine against rules
// persisted in the real store.
func TestEvaluateAgainstStoredRules(t *testing.T) {

	orgHandle := fmt.Sprintf("eval-org-%d", time.Now().UnixNano())
	ruleService := ruleservice.GetPricingRuleService()

	discount := model.PricingRule{
		Name:     "Wholesale discount",
		RuleType: constants.RuleTypeCustomerCategory,
		Conditions: model.RuleConditions{
			CustomerCategory: &model.CustomerCategoryCondition{CustomerCategoryId: "wholesale"},
		},
		AdjustmentType:  constants.AdjustmentPercentage,
		AdjustmentValue: decimal.NewFromInt(20),
		TargetEntity:    constants.TargetService,
		Priority:        50,
		IsActive:        true,
	}
	_, err := ruleService.AddPricingRule(discount, orgHandle)
	require.NoError(t, err)

	attrProvider := &staticAttrProvider{attrs: abac.UserAttributes{
		UserID:             "agent-1",
		Role:               "sales_agent",
		MaxDiscountPercent: decimal.NewFromInt(25),
		CanOverride:        false,
	}}
	evaluationService := evalservice.GetEvaluationService(ruleService, attrProvider)

	actor := security.ActingUser{UserID: "agent-1", OrgHandle: orgHandle, Role: "sales_agent"}
	request := evalmodel.EvaluationRequest{
		BasePrice:          "100.00",
		Quantity:           2,
		CustomerCategoryId: "wholesale",
		ServiceId:          "svc-1",
	}

	result, err := evaluationService.EvaluatePrice(context.Background(), orgHandle, actor, request)
	require.NoError(t, err)

	require.Equal(t, "100.00", result.OriginalPrice.String())
	require.Equal(t, "80.00", result.FinalPrice.String())
	require.Equal(t, "160.00", result.TotalAmount.String())
	require.Len(t, result.AppliedRules, 1)
	require.False(t, result.Summary.RequiresApproval)
}
