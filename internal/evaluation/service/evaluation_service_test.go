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

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tradeops/pricing-rules-service/internal/evaluation/abac"
	evalmodel "github.com/tradeops/pricing-rules-service/internal/evaluation/model"
	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/model"
	"github.com/tradeops/pricing-rules-service/internal/system/config"
	errors2 "github.com/tradeops/pricing-rules-service/internal/system/errors"
	"github.com/tradeops/pricing-rules-service/internal/system/log"
	"github.com/tradeops/pricing-rules-service/internal/system/security"
)

const testOrg = "acme"

func TestMain(m *testing.M) {
	config.OverridePRSRuntime(config.Config{
		Log:     config.LogConfig{LogLevel: "ERROR"},
		Pricing: config.PricingConfig{DefaultCurrency: "USD"},
	})
	_ = log.Init("ERROR")
	m.Run()
}

type fakeRuleRepo struct {
	rules []model.PricingRule
	err   error
}

func (f *fakeRuleRepo) FindApplicable(orgHandle, targetEntity, targetId string) ([]model.PricingRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rules, nil
}

type fakeAttrProvider struct {
	attrs abac.UserAttributes
	err   error
	calls int
}

func (f *fakeAttrProvider) GetUserAttributes(ctx context.Context, orgHandle, userID string) (
	abac.UserAttributes, error) {
	f.calls++
	if f.err != nil {
		return abac.UserAttributes{}, f.err
	}
	return f.attrs, nil
}

func newService(repo *fakeRuleRepo, attrs *fakeAttrProvider) *EvaluationService {
	return &EvaluationService{
		ruleRepo: repo,
		attrs:    attrs,
		clock:    func() time.Time { return time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC) },
	}
}

func percentageRule(ruleId string, priority int, percent string) model.PricingRule {
	v, _ := decimal.NewFromString(percent)
	return model.PricingRule{
		RuleId:   ruleId,
		Name:     "Discount " + ruleId,
		RuleType: "customer_category",
		Conditions: model.RuleConditions{
			CustomerCategory: &model.CustomerCategoryCondition{CustomerCategoryId: "wholesale"},
		},
		AdjustmentType:  "percentage",
		AdjustmentValue: v,
		TargetEntity:    "service",
		Priority:        priority,
		IsActive:        true,
	}
}

func overrideRule(ruleId string, priority int, price string) model.PricingRule {
	rule := percentageRule(ruleId, priority, "0")
	v, _ := decimal.NewFromString(price)
	rule.AdjustmentType = "override"
	rule.AdjustmentValue = v
	return rule
}

func actorWithClaims(limit string, canOverride bool) security.ActingUser {
	l, _ := decimal.NewFromString(limit)
	return security.ActingUser{
		UserID:             "user-1",
		OrgHandle:          testOrg,
		Role:               "sales_agent",
		MaxDiscountPercent: &l,
		CanOverride:        &canOverride,
	}
}

func request(basePrice string, quantity int) evalmodel.EvaluationRequest {
	return evalmodel.EvaluationRequest{
		BasePrice:          basePrice,
		Quantity:           quantity,
		CustomerCategoryId: "wholesale",
		ServiceId:          "svc-1",
	}
}

func TestEvaluatePriceWithinLimit(t *testing.T) {

	repo := &fakeRuleRepo{rules: []model.PricingRule{percentageRule("r1", 50, "20")}}
	svc := newService(repo, &fakeAttrProvider{})

	result, err := svc.EvaluatePrice(context.Background(), testOrg, actorWithClaims("25", false),
		request("100.00", 1))
	require.NoError(t, err)

	require.Equal(t, "100.00", result.OriginalPrice.String())
	require.Equal(t, "80.00", result.FinalPrice.String())
	require.Equal(t, "80.00", result.BasePriceAfterABAC.String())
	require.Equal(t, "80.00", result.TotalAmount.String())
	require.Len(t, result.Adjustments, 1)
	require.Len(t, result.AppliedRules, 1)
	require.Equal(t, "r1", result.AppliedRules[0].RuleId)
	require.Equal(t, "80.00", result.AppliedRules[0].NewPrice.String())
	require.Equal(t, "20.00", result.Summary.TotalDiscount.String())
	require.True(t, result.Summary.TotalDiscountPercentage.Equal(decimal.NewFromInt(20)))
	require.False(t, result.Summary.RequiresApproval)
	require.False(t, result.ABACContext.ABACFailed)
}

func TestEvaluatePriceClampedByLimit(t *testing.T) {

	repo := &fakeRuleRepo{rules: []model.PricingRule{percentageRule("r1", 50, "20")}}
	svc := newService(repo, &fakeAttrProvider{})

	result, err := svc.EvaluatePrice(context.Background(), testOrg, actorWithClaims("10", false),
		request("100.00", 1))
	require.NoError(t, err)

	require.Equal(t, "90.00", result.FinalPrice.String())
	require.True(t, result.Summary.RequiresApproval)
	// The clamp shows up as a final synthetic adjustment step.
	require.Len(t, result.Adjustments, 2)
	last := result.Adjustments[len(result.Adjustments)-1]
	require.Equal(t, "80.00", last.PriceBefore.String())
	require.Equal(t, "90.00", last.PriceAfter.String())
	require.Contains(t, result.ABACContext.UserRestrictions, "no_override")
}

func TestEvaluatePriceOverrideAttributeKeepsPrice(t *testing.T) {

	repo := &fakeRuleRepo{rules: []model.PricingRule{percentageRule("r1", 50, "20")}}
	svc := newService(repo, &fakeAttrProvider{})

	result, err := svc.EvaluatePrice(context.Background(), testOrg, actorWithClaims("10", true),
		request("100.00", 1))
	require.NoError(t, err)

	require.Equal(t, "80.00", result.FinalPrice.String())
	require.True(t, result.Summary.RequiresApproval)
	require.True(t, result.ABACContext.CanOverride)
}

func TestEvaluatePriceOverrideRuleAppliedLast(t *testing.T) {

	// The override wins over the percentage rule regardless of relative
	// priority, because it always applies last.
	repo := &fakeRuleRepo{rules: []model.PricingRule{
		percentageRule("r1", 50, "10"),
		overrideRule("r2", 10, "60.00"),
	}}
	svc := newService(repo, &fakeAttrProvider{})

	result, err := svc.EvaluatePrice(context.Background(), testOrg, actorWithClaims("100", false),
		request("100.00", 1))
	require.NoError(t, err)

	require.Equal(t, "60.00", result.FinalPrice.String())
	require.Len(t, result.Adjustments, 2)
	require.Equal(t, "r2", result.Adjustments[1].RuleId)
	require.Equal(t, "90.00", result.Adjustments[1].PriceBefore.String())
}

func TestEvaluatePriceHighestPriorityOverrideWins(t *testing.T) {

	repo := &fakeRuleRepo{rules: []model.PricingRule{
		overrideRule("r1", 30, "70.00"),
		overrideRule("r2", 80, "50.00"),
		overrideRule("r3", 80, "55.00"),
	}}
	svc := newService(repo, &fakeAttrProvider{})

	result, err := svc.EvaluatePrice(context.Background(), testOrg, actorWithClaims("100", false),
		request("100.00", 1))
	require.NoError(t, err)

	// Priority 80 beats 30; among the tied pair the greater rule_id wins.
	require.Equal(t, "55.00", result.FinalPrice.String())
	require.Len(t, result.Adjustments, 1)
	require.Equal(t, "r3", result.Adjustments[0].RuleId)
}

func TestEvaluatePriceDeterministicOrdering(t *testing.T) {

	rules := []model.PricingRule{
		percentageRule("r2", 20, "10"),
		percentageRule("r1", 20, "10"),
		percentageRule("r3", 5, "50"),
	}
	repo := &fakeRuleRepo{rules: rules}
	svc := newService(repo, &fakeAttrProvider{})

	result, err := svc.EvaluatePrice(context.Background(), testOrg, actorWithClaims("100", false),
		request("100.00", 1))
	require.NoError(t, err)

	// Ascending priority first, then rule_id within a tie.
	require.Equal(t, "r3", result.Adjustments[0].RuleId)
	require.Equal(t, "r1", result.Adjustments[1].RuleId)
	require.Equal(t, "r2", result.Adjustments[2].RuleId)

	// 100 -> 50 -> 45 -> 40.50.
	require.Equal(t, "40.50", result.FinalPrice.String())
}

func TestEvaluatePriceNoMatchingRules(t *testing.T) {

	repo := &fakeRuleRepo{}
	svc := newService(repo, &fakeAttrProvider{})

	result, err := svc.EvaluatePrice(context.Background(), testOrg, actorWithClaims("25", false),
		request("100.00", 3))
	require.NoError(t, err)

	require.Equal(t, "100.00", result.FinalPrice.String())
	require.Equal(t, "300.00", result.TotalAmount.String())
	require.Empty(t, result.Adjustments)
	require.False(t, result.Summary.RequiresApproval)
	require.Equal(t, "0.00", result.Summary.TotalDiscount.String())
}

func TestEvaluatePriceInvalidRequest(t *testing.T) {

	svc := newService(&fakeRuleRepo{}, &fakeAttrProvider{})

	t.Run("Zero_quantity", func(t *testing.T) {
		_, err := svc.EvaluatePrice(context.Background(), testOrg, actorWithClaims("25", false),
			request("100.00", 0))
		var clientErr *errors2.ClientError
		require.ErrorAs(t, err, &clientErr)
	})

	t.Run("Negative_base_price", func(t *testing.T) {
		_, err := svc.EvaluatePrice(context.Background(), testOrg, actorWithClaims("25", false),
			request("-10.00", 1))
		var clientErr *errors2.ClientError
		require.ErrorAs(t, err, &clientErr)
	})

	t.Run("Missing_base_price", func(t *testing.T) {
		_, err := svc.EvaluatePrice(context.Background(), testOrg, actorWithClaims("25", false),
			request("", 1))
		var clientErr *errors2.ClientError
		require.ErrorAs(t, err, &clientErr)
	})
}

func TestEvaluatePriceRepositoryFailureIsFatal(t *testing.T) {

	repo := &fakeRuleRepo{err: errors.New("connection refused")}
	svc := newService(repo, &fakeAttrProvider{})

	_, err := svc.EvaluatePrice(context.Background(), testOrg, actorWithClaims("25", false),
		request("100.00", 1))
	var serverErr *errors2.ServerError
	require.ErrorAs(t, err, &serverErr)
	require.Equal(t, errors2.RULE_REPOSITORY_UNAVAILABLE.Code, serverErr.Code)
}

func TestEvaluatePriceAttributeFailureFailsClosed(t *testing.T) {

	repo := &fakeRuleRepo{rules: []model.PricingRule{percentageRule("r1", 50, "20")}}
	attrProvider := &fakeAttrProvider{err: errors.New("attribute store down")}
	svc := newService(repo, attrProvider)

	// Actor without attribute claims forces the provider lookup.
	actor := security.ActingUser{UserID: "user-1", OrgHandle: testOrg, Role: "sales_agent"}

	result, err := svc.EvaluatePrice(context.Background(), testOrg, actor, request("100.00", 1))
	require.NoError(t, err)

	require.True(t, result.ABACContext.ABACFailed)
	require.Equal(t, "100.00", result.FinalPrice.String())
	require.True(t, result.Summary.RequiresApproval)
	require.Equal(t, 1, attrProvider.calls)
}

func TestEvaluatePriceClaimsSkipAttributeLookup(t *testing.T) {

	repo := &fakeRuleRepo{rules: []model.PricingRule{percentageRule("r1", 50, "20")}}
	attrProvider := &fakeAttrProvider{}
	svc := newService(repo, attrProvider)

	_, err := svc.EvaluatePrice(context.Background(), testOrg, actorWithClaims("25", false),
		request("100.00", 1))
	require.NoError(t, err)
	require.Equal(t, 0, attrProvider.calls)
}

func TestEvaluatePriceStoreAttributesUsed(t *testing.T) {

	repo := &fakeRuleRepo{rules: []model.PricingRule{percentageRule("r1", 50, "20")}}
	attrProvider := &fakeAttrProvider{attrs: abac.UserAttributes{
		UserID:             "user-1",
		Role:               "manager",
		MaxDiscountPercent: decimal.NewFromInt(50),
		CanOverride:        true,
	}}
	svc := newService(repo, attrProvider)

	actor := security.ActingUser{UserID: "user-1", OrgHandle: testOrg, Role: "manager"}
	result, err := svc.EvaluatePrice(context.Background(), testOrg, actor, request("100.00", 1))
	require.NoError(t, err)

	require.Equal(t, "80.00", result.FinalPrice.String())
	require.False(t, result.Summary.RequiresApproval)
	require.Equal(t, 1, attrProvider.calls)
}

func TestEvaluatePriceZeroBasePrice(t *testing.T) {

	repo := &fakeRuleRepo{rules: []model.PricingRule{percentageRule("r1", 50, "20")}}
	svc := newService(repo, &fakeAttrProvider{})

	result, err := svc.EvaluatePrice(context.Background(), testOrg, actorWithClaims("25", false),
		request("0.00", 1))
	require.NoError(t, err)

	require.Equal(t, "0.00", result.FinalPrice.String())
	require.False(t, result.Summary.RequiresApproval)
}
