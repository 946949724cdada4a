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

// Package service implements the pricing evaluation engine. A request is
// matched against the organization's active rules, the matching adjustments
// are folded over the base price in deterministic order, and the outcome is
// gated by the acting user's attribute limits.
package service

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradeops/pricing-rules-service/internal/evaluation/abac"
	"github.com/tradeops/pricing-rules-service/internal/evaluation/adjustment"
	evalmodel "github.com/tradeops/pricing-rules-service/internal/evaluation/model"
	"github.com/tradeops/pricing-rules-service/internal/money"
	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/matcher"
	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/model"
	"github.com/tradeops/pricing-rules-service/internal/system/config"
	"github.com/tradeops/pricing-rules-service/internal/system/constants"
	errors2 "github.com/tradeops/pricing-rules-service/internal/system/errors"
	"github.com/tradeops/pricing-rules-service/internal/system/log"
	"github.com/tradeops/pricing-rules-service/internal/system/security"
)

// RuleRepository supplies the active-rule snapshot for one evaluation.
type RuleRepository interface {
	FindApplicable(orgHandle, targetEntity, targetId string) ([]model.PricingRule, error)
}

// UserAttributeProvider resolves the acting user's pricing attributes when
// the token does not carry them.
type UserAttributeProvider interface {
	GetUserAttributes(ctx context.Context, orgHandle, userID string) (abac.UserAttributes, error)
}

type EvaluationServiceInterface interface {
	EvaluatePrice(ctx context.Context, orgHandle string, actor security.ActingUser,
		request evalmodel.EvaluationRequest) (evalmodel.EvaluationResult, error)
}

// EvaluationService is the default implementation of the EvaluationServiceInterface.
type EvaluationService struct {
	ruleRepo RuleRepository
	attrs    UserAttributeProvider
	clock    func() time.Time
}

// GetEvaluationService creates a new instance of EvaluationService.
func GetEvaluationService(ruleRepo RuleRepository, attrs UserAttributeProvider) EvaluationServiceInterface {

	return &EvaluationService{
		ruleRepo: ruleRepo,
		attrs:    attrs,
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

// EvaluatePrice runs one evaluation. Non-override adjustments are applied in
// ascending (priority, rule_id) order; at most one override applies, chosen
// by highest priority, and always last. The outcome is then gated by the
// acting user's discount limit.
func (es *EvaluationService) EvaluatePrice(ctx context.Context, orgHandle string,
	actor security.ActingUser, request evalmodel.EvaluationRequest) (evalmodel.EvaluationResult, error) {

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "EvaluationService"))

	request = withRequestDefaults(request)
	basePrice, err := validateRequest(request)
	if err != nil {
		return evalmodel.EvaluationResult{}, err
	}

	rules, err := es.ruleRepo.FindApplicable(orgHandle, request.TargetEntity, request.TargetId)
	if err != nil {
		// The rule snapshot is mandatory. Evaluating against a partial
		// rule set could produce a price no rule author intended.
		return evalmodel.EvaluationResult{}, errors2.NewServerError(errors2.RULE_REPOSITORY_UNAVAILABLE, err)
	}

	evalCtx := matcher.Context{
		CustomerCategoryId: request.CustomerCategoryId,
		ServiceId:          request.ServiceId,
		PackageId:          request.PackageId,
		Quantity:           request.Quantity,
		TargetEntity:       request.TargetEntity,
		TargetId:           request.TargetId,
		Now:                es.clock(),
	}

	nonOverrides, override := partition(rules, evalCtx)

	current := basePrice
	adjustments := make([]evalmodel.AppliedAdjustment, 0, len(nonOverrides)+1)
	appliedRules := make([]evalmodel.AppliedRule, 0, len(nonOverrides)+1)

	for _, rule := range nonOverrides {
		next, step, err := adjustment.Apply(current, rule)
		if err != nil {
			return evalmodel.EvaluationResult{}, errors2.NewServerError(errors2.PRICE_COMPUTATION, err)
		}
		current = next
		adjustments = append(adjustments, step)
		appliedRules = append(appliedRules, appliedRuleOf(rule, next))
	}

	if override != nil {
		next, step, err := adjustment.Apply(current, *override)
		if err != nil {
			return evalmodel.EvaluationResult{}, errors2.NewServerError(errors2.PRICE_COMPUTATION, err)
		}
		current = next
		adjustments = append(adjustments, step)
		appliedRules = append(appliedRules, appliedRuleOf(*override, next))
	}

	attrs, abacFailed := es.resolveAttributes(ctx, orgHandle, actor, logger)

	outcome, err := abac.Evaluate(attrs, basePrice, current)
	if err != nil {
		return evalmodel.EvaluationResult{}, err
	}

	return buildResult(basePrice, outcome, int64(request.Quantity), adjustments, appliedRules,
		attrs, abacFailed)
}

// resolveAttributes prefers attributes carried on the token; otherwise the
// attribute store is consulted. When neither yields a usable attribute set
// the evaluation falls back to the most restrictive attributes rather than
// failing the request.
func (es *EvaluationService) resolveAttributes(ctx context.Context, orgHandle string,
	actor security.ActingUser, logger *log.Logger) (abac.UserAttributes, bool) {

	if actor.MaxDiscountPercent != nil && actor.CanOverride != nil {
		return abac.UserAttributes{
			UserID:             actor.UserID,
			Role:               actor.Role,
			MaxDiscountPercent: *actor.MaxDiscountPercent,
			CanOverride:        *actor.CanOverride,
		}, false
	}

	attrs, err := es.attrs.GetUserAttributes(ctx, orgHandle, actor.UserID)
	if err != nil {
		logger.Warn("Falling back to restricted attributes for evaluation",
			log.String("userId", actor.UserID), log.Error(err))
		return abac.FallbackAttributes(actor.UserID), true
	}
	return attrs, false
}

// withRequestDefaults fills the implied target of the evaluation.
func withRequestDefaults(request evalmodel.EvaluationRequest) evalmodel.EvaluationRequest {

	if request.TargetEntity == "" {
		request.TargetEntity = constants.TargetService
	}
	if request.TargetId == "" {
		switch request.TargetEntity {
		case constants.TargetService:
			request.TargetId = request.ServiceId
		case constants.TargetPackage:
			request.TargetId = request.PackageId
		case constants.TargetCustomer:
			request.TargetId = request.CustomerCategoryId
		}
	}
	if request.Currency == "" {
		request.Currency = config.GetPRSRuntime().Config.Pricing.DefaultCurrency
	}
	return request
}

func validateRequest(request evalmodel.EvaluationRequest) (money.Amount, error) {

	if request.Quantity < 1 {
		return money.Amount{}, errors2.NewClientErrorWithDescription(errors2.INVALID_REQUEST,
			"quantity must be a positive integer.", http.StatusBadRequest)
	}
	if request.BasePrice == "" {
		return money.Amount{}, errors2.NewClientErrorWithDescription(errors2.INVALID_REQUEST,
			"base_price is required.", http.StatusBadRequest)
	}
	return money.FromStringNonNegative(request.BasePrice, request.Currency)
}

// partition splits the matching rules into the ordered non-override list and
// the single winning override, if any. Non-overrides sort ascending by
// priority with rule_id as the tie break. Among overrides the highest
// priority wins; on a priority tie the greater rule_id wins.
func partition(rules []model.PricingRule, evalCtx matcher.Context) ([]model.PricingRule, *model.PricingRule) {

	var nonOverrides []model.PricingRule
	var override *model.PricingRule

	for _, rule := range rules {
		if !matcher.Matches(rule, evalCtx) {
			continue
		}
		if rule.AdjustmentType == constants.AdjustmentOverride {
			if override == nil ||
				rule.Priority > override.Priority ||
				(rule.Priority == override.Priority && rule.RuleId > override.RuleId) {
				r := rule
				override = &r
			}
			continue
		}
		nonOverrides = append(nonOverrides, rule)
	}

	sort.SliceStable(nonOverrides, func(i, j int) bool {
		if nonOverrides[i].Priority != nonOverrides[j].Priority {
			return nonOverrides[i].Priority < nonOverrides[j].Priority
		}
		return nonOverrides[i].RuleId < nonOverrides[j].RuleId
	})
	return nonOverrides, override
}

func appliedRuleOf(rule model.PricingRule, newPrice money.Amount) evalmodel.AppliedRule {

	return evalmodel.AppliedRule{
		RuleId:          rule.RuleId,
		RuleName:        rule.Name,
		RuleType:        rule.RuleType,
		AdjustmentType:  rule.AdjustmentType,
		AdjustmentValue: rule.AdjustmentValue,
		NewPrice:        newPrice,
		Priority:        rule.Priority,
	}
}

func buildResult(basePrice money.Amount, outcome abac.Outcome, quantity int64,
	adjustments []evalmodel.AppliedAdjustment, appliedRules []evalmodel.AppliedRule,
	attrs abac.UserAttributes, abacFailed bool) (evalmodel.EvaluationResult, error) {

	if outcome.Clamped {
		priceBefore := basePrice
		if len(adjustments) > 0 {
			priceBefore = adjustments[len(adjustments)-1].PriceAfter
		}
		adjustments = append(adjustments, evalmodel.AppliedAdjustment{
			RuleName:        "discount limit",
			AdjustmentType:  constants.AdjustmentPercentage,
			AdjustmentValue: attrs.MaxDiscountPercent,
			PriceBefore:     priceBefore,
			PriceAfter:      outcome.FinalPrice,
		})
	}

	totalDiscount, err := basePrice.Sub(outcome.FinalPrice)
	if err != nil {
		return evalmodel.EvaluationResult{}, errors2.NewServerError(errors2.PRICE_COMPUTATION, err)
	}
	totalDiscount = totalDiscount.ClampNonNegative()

	discountPct := decimal.Zero
	if !basePrice.IsZero() && !totalDiscount.IsZero() {
		discountPct = totalDiscount.Decimal().Mul(decimal.NewFromInt(100)).
			Div(basePrice.Decimal()).Round(2)
	}

	return evalmodel.EvaluationResult{
		OriginalPrice:      basePrice,
		FinalPrice:         outcome.FinalPrice,
		BasePriceAfterABAC: outcome.FinalPrice,
		TotalAmount:        outcome.FinalPrice.MulInt(quantity),
		Adjustments:        adjustments,
		AppliedRules:       appliedRules,
		ABACContext: evalmodel.ABACContext{
			CanOverride:       attrs.CanOverride,
			UserRestrictions:  attrs.Restrictions(),
			UserDiscountLimit: attrs.MaxDiscountPercent,
			ABACFailed:        abacFailed,
		},
		Summary: evalmodel.EvaluationSummary{
			TotalDiscount:           totalDiscount,
			TotalDiscountPercentage: discountPct,
			RequiresApproval:        outcome.RequiresApproval,
		},
	}, nil
}
