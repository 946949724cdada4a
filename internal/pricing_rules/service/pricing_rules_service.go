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
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/model"
	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/store"
	errors2 "github.com/tradeops/pricing-rules-service/internal/system/errors"
)

type PricingRuleServiceInterface interface {
	AddPricingRule(rule model.PricingRule, orgHandle string) (model.PricingRule, error)
	GetPricingRules(orgHandle string) ([]model.PricingRule, error)
	GetPricingRule(orgHandle, ruleId string) (model.PricingRule, error)
	UpdatePricingRule(ruleId, orgHandle string, rule model.PricingRule) (model.PricingRule, error)
	DeletePricingRule(orgHandle, ruleId string) error
	FindApplicable(orgHandle, targetEntity, targetId string) ([]model.PricingRule, error)
}

// PricingRuleService is the default implementation of the PricingRuleServiceInterface.
type PricingRuleService struct{}

// GetPricingRuleService creates a new instance of PricingRuleService.
func GetPricingRuleService() PricingRuleServiceInterface {

	return &PricingRuleService{}
}

// AddPricingRule validates and persists a new pricing rule. Malformed
// definitions are rejected here so evaluation never sees one.
func (prs *PricingRuleService) AddPricingRule(rule model.PricingRule, orgHandle string) (model.PricingRule, error) {

	rule.OrgHandle = orgHandle
	if err := rule.Validate(); err != nil {
		return model.PricingRule{}, err
	}

	rule.RuleId = uuid.New().String()
	now := time.Now().UTC().Unix()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	if err := store.AddPricingRule(rule); err != nil {
		return model.PricingRule{}, err
	}
	return rule, nil
}

// GetPricingRules fetches all rules of the organization.
func (prs *PricingRuleService) GetPricingRules(orgHandle string) ([]model.PricingRule, error) {

	return store.GetPricingRules(orgHandle)
}

// GetPricingRule fetches a specific rule.
func (prs *PricingRuleService) GetPricingRule(orgHandle, ruleId string) (model.PricingRule, error) {

	rule, err := store.GetPricingRule(orgHandle, ruleId)
	if err != nil {
		return model.PricingRule{}, err
	}
	if rule == nil {
		return model.PricingRule{}, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.PRICING_RULE_NOT_FOUND.Code,
			Message:     errors2.PRICING_RULE_NOT_FOUND.Message,
			Description: fmt.Sprintf("No pricing rule found for rule id: %s", ruleId),
		}, http.StatusNotFound)
	}
	return *rule, nil
}

// UpdatePricingRule validates and replaces an existing rule.
func (prs *PricingRuleService) UpdatePricingRule(ruleId, orgHandle string, rule model.PricingRule) (model.PricingRule, error) {

	existing, err := store.GetPricingRule(orgHandle, ruleId)
	if err != nil {
		return model.PricingRule{}, err
	}
	if existing == nil {
		return model.PricingRule{}, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.PRICING_RULE_NOT_FOUND.Code,
			Message:     errors2.PRICING_RULE_NOT_FOUND.Message,
			Description: fmt.Sprintf("No pricing rule found for rule id: %s", ruleId),
		}, http.StatusNotFound)
	}

	rule.RuleId = ruleId
	rule.OrgHandle = orgHandle
	if err := rule.Validate(); err != nil {
		return model.PricingRule{}, err
	}

	rule.CreatedAt = existing.CreatedAt
	rule.UpdatedAt = time.Now().UTC().Unix()

	if err := store.UpdatePricingRule(rule); err != nil {
		return model.PricingRule{}, err
	}
	return rule, nil
}

// DeletePricingRule removes a rule. The rule must exist under the given
// organization; a rule id belonging to another organization is not found.
func (prs *PricingRuleService) DeletePricingRule(orgHandle, ruleId string) error {

	existing, err := store.GetPricingRule(orgHandle, ruleId)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.PRICING_RULE_NOT_FOUND.Code,
			Message:     errors2.PRICING_RULE_NOT_FOUND.Message,
			Description: fmt.Sprintf("No pricing rule found for rule id: %s", ruleId),
		}, http.StatusNotFound)
	}

	return store.DeletePricingRule(orgHandle, ruleId)
}

// FindApplicable returns the active-rule snapshot for one evaluation. The
// engine consumes this through its RuleRepository port.
func (prs *PricingRuleService) FindApplicable(orgHandle, targetEntity, targetId string) ([]model.PricingRule, error) {

	return store.FindApplicable(orgHandle, targetEntity, targetId)
}
