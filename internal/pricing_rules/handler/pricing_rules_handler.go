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

// Package handler provides the HTTP handlers for managing pricing rules.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/model"
	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/provider"
	"github.com/tradeops/pricing-rules-service/internal/system/log"
	sysutils "github.com/tradeops/pricing-rules-service/internal/system/utils"
)

// PricingRuleHandler handles the pricing rule management requests.
type PricingRuleHandler struct{}

// HandleRuleListRequest returns every pricing rule of the organization.
func (prh *PricingRuleHandler) HandleRuleListRequest(w http.ResponseWriter, r *http.Request, orgHandle string) {

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PricingRuleHandler"))

	ruleProvider := provider.NewPricingRuleProvider()
	ruleService := ruleProvider.GetPricingRuleService()

	rules, err := ruleService.GetPricingRules(orgHandle)
	if err != nil {
		sysutils.HandleError(w, logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(rules); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// HandleRulePostRequest creates a new pricing rule.
func (prh *PricingRuleHandler) HandleRulePostRequest(w http.ResponseWriter, r *http.Request, orgHandle string) {

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PricingRuleHandler"))

	var rule model.PricingRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		sysutils.HandleDecodeError(w, logger, err)
		return
	}

	ruleProvider := provider.NewPricingRuleProvider()
	ruleService := ruleProvider.GetPricingRuleService()

	created, err := ruleService.AddPricingRule(rule, orgHandle)
	if err != nil {
		sysutils.HandleError(w, logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	logger.Debug("Pricing rule created", log.String("ruleId", created.RuleId))
}

// HandleRuleGetRequest returns a pricing rule by id.
func (prh *PricingRuleHandler) HandleRuleGetRequest(w http.ResponseWriter, r *http.Request, orgHandle, ruleId string) {

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PricingRuleHandler"))

	ruleProvider := provider.NewPricingRuleProvider()
	ruleService := ruleProvider.GetPricingRuleService()

	rule, err := ruleService.GetPricingRule(orgHandle, ruleId)
	if err != nil {
		sysutils.HandleError(w, logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(rule); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// HandleRulePutRequest replaces an existing pricing rule.
func (prh *PricingRuleHandler) HandleRulePutRequest(w http.ResponseWriter, r *http.Request, orgHandle, ruleId string) {

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PricingRuleHandler"))

	var rule model.PricingRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		sysutils.HandleDecodeError(w, logger, err)
		return
	}

	ruleProvider := provider.NewPricingRuleProvider()
	ruleService := ruleProvider.GetPricingRuleService()

	updated, err := ruleService.UpdatePricingRule(ruleId, orgHandle, rule)
	if err != nil {
		sysutils.HandleError(w, logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	logger.Debug("Pricing rule updated", log.String("ruleId", ruleId))
}

// HandleRuleDeleteRequest removes a pricing rule. Deleting an absent rule
// is a no-op.
func (prh *PricingRuleHandler) HandleRuleDeleteRequest(w http.ResponseWriter, r *http.Request, orgHandle, ruleId string) {

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PricingRuleHandler"))

	ruleProvider := provider.NewPricingRuleProvider()
	ruleService := ruleProvider.GetPricingRuleService()

	if err := ruleService.DeletePricingRule(orgHandle, ruleId); err != nil {
		sysutils.HandleError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
