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

package provider

import (
	"github.com/tradeops/pricing-rules-service/internal/evaluation/service"
	rules "github.com/tradeops/pricing-rules-service/internal/pricing_rules/provider"
	attrs "github.com/tradeops/pricing-rules-service/internal/user_attributes/provider"
)

// EvaluationProviderInterface defines the interface for the evaluation provider.
type EvaluationProviderInterface interface {
	GetEvaluationService() service.EvaluationServiceInterface
}

// EvaluationProvider is the default implementation of the EvaluationProviderInterface.
type EvaluationProvider struct{}

// NewEvaluationProvider creates a new instance of EvaluationProvider.
func NewEvaluationProvider() EvaluationProviderInterface {

	return &EvaluationProvider{}
}

// GetEvaluationService returns an evaluation service backed by the pricing
// rule store and the user attribute store.
func (ep *EvaluationProvider) GetEvaluationService() service.EvaluationServiceInterface {

	ruleService := rules.NewPricingRuleProvider().GetPricingRuleService()
	return service.GetEvaluationService(ruleService, attrs.NewUserAttributeProvider())
}
