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

import "github.com/tradeops/pricing-rules-service/internal/pricing_rules/service"

// PricingRuleProviderInterface defines the interface for the pricing rule provider.
type PricingRuleProviderInterface interface {
	GetPricingRuleService() service.PricingRuleServiceInterface
}

// PricingRuleProvider is the default implementation of the PricingRuleProviderInterface.
type PricingRuleProvider struct{}

// NewPricingRuleProvider creates a new instance of PricingRuleProvider.
func NewPricingRuleProvider() PricingRuleProviderInterface {

	return &PricingRuleProvider{}
}

// GetPricingRuleService returns the pricing rule service instance.
func (prp *PricingRuleProvider) GetPricingRuleService() service.PricingRuleServiceInterface {

	return service.GetPricingRuleService()
}
