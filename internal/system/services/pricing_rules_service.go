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

package services

import (
	"net/http"
	"strings"

	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/handler"
	"github.com/tradeops/pricing-rules-service/internal/system/constants"
	"github.com/tradeops/pricing-rules-service/internal/system/log"
	"github.com/tradeops/pricing-rules-service/internal/system/security"
	sysutils "github.com/tradeops/pricing-rules-service/internal/system/utils"
)

type PricingRulesService struct {
	pricingRuleHandler *handler.PricingRuleHandler
}

func NewPricingRulesService() *PricingRulesService {
	return &PricingRulesService{
		pricingRuleHandler: &handler.PricingRuleHandler{},
	}
}

// Route handles all tenant-aware pricing rule management endpoints.
func (s *PricingRulesService) Route(w http.ResponseWriter, r *http.Request) {

	orgHandle := sysutils.OrgHandleFromRequest(r)
	path := strings.TrimPrefix(r.URL.Path, constants.ApiBasePath)
	path = strings.TrimSuffix(path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/pricing-rules":
		s.secured(w, r, constants.OperationRuleManage, orgHandle, func(r *http.Request) {
			s.pricingRuleHandler.HandleRulePostRequest(w, r, orgHandle)
		})

	case method == http.MethodGet && path == "/pricing-rules":
		s.secured(w, r, constants.OperationRuleRead, orgHandle, func(r *http.Request) {
			s.pricingRuleHandler.HandleRuleListRequest(w, r, orgHandle)
		})

	case method == http.MethodGet && strings.HasPrefix(path, "/pricing-rules/"):
		ruleId := strings.TrimPrefix(path, "/pricing-rules/")
		s.secured(w, r, constants.OperationRuleRead, orgHandle, func(r *http.Request) {
			s.pricingRuleHandler.HandleRuleGetRequest(w, r, orgHandle, ruleId)
		})

	case method == http.MethodPut && strings.HasPrefix(path, "/pricing-rules/"):
		ruleId := strings.TrimPrefix(path, "/pricing-rules/")
		s.secured(w, r, constants.OperationRuleManage, orgHandle, func(r *http.Request) {
			s.pricingRuleHandler.HandleRulePutRequest(w, r, orgHandle, ruleId)
		})

	case method == http.MethodDelete && strings.HasPrefix(path, "/pricing-rules/"):
		ruleId := strings.TrimPrefix(path, "/pricing-rules/")
		s.secured(w, r, constants.OperationRuleManage, orgHandle, func(r *http.Request) {
			s.pricingRuleHandler.HandleRuleDeleteRequest(w, r, orgHandle, ruleId)
		})

	default:
		http.NotFound(w, r)
	}
}

// secured runs the handler only after authentication and authorization pass.
func (s *PricingRulesService) secured(w http.ResponseWriter, r *http.Request, operation, orgHandle string,
	next func(r *http.Request)) {

	authedRequest, err := security.AuthnAndAuthz(r, operation, orgHandle)
	if err != nil {
		sysutils.HandleError(w, log.GetLogger(), err)
		return
	}
	next(authedRequest)
}
