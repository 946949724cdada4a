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

	"github.com/tradeops/pricing-rules-service/internal/evaluation/handler"
	"github.com/tradeops/pricing-rules-service/internal/system/constants"
	"github.com/tradeops/pricing-rules-service/internal/system/log"
	"github.com/tradeops/pricing-rules-service/internal/system/security"
	sysutils "github.com/tradeops/pricing-rules-service/internal/system/utils"
)

type EvaluationService struct {
	evaluationHandler *handler.EvaluationHandler
}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{
		evaluationHandler: &handler.EvaluationHandler{},
	}
}

// Route handles the tenant-aware price evaluation endpoint.
func (s *EvaluationService) Route(w http.ResponseWriter, r *http.Request) {

	orgHandle := sysutils.OrgHandleFromRequest(r)
	path := strings.TrimPrefix(r.URL.Path, constants.ApiBasePath)
	path = strings.TrimSuffix(path, "/")

	switch {
	case r.Method == http.MethodPost && path == "/pricing/evaluate":
		authedRequest, err := security.AuthnAndAuthz(r, constants.OperationPriceEvaluate, orgHandle)
		if err != nil {
			sysutils.HandleError(w, log.GetLogger(), err)
			return
		}
		s.evaluationHandler.HandleEvaluateRequest(w, authedRequest, orgHandle)

	default:
		http.NotFound(w, r)
	}
}
