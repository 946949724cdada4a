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

package managers

import (
	"net/http"
	"strings"

	"github.com/tradeops/pricing-rules-service/internal/system/constants"
	"github.com/tradeops/pricing-rules-service/internal/system/services"
	"github.com/tradeops/pricing-rules-service/internal/system/utils"
)

type ServiceManagerInterface interface {
	RegisterServices() error
}

type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

func (sm *ServiceManager) RegisterServices() error {

	pricingRulesService := services.NewPricingRulesService()
	evaluationService := services.NewEvaluationService()
	healthService := services.NewHealthService()

	// Health endpoints live outside the tenant dispatcher.
	sm.mux.HandleFunc("/health", healthService.Route)
	sm.mux.HandleFunc("/ready", healthService.Route)

	// Single tenant dispatcher for all tenant-aware services.
	utils.MountTenantDispatcher(sm.mux, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, constants.ApiBasePath)
		path = strings.TrimSuffix(path, "/")

		switch {
		case strings.HasPrefix(path, "/pricing-rules"):
			pricingRulesService.Route(w, r)
		case strings.HasPrefix(path, "/pricing"):
			evaluationService.Route(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
	return nil
}
