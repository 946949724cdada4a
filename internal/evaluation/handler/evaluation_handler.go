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

// Package handler provides the HTTP handler for price evaluation.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tradeops/pricing-rules-service/internal/evaluation/model"
	"github.com/tradeops/pricing-rules-service/internal/evaluation/provider"
	errors2 "github.com/tradeops/pricing-rules-service/internal/system/errors"
	"github.com/tradeops/pricing-rules-service/internal/system/log"
	"github.com/tradeops/pricing-rules-service/internal/system/security"
	sysutils "github.com/tradeops/pricing-rules-service/internal/system/utils"
)

// EvaluationHandler handles price evaluation requests.
type EvaluationHandler struct{}

// HandleEvaluateRequest evaluates a price for the acting user.
func (eh *EvaluationHandler) HandleEvaluateRequest(w http.ResponseWriter, r *http.Request, orgHandle string) {

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "EvaluationHandler"))

	actor, ok := security.ActingUserFromRequest(r)
	if !ok {
		sysutils.HandleError(w, logger, errors2.NewClientError(errors2.UN_AUTHORIZED, http.StatusUnauthorized))
		return
	}

	var request model.EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		sysutils.HandleDecodeError(w, logger, err)
		return
	}

	evaluationService := provider.NewEvaluationProvider().GetEvaluationService()

	result, err := evaluationService.EvaluatePrice(r.Context(), orgHandle, actor, request)
	if err != nil {
		sysutils.HandleError(w, logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	logger.Debug("Price evaluated",
		log.String("finalPrice", result.FinalPrice.String()),
		log.Any("requiresApproval", result.Summary.RequiresApproval))
}
