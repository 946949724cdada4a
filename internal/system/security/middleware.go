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

package security

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tradeops/pricing-rules-service/internal/system/authn"
	"github.com/tradeops/pricing-rules-service/internal/system/authz"
	"github.com/tradeops/pricing-rules-service/internal/system/config"
	"github.com/tradeops/pricing-rules-service/internal/system/constants"
	"github.com/tradeops/pricing-rules-service/internal/system/errors"
	"github.com/tradeops/pricing-rules-service/internal/system/log"
)

// AuthnWithAdminCredentials performs authentication using admin credentials from the request.
func AuthnWithAdminCredentials(r *http.Request) error {

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Basic ") {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UN_AUTHORIZED.Code,
			Message:     errors.UN_AUTHORIZED.Message,
			Description: "Missing or invalid Authorization header",
		}, http.StatusUnauthorized)
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Basic "))

	isValidAdmin, err := validateAdminCredentials(token)
	if err != nil || !isValidAdmin {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UN_AUTHORIZED.Code,
			Message:     errors.UN_AUTHORIZED.Message,
			Description: "Missing or invalid Authorization header",
		}, http.StatusUnauthorized)
	}

	return nil
}

func validateAdminCredentials(token string) (bool, error) {

	authServerConfig := config.GetPRSRuntime().Config.AuthServer
	username := strings.TrimSpace(authServerConfig.AdminUsername)
	password := strings.TrimSpace(authServerConfig.AdminPassword)
	if username == "" || password == "" || token == "" {
		return false, nil
	}

	creds := username + ":" + password
	expected := base64.StdEncoding.EncodeToString([]byte(creds))

	if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) == 1 {
		log.GetLogger().Debug("Admin credentials validated successfully.")
		return true, nil
	}

	return false, nil
}

// AuthnAndAuthz performs authentication and authorization for the given HTTP
// request and operation. On success the request is returned with the acting
// user attached to its context. Basic admin credentials are accepted for any
// operation; bearer tokens are checked against the configured scopes.
func AuthnAndAuthz(r *http.Request, operation, orgHandle string) (*http.Request, error) {

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Basic ") {
		if err := AuthnWithAdminCredentials(r); err != nil {
			return nil, err
		}
		actor := ActingUser{
			UserID:    strings.TrimSpace(config.GetPRSRuntime().Config.AuthServer.AdminUsername),
			OrgHandle: orgHandle,
			Role:      "admin",
		}
		ctx := context.WithValue(r.Context(), constants.ActingUserContextKey, actor)
		return r.WithContext(ctx), nil
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UN_AUTHORIZED.Code,
			Message:     errors.UN_AUTHORIZED.Message,
			Description: "Missing or invalid Authorization header",
		}, http.StatusUnauthorized)
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := authn.ValidateAuthenticationAndReturnClaims(token, orgHandle)
	if err != nil {
		return nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UN_AUTHORIZED.Code,
			Message:     errors.UN_AUTHORIZED.Message,
			Description: "Missing or invalid Authorization header",
		}, http.StatusUnauthorized)
	}

	scope, ok := claims["scope"]
	if !ok || scope == nil {
		return nil, forbiddenError(errors.FORBIDDEN.Description)
	}
	scopeStr, ok := scope.(string)
	if !ok || !authz.ValidatePermission(scopeStr, operation) {
		return nil, forbiddenError("Do not have permission to perform this operation")
	}

	actor := actingUserFromClaims(claims, orgHandle)
	ctx := context.WithValue(r.Context(), constants.ActingUserContextKey, actor)
	return r.WithContext(ctx), nil
}

// actingUserFromClaims builds the acting user from token claims. Pricing
// attribute claims are optional; absent claims leave the corresponding
// pointers nil so the attribute store is consulted instead.
func actingUserFromClaims(claims map[string]interface{}, orgHandle string) ActingUser {

	actor := ActingUser{OrgHandle: orgHandle}

	if sub, ok := claims["sub"].(string); ok {
		actor.UserID = sub
	}
	if role, ok := claims["role"].(string); ok {
		actor.Role = role
	}

	switch limit := claims["max_discount_percent"].(type) {
	case string:
		if d, err := decimal.NewFromString(limit); err == nil {
			actor.MaxDiscountPercent = &d
		}
	case float64:
		d := decimal.NewFromFloat(limit)
		actor.MaxDiscountPercent = &d
	}

	if canOverride, ok := claims["can_override"].(bool); ok {
		actor.CanOverride = &canOverride
	}

	return actor
}

func forbiddenError(description string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.FORBIDDEN.Code,
		Message:     errors.FORBIDDEN.Message,
		Description: description,
	}, http.StatusForbidden)
}
