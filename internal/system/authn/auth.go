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

package authn

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tradeops/pricing-rules-service/internal/system/config"
	errors2 "github.com/tradeops/pricing-rules-service/internal/system/errors"
	"github.com/tradeops/pricing-rules-service/internal/system/log"
)

// ValidateAuthenticationAndReturnClaims validates a Bearer token and returns
// its claims. The token must be an HMAC signed JWT bound to the tenant in
// the request path.
func ValidateAuthenticationAndReturnClaims(token, orgHandle string) (map[string]interface{}, error) {

	if strings.Count(token, ".") != 2 {
		log.GetLogger().Debug("Expecting a JWT token but received an opaque token.")
		return nil, unauthorizedError()
	}

	claims, err := parseAndVerifyJWT(token)
	if err != nil {
		return nil, unauthorizedError()
	}

	if !validateClaims(orgHandle, claims) {
		return claims, unauthorizedError()
	}

	return claims, nil
}

// parseAndVerifyJWT verifies the token signature against the configured
// signing key and returns the claims.
func parseAndVerifyJWT(tokenString string) (map[string]interface{}, error) {

	logger := log.GetLogger()
	claims := jwt.MapClaims{}
	signingKey := config.GetPRSRuntime().Config.AuthServer.JWTSigningKey

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(signingKey), nil
	})
	if err != nil {
		errMsg := "Error occurred when verifying the JWT token."
		logger.Debug(errMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PARSING_ERROR.Code,
			Message:     errors2.PARSING_ERROR.Message,
			Description: errMsg,
		}, err)
	}
	return claims, nil
}

// validateClaims ensures the token carries the expected org_handle, has not
// expired and is addressed to this service.
func validateClaims(orgHandle string, claims map[string]interface{}) bool {

	logger := log.GetLogger()

	orgHandleInClaimRaw, ok := claims["org_handle"]
	if !ok {
		logger.Debug("Token does not have the expected org_handle claim.")
		return false
	}
	orgHandleInClaim, ok := orgHandleInClaimRaw.(string)
	if !ok || orgHandleInClaim != orgHandle {
		logger.Debug("Token org_handle claim is not valid.")
		return false
	}

	expRaw, ok := claims["exp"]
	if !ok {
		logger.Debug("Token does not have an expiration time.")
		return false
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		logger.Debug("Token does not have a valid expiration time.", log.Any("exp", expRaw))
		return false
	}
	if int64(expFloat) < time.Now().Unix() {
		logger.Debug("Token has expired.", log.String("exp", time.Unix(int64(expFloat), 0).String()))
		return false
	}

	audRaw, ok := claims["aud"]
	if !ok {
		logger.Debug("Token does not have an audience claim.")
		return false
	}

	var audList []string
	switch aud := audRaw.(type) {
	case []interface{}:
		for _, a := range aud {
			if s, ok := a.(string); ok {
				audList = append(audList, s)
			}
		}
	case string:
		audList = append(audList, aud)
	}

	expectedAudience := config.GetPRSRuntime().Config.AuthServer.JWTAudience
	for _, aud := range audList {
		if aud == expectedAudience {
			return true
		}
	}
	logger.Debug("Token audience does not match expected audience.")
	return false
}

func unauthorizedError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UN_AUTHORIZED.Code,
		Message:     errors2.UN_AUTHORIZED.Message,
		Description: errors2.UN_AUTHORIZED.Description,
	}, http.StatusUnauthorized)
}
