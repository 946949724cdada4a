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
	"context"

	"github.com/shopspring/decimal"

	"github.com/tradeops/pricing-rules-service/internal/evaluation/abac"
	errors2 "github.com/tradeops/pricing-rules-service/internal/system/errors"
	"github.com/tradeops/pricing-rules-service/internal/user_attributes/store"
)

// UserAttributeProvider resolves pricing attributes from the attribute store.
type UserAttributeProvider struct{}

// NewUserAttributeProvider creates a new instance of UserAttributeProvider.
func NewUserAttributeProvider() *UserAttributeProvider {

	return &UserAttributeProvider{}
}

// GetUserAttributes fetches and parses the user's attribute document. Any
// failure, including an absent document, is surfaced to the caller so the
// evaluation can fall back to restricted attributes.
func (uap *UserAttributeProvider) GetUserAttributes(ctx context.Context, orgHandle, userID string) (
	abac.UserAttributes, error) {

	record, err := store.GetUserAttributeRecord(ctx, orgHandle, userID)
	if err != nil {
		return abac.UserAttributes{}, err
	}

	limit, err := decimal.NewFromString(record.MaxDiscountPercent)
	if err != nil {
		return abac.UserAttributes{}, errors2.NewServerError(errors2.ATTRIBUTE_PROVIDER_UNAVAILABLE, err)
	}

	return abac.UserAttributes{
		UserID:             record.UserID,
		Role:               record.Role,
		MaxDiscountPercent: limit,
		CanOverride:        record.CanOverride,
	}, nil
}
