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
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/tradeops/pricing-rules-service/internal/system/constants"
)

// ActingUser is the authenticated principal of a request. The pricing
// attributes are optional; a nil pointer means the token did not carry the
// claim and the attribute store is the source of truth.
type ActingUser struct {
	UserID             string
	OrgHandle          string
	Role               string
	MaxDiscountPercent *decimal.Decimal
	CanOverride        *bool
}

// ActingUserFromRequest returns the acting user attached to the request by
// the authentication middleware.
func ActingUserFromRequest(r *http.Request) (ActingUser, bool) {

	actor, ok := r.Context().Value(constants.ActingUserContextKey).(ActingUser)
	return actor, ok
}
