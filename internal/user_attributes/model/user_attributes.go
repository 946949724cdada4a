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

package model

// UserAttributeRecord is the attribute document stored per user and
// organization. MaxDiscountPercent is kept as a decimal string so the limit
// survives storage without floating point drift.
type UserAttributeRecord struct {
	UserID             string `bson:"user_id"`
	OrgHandle          string `bson:"org_handle"`
	Role               string `bson:"role"`
	MaxDiscountPercent string `bson:"max_discount_percent"`
	CanOverride        bool   `bson:"can_override"`
}
