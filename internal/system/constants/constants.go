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

package constants

type contextKey string

const (
	// ApiBasePath is the fixed API prefix after the tenant segment.
	ApiBasePath = "/api/v1"

	// DefaultOrgHandle is the tenant used when no /t/{org} segment is present.
	DefaultOrgHandle = "default"

	// OrgContextKey carries the tenant org handle resolved from the request path.
	OrgContextKey contextKey = "org_handle"

	// ActingUserContextKey carries the authenticated acting user for the request.
	ActingUserContextKey contextKey = "acting_user"
)

// Operations used for scope-based authorization.
const (
	OperationRuleManage    = "pricing_rules:manage"
	OperationRuleRead      = "pricing_rules:read"
	OperationPriceEvaluate = "pricing:evaluate"
)

// Rule types recognised by the engine. Any other value is rejected at load time.
const (
	RuleTypeCustomerCategory = "customer_category"
	RuleTypeQuantity         = "quantity"
	RuleTypeTimeBased        = "time_based"
	RuleTypeBundle           = "bundle"
)

// Adjustment types.
const (
	AdjustmentPercentage = "percentage"
	AdjustmentFixed      = "fixed"
	AdjustmentOverride   = "override"
)

// Target entity types.
const (
	TargetService  = "service"
	TargetPackage  = "package"
	TargetCustomer = "customer"
)

// AllowedRuleTypes defines the closed set of rule types.
var AllowedRuleTypes = map[string]bool{
	RuleTypeCustomerCategory: true,
	RuleTypeQuantity:         true,
	RuleTypeTimeBased:        true,
	RuleTypeBundle:           true,
}

// AllowedAdjustmentTypes defines the closed set of adjustment types.
var AllowedAdjustmentTypes = map[string]bool{
	AdjustmentPercentage: true,
	AdjustmentFixed:      true,
	AdjustmentOverride:   true,
}

// AllowedTargetEntities defines the closed set of adjustment targets.
var AllowedTargetEntities = map[string]bool{
	TargetService:  true,
	TargetPackage:  true,
	TargetCustomer: true,
}

// AllowedDaysOfWeek defines valid day names for time_based rule conditions.
var AllowedDaysOfWeek = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}
