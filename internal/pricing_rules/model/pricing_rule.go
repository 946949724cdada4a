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

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradeops/pricing-rules-service/internal/system/constants"
	errors2 "github.com/tradeops/pricing-rules-service/internal/system/errors"
)

// PricingRule is an administrator-authored pricing adjustment. The engine
// treats it as immutable data: it is read from the store, matched and
// applied, never mutated.
type PricingRule struct {
	RuleId          string          `json:"rule_id,omitempty"`
	OrgHandle       string          `json:"org_handle,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	RuleType        string          `json:"rule_type"`
	Conditions      RuleConditions  `json:"conditions"`
	AdjustmentType  string          `json:"adjustment_type"`
	AdjustmentValue decimal.Decimal `json:"adjustment_value"`
	TargetEntity    string          `json:"target_entity"`
	TargetId        string          `json:"target_id,omitempty"` // empty = any instance of the target entity type
	Priority        int             `json:"priority"`
	IsActive        bool            `json:"is_active"`
	ValidFrom       int64           `json:"valid_from,omitempty"`  // unix seconds, 0 = unbounded
	ValidUntil      int64           `json:"valid_until,omitempty"` // unix seconds, 0 = unbounded
	CreatedAt       int64           `json:"created_at,omitempty"`
	UpdatedAt       int64           `json:"updated_at,omitempty"`
}

// RuleConditions holds the condition payload for a rule. Exactly one member
// is populated, and it must correspond to the rule's rule_type. Validate
// enforces this, so evaluation code can switch on rule_type exhaustively.
type RuleConditions struct {
	CustomerCategory *CustomerCategoryCondition `json:"customer_category,omitempty"`
	Quantity         *QuantityCondition         `json:"quantity,omitempty"`
	TimeBased        *TimeBasedCondition        `json:"time_based,omitempty"`
	Bundle           *BundleCondition           `json:"bundle,omitempty"`
}

type CustomerCategoryCondition struct {
	CustomerCategoryId string `json:"customer_category_id"`
}

type QuantityCondition struct {
	MinQuantity int  `json:"min_quantity"`
	MaxQuantity *int `json:"max_quantity,omitempty"` // absent = unbounded
}

// TimeBasedCondition matches a set of weekdays with an optional time-of-day
// window. An end time earlier than the start time denotes a window that
// crosses midnight.
type TimeBasedCondition struct {
	DaysOfWeek     []string `json:"days_of_week"`
	TimeOfDayStart string   `json:"time_of_day_start,omitempty"` // "HH:MM"
	TimeOfDayEnd   string   `json:"time_of_day_end,omitempty"`   // "HH:MM"
}

type BundleCondition struct {
	PackageId string `json:"package_id"`
}

// Validate checks a rule definition for structural validity. Malformed
// configuration is rejected here, at load/create time, never silently
// skipped during evaluation.
func (rule *PricingRule) Validate() error {

	if rule.Name == "" {
		return invalidRule("Rule name is required.")
	}
	if !constants.AllowedRuleTypes[rule.RuleType] {
		return invalidRule(fmt.Sprintf("Unknown rule_type %q.", rule.RuleType))
	}
	if !constants.AllowedAdjustmentTypes[rule.AdjustmentType] {
		return invalidRule(fmt.Sprintf("Unknown adjustment_type %q.", rule.AdjustmentType))
	}
	if !constants.AllowedTargetEntities[rule.TargetEntity] {
		return invalidRule(fmt.Sprintf("Unknown target_entity %q.", rule.TargetEntity))
	}
	if rule.Priority < 1 || rule.Priority > 100 {
		return invalidRule(fmt.Sprintf("Priority %d is out of range [1, 100].", rule.Priority))
	}
	if rule.ValidFrom != 0 && rule.ValidUntil != 0 && rule.ValidUntil < rule.ValidFrom {
		return invalidRule("valid_until precedes valid_from.")
	}

	if err := rule.validateAdjustment(); err != nil {
		return err
	}
	return rule.validateConditions()
}

func (rule *PricingRule) validateAdjustment() error {

	switch rule.AdjustmentType {
	case constants.AdjustmentPercentage:
		// Discount-only: a percentage expresses how much is taken off.
		if rule.AdjustmentValue.IsNegative() || rule.AdjustmentValue.GreaterThan(decimal.NewFromInt(100)) {
			return invalidRule(fmt.Sprintf("Percentage adjustment_value %s is out of range [0, 100].",
				rule.AdjustmentValue.String()))
		}
	case constants.AdjustmentFixed, constants.AdjustmentOverride:
		if rule.AdjustmentValue.IsNegative() {
			return invalidRule(fmt.Sprintf("Monetary adjustment_value %s must not be negative.",
				rule.AdjustmentValue.String()))
		}
	}
	return nil
}

func (rule *PricingRule) validateConditions() error {

	populated := 0
	if rule.Conditions.CustomerCategory != nil {
		populated++
	}
	if rule.Conditions.Quantity != nil {
		populated++
	}
	if rule.Conditions.TimeBased != nil {
		populated++
	}
	if rule.Conditions.Bundle != nil {
		populated++
	}
	if populated != 1 {
		return invalidRule("Exactly one condition shape must be provided.")
	}

	switch rule.RuleType {
	case constants.RuleTypeCustomerCategory:
		cond := rule.Conditions.CustomerCategory
		if cond == nil {
			return invalidRule("customer_category rule requires a customer_category condition.")
		}
		if cond.CustomerCategoryId == "" {
			return invalidRule("customer_category_id is required.")
		}
	case constants.RuleTypeQuantity:
		cond := rule.Conditions.Quantity
		if cond == nil {
			return invalidRule("quantity rule requires a quantity condition.")
		}
		if cond.MinQuantity < 1 {
			return invalidRule("min_quantity must be at least 1.")
		}
		if cond.MaxQuantity != nil && *cond.MaxQuantity < cond.MinQuantity {
			return invalidRule("max_quantity precedes min_quantity.")
		}
	case constants.RuleTypeTimeBased:
		cond := rule.Conditions.TimeBased
		if cond == nil {
			return invalidRule("time_based rule requires a time_based condition.")
		}
		if len(cond.DaysOfWeek) == 0 {
			return invalidRule("days_of_week must not be empty.")
		}
		for _, day := range cond.DaysOfWeek {
			if !constants.AllowedDaysOfWeek[day] {
				return invalidRule(fmt.Sprintf("Unknown day_of_week %q.", day))
			}
		}
		if (cond.TimeOfDayStart == "") != (cond.TimeOfDayEnd == "") {
			return invalidRule("time_of_day_start and time_of_day_end must be provided together.")
		}
		if cond.TimeOfDayStart != "" {
			if _, err := ParseTimeOfDay(cond.TimeOfDayStart); err != nil {
				return invalidRule(fmt.Sprintf("Invalid time_of_day_start %q.", cond.TimeOfDayStart))
			}
			if _, err := ParseTimeOfDay(cond.TimeOfDayEnd); err != nil {
				return invalidRule(fmt.Sprintf("Invalid time_of_day_end %q.", cond.TimeOfDayEnd))
			}
		}
	case constants.RuleTypeBundle:
		cond := rule.Conditions.Bundle
		if cond == nil {
			return invalidRule("bundle rule requires a bundle condition.")
		}
		if cond.PackageId == "" {
			return invalidRule("package_id is required.")
		}
	}
	return nil
}

// ParseTimeOfDay parses an "HH:MM" string into minutes since midnight.
func ParseTimeOfDay(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func invalidRule(description string) error {
	return errors2.NewClientErrorWithDescription(errors2.INVALID_RULE_DEFINITION, description,
		http.StatusBadRequest)
}
