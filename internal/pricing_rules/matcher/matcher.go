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

// Package matcher decides whether a pricing rule applies to an evaluation
// context. Matching is a pure predicate: no I/O, no side effects, no clock
// reads (the caller supplies the evaluation timestamp).
package matcher

import (
	"strings"
	"time"

	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/model"
	"github.com/tradeops/pricing-rules-service/internal/system/constants"
)

// Context is the set of facts one evaluation request matches rules against.
type Context struct {
	CustomerCategoryId string
	ServiceId          string
	PackageId          string
	Quantity           int
	TargetEntity       string
	TargetId           string
	Now                time.Time
}

// Matches reports whether the rule applies to the context. Rules are assumed
// to have passed model.Validate at load time; an unknown rule_type therefore
// cannot occur here and falls through to false.
func Matches(rule model.PricingRule, evalCtx Context) bool {

	if !rule.IsActive {
		return false
	}
	if !withinValidity(rule, evalCtx.Now) {
		return false
	}
	if !targetMatches(rule, evalCtx) {
		return false
	}

	switch rule.RuleType {
	case constants.RuleTypeCustomerCategory:
		cond := rule.Conditions.CustomerCategory
		return cond != nil && cond.CustomerCategoryId == evalCtx.CustomerCategoryId
	case constants.RuleTypeQuantity:
		cond := rule.Conditions.Quantity
		if cond == nil || evalCtx.Quantity < cond.MinQuantity {
			return false
		}
		return cond.MaxQuantity == nil || evalCtx.Quantity <= *cond.MaxQuantity
	case constants.RuleTypeTimeBased:
		cond := rule.Conditions.TimeBased
		return cond != nil && timeMatches(cond, evalCtx.Now)
	case constants.RuleTypeBundle:
		cond := rule.Conditions.Bundle
		return cond != nil && cond.PackageId == evalCtx.PackageId
	default:
		return false
	}
}

// withinValidity checks the [valid_from, valid_until] window. A zero bound is
// treated as unbounded; an expired or not-yet-valid rule never matches.
func withinValidity(rule model.PricingRule, now time.Time) bool {
	ts := now.Unix()
	if rule.ValidFrom != 0 && ts < rule.ValidFrom {
		return false
	}
	if rule.ValidUntil != 0 && ts > rule.ValidUntil {
		return false
	}
	return true
}

// targetMatches checks the rule's target against the context's target. An
// empty target_id on the rule matches any instance of that entity type.
func targetMatches(rule model.PricingRule, evalCtx Context) bool {
	if rule.TargetEntity != evalCtx.TargetEntity {
		return false
	}
	return rule.TargetId == "" || rule.TargetId == evalCtx.TargetId
}

// timeMatches checks the weekday set and the optional time-of-day window.
// An end time earlier than the start time denotes a window crossing midnight.
func timeMatches(cond *model.TimeBasedCondition, now time.Time) bool {

	day := strings.ToLower(now.Weekday().String())
	inDaySet := false
	for _, d := range cond.DaysOfWeek {
		if d == day {
			inDaySet = true
			break
		}
	}
	if !inDaySet {
		return false
	}

	if cond.TimeOfDayStart == "" {
		return true
	}

	start, err := model.ParseTimeOfDay(cond.TimeOfDayStart)
	if err != nil {
		return false
	}
	end, err := model.ParseTimeOfDay(cond.TimeOfDayEnd)
	if err != nil {
		return false
	}

	minuteOfDay := now.Hour()*60 + now.Minute()
	if start < end {
		// Half-open window [start, end).
		return minuteOfDay >= start && minuteOfDay < end
	}
	if start > end {
		// Window crosses midnight, e.g. 22:00-02:00.
		return minuteOfDay >= start || minuteOfDay < end
	}
	return false
}
