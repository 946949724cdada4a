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

package store

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/model"
	"github.com/tradeops/pricing-rules-service/internal/system/constants"
	dbclient "github.com/tradeops/pricing-rules-service/internal/system/database/client"
	"github.com/tradeops/pricing-rules-service/internal/system/database/provider"
	errors2 "github.com/tradeops/pricing-rules-service/internal/system/errors"
	"github.com/tradeops/pricing-rules-service/internal/system/log"
)

// flatConditions is the column representation of RuleConditions. Columns not
// belonging to the rule's type carry their zero values, never SQL NULL; the
// schema declares the condition columns NOT NULL and scanRule normalizes the
// zero values back to the typed condition structs. Only max_quantity is
// nullable, marking an open-ended quantity range.
type flatConditions struct {
	customerCategoryId string
	minQuantity        int
	maxQuantity        interface{}
	timeOfDayStart     string
	timeOfDayEnd       string
	packageId          string
}

func flattenConditions(rule model.PricingRule) flatConditions {

	f := flatConditions{}
	if cond := rule.Conditions.CustomerCategory; cond != nil {
		f.customerCategoryId = cond.CustomerCategoryId
	}
	if cond := rule.Conditions.Quantity; cond != nil {
		f.minQuantity = cond.MinQuantity
		if cond.MaxQuantity != nil {
			f.maxQuantity = *cond.MaxQuantity
		}
	}
	if cond := rule.Conditions.TimeBased; cond != nil {
		f.timeOfDayStart = cond.TimeOfDayStart
		f.timeOfDayEnd = cond.TimeOfDayEnd
	}
	if cond := rule.Conditions.Bundle; cond != nil {
		f.packageId = cond.PackageId
	}
	return f
}

func ruleRowArgs(rule model.PricingRule) []interface{} {

	cond := flattenConditions(rule)
	return []interface{}{
		rule.RuleId, rule.OrgHandle, rule.Name, rule.Description, rule.RuleType,
		cond.customerCategoryId, cond.minQuantity, cond.maxQuantity, cond.timeOfDayStart,
		cond.timeOfDayEnd, cond.packageId, rule.AdjustmentType, rule.AdjustmentValue.String(),
		rule.TargetEntity, rule.TargetId, rule.Priority, rule.IsActive, rule.ValidFrom,
		rule.ValidUntil, rule.CreatedAt, rule.UpdatedAt,
	}
}

func insertDayRows(tx *sql.Tx, rule model.PricingRule) error {

	if rule.Conditions.TimeBased == nil {
		return nil
	}
	for _, day := range rule.Conditions.TimeBased.DaysOfWeek {
		if _, err := tx.Exec(`INSERT INTO pricing_rule_days (rule_id, day_of_week) VALUES ($1, $2)`,
			rule.RuleId, day); err != nil {
			return err
		}
	}
	return nil
}

func queryRules(query string, args ...interface{}) ([]model.PricingRule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for fetching pricing rules."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(query, args...)
	if err != nil {
		errorMsg := "Failed to fetch pricing rules."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_PRICING_RULES.Code,
			Message:     errors2.FETCH_PRICING_RULES.Message,
			Description: errorMsg,
		}, err)
	}

	rules := make([]model.PricingRule, 0, len(results))
	for _, row := range results {
		rule, err := scanRule(row)
		if err != nil {
			return nil, err
		}
		if err := attachDayRows(dbClient, rule); err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}
	return rules, nil
}

func scanRule(row map[string]interface{}) (*model.PricingRule, error) {

	adjustmentValue, err := decimal.NewFromString(stringVal(row["adjustment_value"]))
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_PRICING_RULES.Code,
			Message:     errors2.FETCH_PRICING_RULES.Message,
			Description: fmt.Sprintf("Stored adjustment_value is not a decimal: %v", row["adjustment_value"]),
		}, err)
	}

	rule := &model.PricingRule{
		RuleId:          stringVal(row["rule_id"]),
		OrgHandle:       stringVal(row["org_handle"]),
		Name:            stringVal(row["name"]),
		Description:     stringVal(row["description"]),
		RuleType:        stringVal(row["rule_type"]),
		AdjustmentType:  stringVal(row["adjustment_type"]),
		AdjustmentValue: adjustmentValue,
		TargetEntity:    stringVal(row["target_entity"]),
		TargetId:        stringVal(row["target_id"]),
		Priority:        int(int64Val(row["priority"])),
		IsActive:        boolVal(row["is_active"]),
		ValidFrom:       int64Val(row["valid_from"]),
		ValidUntil:      int64Val(row["valid_until"]),
		CreatedAt:       int64Val(row["created_at"]),
		UpdatedAt:       int64Val(row["updated_at"]),
	}

	switch rule.RuleType {
	case constants.RuleTypeCustomerCategory:
		rule.Conditions.CustomerCategory = &model.CustomerCategoryCondition{
			CustomerCategoryId: stringVal(row["customer_category_id"]),
		}
	case constants.RuleTypeQuantity:
		cond := &model.QuantityCondition{MinQuantity: int(int64Val(row["min_quantity"]))}
		if row["max_quantity"] != nil {
			maxQuantity := int(int64Val(row["max_quantity"]))
			cond.MaxQuantity = &maxQuantity
		}
		rule.Conditions.Quantity = cond
	case constants.RuleTypeTimeBased:
		rule.Conditions.TimeBased = &model.TimeBasedCondition{
			TimeOfDayStart: stringVal(row["time_of_day_start"]),
			TimeOfDayEnd:   stringVal(row["time_of_day_end"]),
		}
	case constants.RuleTypeBundle:
		rule.Conditions.Bundle = &model.BundleCondition{
			PackageId: stringVal(row["package_id"]),
		}
	}
	return rule, nil
}

// attachDayRows loads the weekday child rows for time_based rules.
func attachDayRows(dbClient dbclient.DBClientInterface, rule *model.PricingRule) error {

	if rule.Conditions.TimeBased == nil {
		return nil
	}
	results, err := dbClient.ExecuteQuery(
		`SELECT day_of_week FROM pricing_rule_days WHERE rule_id = $1 ORDER BY day_of_week`, rule.RuleId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch weekday rows for pricing rule: %s", rule.RuleId)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_PRICING_RULES.Code,
			Message:     errors2.FETCH_PRICING_RULES.Message,
			Description: errorMsg,
		}, err)
	}
	for _, row := range results {
		rule.Conditions.TimeBased.DaysOfWeek = append(rule.Conditions.TimeBased.DaysOfWeek,
			stringVal(row["day_of_week"]))
	}
	return nil
}

// stringVal normalizes text column values, which the driver may hand back as
// string or []byte depending on the column type.
func stringVal(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case []byte:
		return string(value)
	default:
		return ""
	}
}

func int64Val(v interface{}) int64 {
	if value, ok := v.(int64); ok {
		return value
	}
	return 0
}

func boolVal(v interface{}) bool {
	if value, ok := v.(bool); ok {
		return value
	}
	return false
}
