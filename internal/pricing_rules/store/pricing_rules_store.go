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
	"fmt"

	"github.com/tradeops/pricing-rules-service/internal/pricing_rules/model"
	"github.com/tradeops/pricing-rules-service/internal/system/database/provider"
	errors2 "github.com/tradeops/pricing-rules-service/internal/system/errors"
	"github.com/tradeops/pricing-rules-service/internal/system/log"
)

const ruleColumns = `rule_id, org_handle, name, description, rule_type, customer_category_id, min_quantity,
	max_quantity, time_of_day_start, time_of_day_end, package_id, adjustment_type, adjustment_value,
	target_entity, target_id, priority, is_active, valid_from, valid_until, created_at, updated_at`

// AddPricingRule inserts a new pricing rule with its weekday rows.
func AddPricingRule(rule model.PricingRule) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for adding pricing rule: %s", rule.Name)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_PRICING_RULE.Code,
			Message:     errors2.ADD_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for adding pricing rule: %s", rule.Name)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_PRICING_RULE.Code,
			Message:     errors2.ADD_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	query := `INSERT INTO pricing_rules (` + ruleColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`

	_, err = tx.Exec(query, ruleRowArgs(rule)...)
	if err != nil {
		_ = tx.Rollback()
		errorMsg := fmt.Sprintf("Failed on inserting pricing rule: %s", rule.Name)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_PRICING_RULE.Code,
			Message:     errors2.ADD_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	if err := insertDayRows(tx, rule); err != nil {
		_ = tx.Rollback()
		errorMsg := fmt.Sprintf("Failed on inserting weekday rows for pricing rule: %s", rule.Name)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_PRICING_RULE.Code,
			Message:     errors2.ADD_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	if err := tx.Commit(); err != nil {
		errorMsg := fmt.Sprintf("Failed on committing transaction while adding pricing rule: %s", rule.Name)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_PRICING_RULE.Code,
			Message:     errors2.ADD_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	logger.Info(fmt.Sprintf("Pricing rule: %s (%s) added successfully.", rule.RuleId, rule.Name))
	return nil
}

// UpdatePricingRule replaces an existing rule row and its weekday rows.
func UpdatePricingRule(rule model.PricingRule) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for updating pricing rule: %s", rule.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_PRICING_RULE.Code,
			Message:     errors2.UPDATE_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for updating pricing rule: %s", rule.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_PRICING_RULE.Code,
			Message:     errors2.UPDATE_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	query := `UPDATE pricing_rules SET
		name=$1, description=$2, rule_type=$3, customer_category_id=$4, min_quantity=$5, max_quantity=$6,
		time_of_day_start=$7, time_of_day_end=$8, package_id=$9, adjustment_type=$10, adjustment_value=$11,
		target_entity=$12, target_id=$13, priority=$14, is_active=$15, valid_from=$16, valid_until=$17,
		updated_at=$18
		WHERE rule_id=$19 AND org_handle=$20`

	cond := flattenConditions(rule)
	_, err = tx.Exec(query,
		rule.Name, rule.Description, rule.RuleType, cond.customerCategoryId, cond.minQuantity,
		cond.maxQuantity, cond.timeOfDayStart, cond.timeOfDayEnd, cond.packageId, rule.AdjustmentType,
		rule.AdjustmentValue.String(), rule.TargetEntity, rule.TargetId, rule.Priority, rule.IsActive,
		rule.ValidFrom, rule.ValidUntil, rule.UpdatedAt, rule.RuleId, rule.OrgHandle)
	if err != nil {
		_ = tx.Rollback()
		errorMsg := fmt.Sprintf("Failed to update pricing rule: %s", rule.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_PRICING_RULE.Code,
			Message:     errors2.UPDATE_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	_, err = tx.Exec(`DELETE FROM pricing_rule_days WHERE rule_id IN
		(SELECT rule_id FROM pricing_rules WHERE rule_id = $1 AND org_handle = $2)`,
		rule.RuleId, rule.OrgHandle)
	if err != nil {
		_ = tx.Rollback()
		errorMsg := fmt.Sprintf("Failed to replace weekday rows for pricing rule: %s", rule.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_PRICING_RULE.Code,
			Message:     errors2.UPDATE_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	if err := insertDayRows(tx, rule); err != nil {
		_ = tx.Rollback()
		errorMsg := fmt.Sprintf("Failed on inserting weekday rows for pricing rule: %s", rule.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_PRICING_RULE.Code,
			Message:     errors2.UPDATE_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	if err := tx.Commit(); err != nil {
		errorMsg := fmt.Sprintf("Failed to commit transaction for updating pricing rule: %s", rule.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_PRICING_RULE.Code,
			Message:     errors2.UPDATE_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	logger.Info(fmt.Sprintf("Pricing rule: %s updated successfully.", rule.RuleId))
	return nil
}

// GetPricingRule fetches a specific pricing rule by id, or nil when absent.
func GetPricingRule(orgHandle, ruleId string) (*model.PricingRule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching pricing rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_PRICING_RULES.Code,
			Message:     errors2.FETCH_PRICING_RULES.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT ` + ruleColumns + ` FROM pricing_rules WHERE org_handle = $1 AND rule_id = $2`
	results, err := dbClient.ExecuteQuery(query, orgHandle, ruleId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch pricing rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_PRICING_RULES.Code,
			Message:     errors2.FETCH_PRICING_RULES.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("No pricing rule found for rule id: %s", ruleId))
		return nil, nil
	}

	rule, err := scanRule(results[0])
	if err != nil {
		return nil, err
	}
	if err := attachDayRows(dbClient, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// GetPricingRules fetches all pricing rules for the organization.
func GetPricingRules(orgHandle string) ([]model.PricingRule, error) {

	query := `SELECT ` + ruleColumns + ` FROM pricing_rules WHERE org_handle = $1 ORDER BY priority, rule_id`
	return queryRules(query, orgHandle)
}

// FindApplicable returns the active rules for the given target as one
// consistent snapshot. The evaluation engine reads this exactly once per
// request and never re-reads mid-computation.
func FindApplicable(orgHandle, targetEntity, targetId string) ([]model.PricingRule, error) {

	query := `SELECT ` + ruleColumns + ` FROM pricing_rules
		WHERE org_handle = $1 AND is_active = TRUE AND target_entity = $2 AND (target_id = '' OR target_id = $3)
		ORDER BY priority, rule_id`
	return queryRules(query, orgHandle, targetEntity, targetId)
}

// DeletePricingRule removes a pricing rule and its weekday rows.
func DeletePricingRule(orgHandle, ruleId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for deleting pricing rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_PRICING_RULE.Code,
			Message:     errors2.DELETE_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for deleting pricing rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_PRICING_RULE.Code,
			Message:     errors2.DELETE_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	// Child rows are scoped through the parent so a caller from another
	// organization cannot strip the weekday set of a rule it does not own.
	if _, err := tx.Exec(`DELETE FROM pricing_rule_days WHERE rule_id IN
		(SELECT rule_id FROM pricing_rules WHERE rule_id = $1 AND org_handle = $2)`,
		ruleId, orgHandle); err != nil {
		_ = tx.Rollback()
		errorMsg := fmt.Sprintf("Failed to delete weekday rows for pricing rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_PRICING_RULE.Code,
			Message:     errors2.DELETE_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	if _, err := tx.Exec(`DELETE FROM pricing_rules WHERE rule_id = $1 AND org_handle = $2`,
		ruleId, orgHandle); err != nil {
		_ = tx.Rollback()
		errorMsg := fmt.Sprintf("Failed to delete pricing rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_PRICING_RULE.Code,
			Message:     errors2.DELETE_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	if err := tx.Commit(); err != nil {
		errorMsg := fmt.Sprintf("Failed to commit transaction for deleting pricing rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_PRICING_RULE.Code,
			Message:     errors2.DELETE_PRICING_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	logger.Info(fmt.Sprintf("Pricing rule: %s deleted successfully.", ruleId))
	return nil
}
