/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
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

package service

import (
	"encoding/json"
	"fmt"
	"net/http"

	activityLogService "github.com/wso2/member-registry-service/internal/activity_log/service"
	"github.com/wso2/member-registry-service/internal/system/constants"
	errors2 "github.com/wso2/member-registry-service/internal/system/errors"
	"github.com/wso2/member-registry-service/internal/system/log"
	"github.com/wso2/member-registry-service/internal/validation_rules/model"
	"github.com/wso2/member-registry-service/internal/validation_rules/store"
)

// ValidationRuleServiceInterface defines the rule store operations.
type ValidationRuleServiceInterface interface {
	GetRules() (model.ValidationRuleSet, error)
	SetRules(rules model.ValidationRuleSet, actor string) error
}

// ValidationRuleService is the default implementation of ValidationRuleServiceInterface.
type ValidationRuleService struct {
	store       store.RuleStoreInterface
	activityLog activityLogService.ActivityLogServiceInterface
}

// GetValidationRuleService returns a service backed by the PostgreSQL rule store.
func GetValidationRuleService() ValidationRuleServiceInterface {

	return &ValidationRuleService{
		store:       &store.RuleStore{},
		activityLog: activityLogService.GetActivityLogService(),
	}
}

// NewValidationRuleService wires the service with explicit dependencies.
func NewValidationRuleService(ruleStore store.RuleStoreInterface,
	activityLog activityLogService.ActivityLogServiceInterface) *ValidationRuleService {

	return &ValidationRuleService{store: ruleStore, activityLog: activityLog}
}

// GetRules returns the stored rule set, or the defaults when nothing has been stored yet.
func (s *ValidationRuleService) GetRules() (model.ValidationRuleSet, error) {

	raw, found, err := s.store.GetRulesConfig(constants.RulesConfigKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return model.DefaultRules(), nil
	}

	var rules model.ValidationRuleSet
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		errorMsg := "Stored validation rules are not valid JSON."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.GET_VALIDATION_RULES.WithDescription(errorMsg), err)
	}
	return rules, nil
}

// SetRules replaces the active rule set.
func (s *ValidationRuleService) SetRules(rules model.ValidationRuleSet, actor string) error {

	if err := validateRuleSet(rules); err != nil {
		return err
	}

	raw, err := json.Marshal(rules)
	if err != nil {
		return errors2.NewServerError(errors2.UPDATE_VALIDATION_RULES.WithDescription("Failed to encode validation rules."), err)
	}
	if err := s.store.UpsertRulesConfig(constants.RulesConfigKey, string(raw)); err != nil {
		return err
	}

	if actor == "" || actor == constants.SystemActor {
		actor = constants.RulesAdminActor
	}
	s.activityLog.LogActivity(constants.ActionUpdateRules, "Validation rulebook updated in database.",
		constants.RulesConfigKey, actor)
	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: log.InitiatorTypeAdmin,
		TargetID:      constants.RulesConfigKey,
		TargetType:    log.TargetTypeValidationRules,
		ActionID:      log.ActionUpdateValidationRules,
		Data:          map[string]int{"fields": len(rules)},
	})
	return nil
}

func validateRuleSet(rules model.ValidationRuleSet) error {

	idCard, ok := rules[constants.FieldIdCard]
	if !ok {
		return errors2.NewClientError(
			errors2.INVALID_VALIDATION_RULES.WithDescription("Rules configuration must contain an idCard entry."),
			http.StatusBadRequest)
	}
	// A null or empty JSON object decodes to the zero rule.
	if idCard.IsZero() {
		return errors2.NewClientError(
			errors2.INVALID_VALIDATION_RULES.WithDescription("The idCard entry must not be null or empty."),
			http.StatusBadRequest)
	}
	for field, rule := range rules {
		if rule.Min != nil && *rule.Min < 0 {
			return errors2.NewClientError(
				errors2.INVALID_VALIDATION_RULES.WithDescription(
					fmt.Sprintf("Minimum length for '%s' must not be negative.", field)),
				http.StatusBadRequest)
		}
	}
	return nil
}
