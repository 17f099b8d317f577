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

package store

import (
	"fmt"

	"github.com/wso2/member-registry-service/internal/system/database/provider"
	"github.com/wso2/member-registry-service/internal/system/database/scripts"
	errors2 "github.com/wso2/member-registry-service/internal/system/errors"
	"github.com/wso2/member-registry-service/internal/system/log"
)

// RuleStoreInterface persists the rule set as an opaque JSON document under a key.
type RuleStoreInterface interface {
	GetRulesConfig(key string) (string, bool, error)
	UpsertRulesConfig(key string, rulesJSON string) error
}

type RuleStore struct{}

// GetRulesConfig returns the stored JSON document and whether one exists.
func (s *RuleStore) GetRulesConfig(key string) (string, bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching validation rules: %s", key)
		logger.Debug(errorMsg, log.Error(err))
		return "", false, errors2.NewServerError(errors2.GET_VALIDATION_RULES.WithDescription(errorMsg), err)
	}
	defer dbClient.Close()

	query := scripts.GetValidationRules[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, key)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching validation rules: %s", key)
		logger.Debug(errorMsg, log.Error(err))
		return "", false, errors2.NewServerError(errors2.GET_VALIDATION_RULES.WithDescription(errorMsg), err)
	}
	if len(results) == 0 {
		return "", false, nil
	}

	switch raw := results[0]["rules_json"].(type) {
	case string:
		return raw, true, nil
	case []byte:
		return string(raw), true, nil
	default:
		return "", false, nil
	}
}

// UpsertRulesConfig replaces the stored document, creating it on first write.
func (s *RuleStore) UpsertRulesConfig(key string, rulesJSON string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for updating validation rules: %s", key)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.UPDATE_VALIDATION_RULES.WithDescription(errorMsg), err)
	}
	defer dbClient.Close()

	query := scripts.UpsertValidationRules[provider.NewDBProvider().GetDBType()]
	if _, err := dbClient.ExecuteCommand(query, key, rulesJSON); err != nil {
		errorMsg := fmt.Sprintf("Failed to upsert validation rules: %s", key)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.UPDATE_VALIDATION_RULES.WithDescription(errorMsg), err)
	}
	return nil
}
