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
	"sync"
	"time"

	"github.com/wso2/member-registry-service/internal/activity_log/model"
	"github.com/wso2/member-registry-service/internal/system/database/provider"
	"github.com/wso2/member-registry-service/internal/system/database/scripts"
	errors2 "github.com/wso2/member-registry-service/internal/system/errors"
	"github.com/wso2/member-registry-service/internal/system/log"
)

// ActivityLogStoreInterface is the append-only sink behind the activity log.
type ActivityLogStoreInterface interface {
	AddActivityLog(entry model.ActivityLog) error
	GetRecentActivityLogs(limit int) ([]model.ActivityLog, error)
}

var (
	activeStoreMu sync.RWMutex
	activeStore   ActivityLogStoreInterface
)

// UseActivityLogStore selects the backend used by the activity log service.
func UseActivityLogStore(s ActivityLogStoreInterface) {
	activeStoreMu.Lock()
	defer activeStoreMu.Unlock()
	activeStore = s
}

// GetActivityLogStore returns the configured backend, PostgreSQL unless another one was selected.
func GetActivityLogStore() ActivityLogStoreInterface {
	activeStoreMu.RLock()
	defer activeStoreMu.RUnlock()
	if activeStore == nil {
		return &ActivityLogStore{}
	}
	return activeStore
}

// ActivityLogStore persists entries in the activity_logs table.
type ActivityLogStore struct{}

func (s *ActivityLogStore) AddActivityLog(entry model.ActivityLog) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for adding activity log: %s", entry.Action)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ADD_ACTIVITY_LOG.WithDescription(errorMsg), err)
	}
	defer dbClient.Close()

	query := scripts.InsertActivityLog[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteCommand(query, entry.ID, entry.Action, entry.Details, entry.EntityID, entry.Admin,
		entry.CreatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to insert activity log: %s", entry.Action)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ADD_ACTIVITY_LOG.WithDescription(errorMsg), err)
	}
	return nil
}

func (s *ActivityLogStore) GetRecentActivityLogs(limit int) ([]model.ActivityLog, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for fetching activity logs."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.GET_ACTIVITY_LOGS.WithDescription(errorMsg), err)
	}
	defer dbClient.Close()

	query := scripts.GetRecentActivityLogs[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, limit)
	if err != nil {
		errorMsg := "Failed to execute query for fetching activity logs."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.GET_ACTIVITY_LOGS.WithDescription(errorMsg), err)
	}

	logs := make([]model.ActivityLog, 0, len(results))
	for _, row := range results {
		logs = append(logs, mapRowToActivityLog(row))
	}
	return logs, nil
}

func mapRowToActivityLog(row map[string]interface{}) model.ActivityLog {
	entry := model.ActivityLog{
		ID:      asString(row["id"]),
		Action:  asString(row["action"]),
		Details: asString(row["details"]),
		Admin:   asString(row["admin"]),
	}
	if entityID := asString(row["entity_id"]); entityID != "" {
		entry.EntityID = &entityID
	}
	if createdAt, ok := row["created_at"].(time.Time); ok {
		entry.CreatedAt = createdAt.UTC()
	}
	return entry
}

func asString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return ""
	}
}
