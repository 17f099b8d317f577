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
	"time"

	"github.com/google/uuid"
	"github.com/wso2/member-registry-service/internal/activity_log/model"
	"github.com/wso2/member-registry-service/internal/activity_log/store"
	"github.com/wso2/member-registry-service/internal/system/constants"
	"github.com/wso2/member-registry-service/internal/system/workers"
)

// ActivityLogServiceInterface defines the activity log operations.
type ActivityLogServiceInterface interface {
	LogActivity(action, details, entityID, admin string)
	GetActivityLogs(limit int) ([]model.ActivityLog, error)
}

// ActivityLogService is the default implementation of ActivityLogServiceInterface.
type ActivityLogService struct {
	store store.ActivityLogStoreInterface
}

// GetActivityLogService returns a service bound to the configured activity log backend.
func GetActivityLogService() ActivityLogServiceInterface {

	return &ActivityLogService{
		store: store.GetActivityLogStore(),
	}
}

// NewActivityLogService returns a service writing to the given store.
func NewActivityLogService(s store.ActivityLogStoreInterface) *ActivityLogService {

	return &ActivityLogService{store: s}
}

// LogActivity records an action without blocking the caller and never reports failure.
func (s *ActivityLogService) LogActivity(action, details, entityID, admin string) {

	if admin == "" {
		admin = constants.SystemActor
	}
	entry := model.ActivityLog{
		ID:        uuid.New().String(),
		Action:    action,
		Details:   details,
		Admin:     admin,
		CreatedAt: time.Now().UTC(),
	}
	if entityID != "" {
		entry.EntityID = &entityID
	}

	if workers.EnqueueActivityLog(entry) {
		return
	}
	go workers.PersistActivityLog(s.store, entry)
}

// GetActivityLogs returns the newest entries first, capped at the default limit.
func (s *ActivityLogService) GetActivityLogs(limit int) ([]model.ActivityLog, error) {

	if limit <= 0 || limit > constants.DefaultActivityLogLimit {
		limit = constants.DefaultActivityLogLimit
	}
	logs, err := s.store.GetRecentActivityLogs(limit)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []model.ActivityLog{}
	}
	return logs, nil
}
