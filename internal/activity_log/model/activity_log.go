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

package model

import "time"

// ActivityLog is one append-only audit entry describing an administrative action.
type ActivityLog struct {
	ID        string    `json:"id" bson:"_id"`
	Action    string    `json:"action" bson:"action"`
	Details   string    `json:"details" bson:"details"`
	EntityID  *string   `json:"entityId" bson:"entityId,omitempty"`
	Admin     string    `json:"admin" bson:"admin"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type ActivityLogsResponse struct {
	Logs []ActivityLog `json:"logs"`
}
