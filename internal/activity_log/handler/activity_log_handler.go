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

package handler

import (
	"net/http"
	"strconv"

	"github.com/wso2/member-registry-service/internal/activity_log/model"
	"github.com/wso2/member-registry-service/internal/activity_log/provider"
	"github.com/wso2/member-registry-service/internal/system/utils"
)

type ActivityLogHandler struct {
	provider provider.ActivityLogProviderInterface
}

func NewActivityLogHandler() *ActivityLogHandler {

	return &ActivityLogHandler{
		provider: provider.NewActivityLogProvider(),
	}
}

// GetActivityLogs returns the most recent activity log entries, newest first.
func (h *ActivityLogHandler) GetActivityLogs(w http.ResponseWriter, r *http.Request) {

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	logs, err := h.provider.GetActivityLogService().GetActivityLogs(limit)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, model.ActivityLogsResponse{Logs: logs})
}
