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

import (
	"encoding/json"

	memberModel "github.com/wso2/member-registry-service/internal/member/model"
)

// AcceptedRow is a row that passed validation, still waiting to be persisted.
type AcceptedRow struct {
	Member   memberModel.Member
	ExcelRow int
	// Data is kept so a row failing at insert time can be reported like a validation failure.
	Data map[string]interface{}
}

// RejectedRow is a row that failed validation or persistence.
type RejectedRow struct {
	// Data is the row as mapped from the spreadsheet, before coercion.
	Data     map[string]interface{}
	ExcelRow int
	// Errors holds messages per field. The "db" key is reserved for persistence failures.
	Errors map[string][]string
}

// MarshalJSON flattens the mapped fields next to excelRow and errors.
func (r RejectedRow) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(r.Data)+2)
	for k, v := range r.Data {
		flat[k] = v
	}
	flat["excelRow"] = r.ExcelRow
	flat["errors"] = r.Errors
	return json.Marshal(flat)
}

// ImportSummary is the structured report returned for an upload.
type ImportSummary struct {
	Success    bool                 `json:"success"`
	AddedCount int                  `json:"addedCount"`
	ErrorCount int                  `json:"errorCount"`
	Errors     []RejectedRow        `json:"errors"`
	Users      []memberModel.Member `json:"users"`
}
