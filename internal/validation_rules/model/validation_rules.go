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

import "github.com/wso2/member-registry-service/internal/system/constants"

// FieldRule configures validation for one canonical member field.
type FieldRule struct {
	Min      *int   `json:"min,omitempty"`
	Required bool   `json:"required"`
	Label    string `json:"label"`
}

// IsZero reports whether the rule carries no setting at all.
func (r FieldRule) IsZero() bool {
	return r.Min == nil && !r.Required && r.Label == ""
}

// ValidationRuleSet maps canonical field keys to their rules.
type ValidationRuleSet map[string]FieldRule

type UpdateRulesResponse struct {
	Success bool              `json:"success"`
	Rules   ValidationRuleSet `json:"rules"`
}

func intPtr(v int) *int {
	return &v
}

// DefaultRules returns the rule set in effect until an administrator stores one.
func DefaultRules() ValidationRuleSet {
	return ValidationRuleSet{
		constants.FieldIdCard:      {Min: intPtr(8), Required: true, Label: "ID Card"},
		constants.FieldFirstName:   {Min: intPtr(2), Required: true, Label: "First Name"},
		constants.FieldLastName:    {Min: intPtr(2), Required: true, Label: "Last Name"},
		constants.FieldEmail:       {Required: false, Label: "Email"},
		constants.FieldMobilePhone: {Min: intPtr(9), Required: false, Label: "Mobile Phone"},
	}
}
