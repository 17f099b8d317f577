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

	"github.com/wso2/member-registry-service/internal/system/context"
	"github.com/wso2/member-registry-service/internal/system/utils"
	"github.com/wso2/member-registry-service/internal/validation_rules/model"
	"github.com/wso2/member-registry-service/internal/validation_rules/provider"
)

type ValidationRuleHandler struct {
	provider provider.ValidationRuleProviderInterface
}

func NewValidationRuleHandler() *ValidationRuleHandler {

	return &ValidationRuleHandler{
		provider: provider.NewValidationRuleProvider(),
	}
}

// GetRules returns the active rule set.
func (h *ValidationRuleHandler) GetRules(w http.ResponseWriter, r *http.Request) {

	rules, err := h.provider.GetValidationRuleService().GetRules()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, rules)
}

// UpdateRules replaces the active rule set with the request body.
func (h *ValidationRuleHandler) UpdateRules(w http.ResponseWriter, r *http.Request) {

	var rules model.ValidationRuleSet
	if err := utils.DecodeJSONBody(r, &rules, "validation rules"); err != nil {
		utils.HandleError(w, err)
		return
	}

	if err := h.provider.GetValidationRuleService().SetRules(rules, context.GetActor(r.Context())); err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, model.UpdateRulesResponse{Success: true, Rules: rules})
}
