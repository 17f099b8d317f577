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

	"github.com/pkg/errors"
	"github.com/wso2/member-registry-service/internal/member/model"
	"github.com/wso2/member-registry-service/internal/member/provider"
	"github.com/wso2/member-registry-service/internal/member/service"
	"github.com/wso2/member-registry-service/internal/system/context"
	"github.com/wso2/member-registry-service/internal/system/utils"
)

type MemberHandler struct {
	provider provider.MemberProviderInterface
}

func NewMemberHandler() *MemberHandler {

	return &MemberHandler{
		provider: provider.NewMemberProvider(),
	}
}

// NewMemberHandlerWithProvider is used by tests to swap the service.
func NewMemberHandlerWithProvider(p provider.MemberProviderInterface) *MemberHandler {
	return &MemberHandler{provider: p}
}

// GetMembers lists members, optionally filtered by ?search=, together with registry statistics.
func (h *MemberHandler) GetMembers(w http.ResponseWriter, r *http.Request) {

	resp, err := h.provider.GetMemberService().ListMembers(r.URL.Query().Get("search"))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// RegisterMember creates a single member from a JSON body.
func (h *MemberHandler) RegisterMember(w http.ResponseWriter, r *http.Request) {

	var input map[string]interface{}
	if err := utils.DecodeJSONBody(r, &input, "user"); err != nil {
		utils.HandleError(w, err)
		return
	}

	created, err := h.provider.GetMemberService().RegisterMember(input, context.GetActor(r.Context()))
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			utils.WriteJSONResponse(w, http.StatusBadRequest, model.RegistrationErrorResponse{
				Error:   validationErr.Err.Message,
				Details: validationErr.Details,
			})
			return
		}
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, created)
}

// DeleteMembers removes the members listed in {"ids": [...]}.
func (h *MemberHandler) DeleteMembers(w http.ResponseWriter, r *http.Request) {

	var req model.DeleteMembersRequest
	if err := utils.DecodeJSONBody(r, &req, "bulk delete request"); err != nil {
		utils.HandleError(w, err)
		return
	}

	count, err := h.provider.GetMemberService().DeleteMembers(req.IDs, context.GetActor(r.Context()))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, model.DeleteMembersResponse{Success: true, Count: count})
}

// ClearMembers removes every member.
func (h *MemberHandler) ClearMembers(w http.ResponseWriter, r *http.Request) {

	count, err := h.provider.GetMemberService().ClearMembers(context.GetActor(r.Context()))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, model.DeleteMembersResponse{Success: true, Count: count})
}

// UpdateMember applies a partial update to the member named in the path.
func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {

	id, err := utils.ParsePathID(r.PathValue("id"))
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var fields map[string]interface{}
	if err := utils.DecodeJSONBody(r, &fields, "user"); err != nil {
		utils.HandleError(w, err)
		return
	}

	updated, err := h.provider.GetMemberService().UpdateMember(id, fields, context.GetActor(r.Context()))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, model.MemberResponse{Success: true, User: *updated})
}

// DeleteMember removes the member named in the path.
func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {

	id, err := utils.ParsePathID(r.PathValue("id"))
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	if err := h.provider.GetMemberService().DeleteMember(id, context.GetActor(r.Context())); err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}
