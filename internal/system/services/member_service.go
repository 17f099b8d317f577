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

package services

import (
	"fmt"
	"net/http"

	"github.com/wso2/member-registry-service/internal/member/handler"
)

type MemberService struct {
	memberHandler *handler.MemberHandler
}

func NewMemberService(mux *http.ServeMux, apiBasePath string) *MemberService {

	instance := &MemberService{
		memberHandler: handler.NewMemberHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

func (s *MemberService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	handle(mux, fmt.Sprintf("GET %s/users", apiBasePath), "list_users", s.memberHandler.GetMembers)
	handle(mux, fmt.Sprintf("POST %s/users", apiBasePath), "register_user", s.memberHandler.RegisterMember)
	handle(mux, fmt.Sprintf("DELETE %s/users", apiBasePath), "bulk_delete_users", s.memberHandler.DeleteMembers)
	handle(mux, fmt.Sprintf("DELETE %s/users/clear", apiBasePath), "clear_users", s.memberHandler.ClearMembers)
	handle(mux, fmt.Sprintf("PATCH %s/users/{id}", apiBasePath), "update_user", s.memberHandler.UpdateMember)
	handle(mux, fmt.Sprintf("DELETE %s/users/{id}", apiBasePath), "delete_user", s.memberHandler.DeleteMember)
}
