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

package provider

import "github.com/wso2/member-registry-service/internal/member_import/service"

// MemberImportProviderInterface defines the interface for the member import provider.
type MemberImportProviderInterface interface {
	GetMemberImportService() service.MemberImportServiceInterface
}

// MemberImportProvider is the default implementation of the MemberImportProviderInterface.
type MemberImportProvider struct{}

// NewMemberImportProvider creates a new instance of MemberImportProvider.
func NewMemberImportProvider() MemberImportProviderInterface {
	return &MemberImportProvider{}
}

// GetMemberImportService returns the member import service instance.
func (p *MemberImportProvider) GetMemberImportService() service.MemberImportServiceInterface {
	return service.GetMemberImportService()
}
