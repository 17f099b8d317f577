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

import (
	"sync"

	"github.com/wso2/member-registry-service/internal/health_check/service"
)

var (
	readinessMu      sync.RWMutex
	readinessService service.HealthCheckServiceInterface
)

// UseReadinessService replaces the readiness check behind /ready. A nil service restores the
// database check.
func UseReadinessService(s service.HealthCheckServiceInterface) {
	readinessMu.Lock()
	defer readinessMu.Unlock()
	readinessService = s
}

// HealthCheckProviderInterface hands the readiness check to the health handler.
type HealthCheckProviderInterface interface {
	GetHealthCheckService() service.HealthCheckServiceInterface
}

type HealthCheckProvider struct{}

func NewHealthCheckProvider() HealthCheckProviderInterface {
	return &HealthCheckProvider{}
}

// GetHealthCheckService returns the selected readiness check, or the member database check.
func (cp *HealthCheckProvider) GetHealthCheckService() service.HealthCheckServiceInterface {
	readinessMu.RLock()
	defer readinessMu.RUnlock()
	if readinessService != nil {
		return readinessService
	}
	return service.GetHealthCheckService()
}
