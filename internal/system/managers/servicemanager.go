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

package managers

import (
	"net/http"

	"github.com/wso2/member-registry-service/internal/system/config"
	traceContext "github.com/wso2/member-registry-service/internal/system/context"
	"github.com/wso2/member-registry-service/internal/system/metrics"
	"github.com/wso2/member-registry-service/internal/system/security"
	"github.com/wso2/member-registry-service/internal/system/services"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
	Handler() http.Handler
}

type ServiceManager struct {
	mux    *http.ServeMux
	apiMux *http.ServeMux
	config config.Config
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux, cfg config.Config) ServiceManagerInterface {

	return &ServiceManager{
		mux:    mux,
		apiMux: http.NewServeMux(),
		config: cfg,
	}
}

// RegisterServices mounts the admin API under apiBasePath behind admin authentication, and the
// health, readiness and metrics endpoints outside it.
func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	services.NewMemberImportService(sm.apiMux, apiBasePath)
	services.NewMemberService(sm.apiMux, apiBasePath)
	services.NewValidationRuleService(sm.apiMux, apiBasePath)
	services.NewActivityLogService(sm.apiMux, apiBasePath)
	sm.mux.Handle(apiBasePath+"/", security.AdminMiddleware(sm.config.Auth, sm.apiMux))

	services.NewHealthService(sm.mux)

	if sm.config.Metrics.Enabled {
		sm.mux.Handle("GET "+sm.config.Metrics.Path, metrics.Handler())
	}
	return nil
}

// Handler returns the root handler with CORS and trace id propagation applied.
func (sm *ServiceManager) Handler() http.Handler {
	return security.CORSMiddleware(sm.config.Auth.CORSAllowedOrigins, traceContext.TraceMiddleware(sm.mux))
}
