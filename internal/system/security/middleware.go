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

package security

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/wso2/member-registry-service/internal/system/authn"
	"github.com/wso2/member-registry-service/internal/system/config"
	"github.com/wso2/member-registry-service/internal/system/constants"
	mrscontext "github.com/wso2/member-registry-service/internal/system/context"
	"github.com/wso2/member-registry-service/internal/system/errors"
	"github.com/wso2/member-registry-service/internal/system/log"
	"github.com/wso2/member-registry-service/internal/system/utils"
)

// AuthnWithAdminCredentials performs authentication using admin credentials from the request
// and returns the authenticated actor.
func AuthnWithAdminCredentials(r *http.Request, authConfig config.AuthConfig) (string, error) {

	actor, ok := authenticate(r, authConfig)
	if !ok {
		return "", errors.NewClientError(errors.UN_AUTHORIZED.WithDescription("Missing or invalid Authorization header"),
			http.StatusUnauthorized)
	}
	return actor, nil
}

// authenticate accepts the configured Basic admin credentials, or a bearer JWT signed with the
// configured secret that names its subject.
func authenticate(r *http.Request, authConfig config.AuthConfig) (string, bool) {

	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	switch {
	case strings.HasPrefix(authHeader, "Basic "):
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Basic "))
		if validateAdminCredentials(token, authConfig) {
			return strings.TrimSpace(authConfig.AdminUsername), true
		}
	case strings.HasPrefix(authHeader, "Bearer "):
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if actor := authn.ActorFromBearerToken(token, authConfig.JWTSecret); actor != "" {
			return actor, true
		}
	}
	return "", false
}

func validateAdminCredentials(token string, authConfig config.AuthConfig) bool {

	username := strings.TrimSpace(authConfig.AdminUsername)
	password := strings.TrimSpace(authConfig.AdminPassword)
	if username == "" || password == "" || token == "" {
		return false
	}

	expected := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) == 1 {
		log.GetLogger().Debug("Admin credentials validated successfully.")
		return true
	}
	return false
}

// ResolveActor names the administrator behind a request for activity log attribution. Only
// credentials that pass verification name an actor; anything else is the system actor.
func ResolveActor(r *http.Request, authConfig config.AuthConfig) string {

	if actor, ok := authenticate(r, authConfig); ok {
		return actor
	}
	return constants.SystemActor
}

// AdminMiddleware enforces admin credentials when authentication is enabled and records the
// resolved actor on the request context.
func AdminMiddleware(authConfig config.AuthConfig, next http.Handler) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authConfig.Enabled || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r.WithContext(mrscontext.WithActor(r.Context(), ResolveActor(r, authConfig))))
			return
		}
		actor, err := AuthnWithAdminCredentials(r, authConfig)
		if err != nil {
			log.GetLogger().Audit(log.AuditEvent{
				InitiatorType: log.InitiatorTypeUser,
				TargetType:    log.TargetTypeMemberRegistry,
				ActionID:      log.ActionAuthenticationFailure,
				TraceID:       mrscontext.GetTraceID(r.Context()),
				Data:          map[string]string{"path": r.URL.Path},
			})
			utils.HandleError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(mrscontext.WithActor(r.Context(), actor)))
	})
}

// CORSMiddleware allows the configured origins, or any origin when none are configured.
func CORSMiddleware(allowedOrigins []string, next http.Handler) http.Handler {

	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimSpace(origin)] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(allowed) == 0 || allowed["*"]:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case allowed[origin]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, "+constants.TraceIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length, "+constants.TraceIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
