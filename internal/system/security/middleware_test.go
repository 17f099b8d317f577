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
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/member-registry-service/internal/system/config"
	mrscontext "github.com/wso2/member-registry-service/internal/system/context"
	"github.com/wso2/member-registry-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestResolveActor(t *testing.T) {
	authConfig := config.AuthConfig{AdminUsername: "dana", AdminPassword: "secret", JWTSecret: testSecret}
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{"no header", "", "Internal System"},
		{"basic credentials", basicHeader("dana", "secret"), "dana"},
		{"bearer with name", "Bearer " + signedToken(t, testSecret, jwt.MapClaims{"name": "System Admin", "sub": "u-1"}), "System Admin"},
		{"bearer with sub only", "Bearer " + signedToken(t, testSecret, jwt.MapClaims{"sub": "u-1"}), "u-1"},
		{"opaque bearer", "Bearer abc123", "Internal System"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.expected, ResolveActor(r, authConfig))
		})
	}
}

func TestResolveActor_IgnoresUnverifiedCredentials(t *testing.T) {
	tests := []struct {
		name       string
		authConfig config.AuthConfig
		header     string
	}{
		{"wrong basic password", config.AuthConfig{AdminUsername: "dana", AdminPassword: "secret"}, basicHeader("dana", "guess")},
		{"basic without configured admin", config.AuthConfig{}, basicHeader("mallory", "x")},
		{"bearer signed with another key", config.AuthConfig{JWTSecret: testSecret},
			"Bearer " + signedToken(t, "other-secret", jwt.MapClaims{"name": "Mallory"})},
		{"bearer without configured secret", config.AuthConfig{},
			"Bearer " + signedToken(t, testSecret, jwt.MapClaims{"name": "Mallory"})},
		{"unsigned bearer", config.AuthConfig{JWTSecret: testSecret},
			"Bearer eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJuYW1lIjoiTWFsbG9yeSJ9."},
		{"expired bearer", config.AuthConfig{JWTSecret: testSecret},
			"Bearer " + signedToken(t, testSecret, jwt.MapClaims{"name": "Mallory", "exp": time.Now().Add(-time.Hour).Unix()})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			r.Header.Set("Authorization", tt.header)
			assert.Equal(t, "Internal System", ResolveActor(r, tt.authConfig))
		})
	}
}

func TestAdminMiddleware_Disabled(t *testing.T) {
	var actor string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = mrscontext.GetActor(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := AdminMiddleware(config.AuthConfig{Enabled: false}, next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/logs", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Internal System", actor)

	rec = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, testSecret, jwt.MapClaims{"name": "Mallory"}))
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Internal System", actor)
}

func TestAdminMiddleware_Enabled(t *testing.T) {
	authConfig := config.AuthConfig{Enabled: true, AdminUsername: "admin", AdminPassword: "pw", JWTSecret: testSecret}
	var actor string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = mrscontext.GetActor(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := AdminMiddleware(authConfig, next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/logs", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	r.SetBasicAuth("admin", "wrong")
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, "other-secret", jwt.MapClaims{"name": "Mallory"}))
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	r.SetBasicAuth("admin", "pw")
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", actor)

	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, testSecret, jwt.MapClaims{"preferred_username": "dana"}))
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dana", actor)
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORSMiddleware([]string{"http://localhost:3000"}, next)

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	r.Header.Set("Origin", "http://evil.example")
	handler.ServeHTTP(rec, r)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
