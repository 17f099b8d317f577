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

package authn

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wso2/member-registry-service/internal/system/log"
)

// actorClaims lists the claims consulted, in order, when naming the caller of a request.
var actorClaims = []string{"name", "preferred_username", "username", "email", "sub"}

var hmacMethods = []string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}

// ParseJWTClaims parses claims from a JWT after checking its HMAC signature against secret
// and its registered time claims.
func ParseJWTClaims(tokenString string, secret []byte) (map[string]interface{}, error) {

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods(hmacMethods))
	if err != nil {
		log.GetLogger().Debug("Error occurred when verifying JWT token.", log.Error(err))
		return nil, err
	}
	return claims, nil
}

// ActorFromBearerToken returns a display name for the subject of a verified bearer token, or ""
// when no secret is configured, the token fails verification or it carries no usable claim.
func ActorFromBearerToken(token string, secret string) string {

	if secret == "" || strings.Count(token, ".") != 2 {
		return ""
	}
	claims, err := ParseJWTClaims(token, []byte(secret))
	if err != nil {
		return ""
	}
	for _, claim := range actorClaims {
		if value, ok := claims[claim].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
