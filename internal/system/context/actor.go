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

package context

import (
	"context"

	"github.com/wso2/member-registry-service/internal/system/constants"
)

// WithActor stores the resolved administrator name on the context.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, constants.ActorContextKey, actor)
}

// GetActor returns the administrator recorded on the context, or the system actor.
func GetActor(ctx context.Context) string {
	if actor, ok := ctx.Value(constants.ActorContextKey).(string); ok && actor != "" {
		return actor
	}
	return constants.SystemActor
}
