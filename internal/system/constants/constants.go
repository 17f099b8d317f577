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

package constants

import "time"

const ApiBasePath = "/api"

type contextKey string

const (
	TraceIDContextKey contextKey = "trace_id"
	ActorContextKey   contextKey = "actor"
)

const TraceIDHeader = "X-Trace-Id"

// SystemActor is recorded as the admin of activity log entries when no caller can be resolved.
const SystemActor = "Internal System"

// RulesAdminActor is recorded for rule updates made without an identifiable caller.
const RulesAdminActor = "System Admin"

// RulesConfigKey identifies the single active validation rule set.
const RulesConfigKey = "config"

// Canonical member field keys.
const (
	FieldIdCard              = "idCard"
	FieldFirstName           = "firstName"
	FieldLastName            = "lastName"
	FieldGender              = "gender"
	FieldBirthDate           = "birthDate"
	FieldAssociation         = "association"
	FieldEmployer            = "employer"
	FieldStatus              = "status"
	FieldBranch              = "branch"
	FieldJoinDate            = "joinDate"
	FieldAliyahOrStudiesDate = "aliyahOrStudiesDate"
	FieldMembershipType      = "membershipType"
	FieldExceptionReason     = "exceptionReason"
	FieldCity                = "city"
	FieldStreet              = "street"
	FieldEmail               = "email"
	FieldMobilePhone         = "mobilePhone"
	FieldMailingApproval     = "mailingApproval"
	FieldApprovalDate        = "approvalDate"
	FieldEducation           = "education"
	FieldInstitution         = "institution"
)

// DBErrorKey is the reserved row error key for failures raised by the record store.
const DBErrorKey = "db"

// Activity log actions.
const (
	ActionUpload             = "UPLOAD"
	ActionUpdateRules        = "UPDATE_RULES"
	ActionUpdateUser         = "UPDATE_USER"
	ActionDeleteUser         = "DELETE_USER"
	ActionBulkDelete         = "BULK_DELETE"
	ActionDatabaseClear      = "DATABASE_CLEAR"
	ActionSingleRegistration = "SINGLE_REGISTRATION"
)

// Import pipeline limits.
const (
	DefaultHeaderScanRows    = 10
	DefaultResponseUserLimit = 50
	DefaultMaxUploadSizeMB   = 20
)

const (
	DefaultActivityLogLimit     = 100
	DefaultActivityLogQueueSize = 1000
	TimelineWindow              = 30 * 24 * time.Hour
	UnknownGroupName            = "Unknown"
)

// Activity log store backends.
const (
	ActivityLogStorePostgres = "postgres"
	ActivityLogStoreMongoDB  = "mongodb"
)

const PostgresDBType = "postgres"
