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

package store

import (
	"strconv"
	"time"

	"github.com/wso2/member-registry-service/internal/member/model"
)

// memberArgs lists the writable columns in the order used by the insert and update statements.
func memberArgs(m model.Member) []interface{} {
	return []interface{}{
		m.IdCard,
		m.FirstName,
		m.LastName,
		m.Gender,
		m.BirthDate,
		m.Association,
		m.Employer,
		m.Status,
		m.Branch,
		m.JoinDate,
		m.AliyahOrStudiesDate,
		m.MembershipType,
		m.ExceptionReason,
		m.City,
		m.Street,
		m.Email,
		m.MobilePhone,
		m.MailingApproval,
		m.ApprovalDate,
		m.Education,
		m.Institution,
	}
}

func mapRowToMember(row map[string]interface{}) model.Member {
	member := model.Member{
		ID:                  asInt64(row["id"]),
		IdCard:              asString(row["id_card"]),
		FirstName:           optionalString(row["first_name"]),
		LastName:            optionalString(row["last_name"]),
		Gender:              optionalString(row["gender"]),
		BirthDate:           optionalTime(row["birth_date"]),
		Association:         optionalString(row["association"]),
		Employer:            optionalString(row["employer"]),
		Status:              optionalString(row["status"]),
		Branch:              optionalString(row["branch"]),
		JoinDate:            optionalTime(row["join_date"]),
		AliyahOrStudiesDate: optionalTime(row["aliyah_or_studies_date"]),
		MembershipType:      optionalString(row["membership_type"]),
		ExceptionReason:     optionalString(row["exception_reason"]),
		City:                optionalString(row["city"]),
		Street:              optionalString(row["street"]),
		Email:               optionalString(row["email"]),
		MobilePhone:         optionalString(row["mobile_phone"]),
		MailingApproval:     optionalString(row["mailing_approval"]),
		ApprovalDate:        optionalTime(row["approval_date"]),
		Education:           optionalString(row["education"]),
		Institution:         optionalString(row["institution"]),
	}
	if t, ok := row["created_at"].(time.Time); ok {
		member.CreatedAt = t
	}
	if t, ok := row["updated_at"].(time.Time); ok {
		member.UpdatedAt = t
	}
	return member
}

func asString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return ""
	}
}

func optionalString(v interface{}) *string {
	if v == nil {
		return nil
	}
	s := asString(v)
	return &s
}

func optionalTime(v interface{}) *time.Time {
	t, ok := v.(time.Time)
	if !ok {
		return nil
	}
	return &t
}

func asInt64(v interface{}) int64 {
	switch val := v.(type) {
	case int64:
		return val
	case int32:
		return int64(val)
	case int:
		return int64(val)
	case float64:
		return int64(val)
	case []byte:
		n, _ := strconv.ParseInt(string(val), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(val, 10, 64)
		return n
	default:
		return 0
	}
}
