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

package model

import "time"

// Member is a registered member as stored in the members table.
type Member struct {
	ID                  int64      `json:"id"`
	IdCard              string     `json:"idCard"`
	FirstName           *string    `json:"firstName"`
	LastName            *string    `json:"lastName"`
	Gender              *string    `json:"gender"`
	BirthDate           *time.Time `json:"birthDate"`
	Association         *string    `json:"association"`
	Employer            *string    `json:"employer"`
	Status              *string    `json:"status"`
	Branch              *string    `json:"branch"`
	JoinDate            *time.Time `json:"joinDate"`
	AliyahOrStudiesDate *time.Time `json:"aliyahOrStudiesDate"`
	MembershipType      *string    `json:"membershipType"`
	ExceptionReason     *string    `json:"exceptionReason"`
	City                *string    `json:"city"`
	Street              *string    `json:"street"`
	Email               *string    `json:"email"`
	MobilePhone         *string    `json:"mobilePhone"`
	MailingApproval     *string    `json:"mailingApproval"`
	ApprovalDate        *time.Time `json:"approvalDate"`
	Education           *string    `json:"education"`
	Institution         *string    `json:"institution"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// GroupCount is one bucket of a categorical breakdown.
type GroupCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// TimelinePoint counts registrations created on one UTC day.
type TimelinePoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type MemberStats struct {
	Total           int64           `json:"total"`
	Today           int64           `json:"today"`
	Branches        []GroupCount    `json:"branches"`
	Statuses        []GroupCount    `json:"statuses"`
	Genders         []GroupCount    `json:"genders"`
	MembershipTypes []GroupCount    `json:"membershipTypes"`
	Timeline        []TimelinePoint `json:"timeline"`
}

type MemberListResponse struct {
	Users []Member    `json:"users"`
	Stats MemberStats `json:"stats"`
}

type DeleteMembersRequest struct {
	IDs []int64 `json:"ids"`
}

type DeleteMembersResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}

type MemberResponse struct {
	Success bool   `json:"success"`
	User    Member `json:"user"`
}

type RegistrationErrorResponse struct {
	Error   string              `json:"error"`
	Details map[string][]string `json:"details,omitempty"`
}
