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

package service

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/wso2/member-registry-service/internal/member/model"
	"github.com/wso2/member-registry-service/internal/member_import/schema"
	"github.com/wso2/member-registry-service/internal/system/constants"
	errors2 "github.com/wso2/member-registry-service/internal/system/errors"
	"github.com/wso2/member-registry-service/internal/system/utils"
)

// readOnlyFields are accepted in update bodies and ignored, so a full record can be sent back as is.
var readOnlyFields = map[string]bool{
	"id":        true,
	"createdAt": true,
	"updatedAt": true,
}

func stringFields(m *model.Member) map[string]**string {
	return map[string]**string{
		constants.FieldFirstName:       &m.FirstName,
		constants.FieldLastName:        &m.LastName,
		constants.FieldGender:          &m.Gender,
		constants.FieldAssociation:     &m.Association,
		constants.FieldEmployer:        &m.Employer,
		constants.FieldStatus:          &m.Status,
		constants.FieldBranch:          &m.Branch,
		constants.FieldMembershipType:  &m.MembershipType,
		constants.FieldExceptionReason: &m.ExceptionReason,
		constants.FieldCity:            &m.City,
		constants.FieldStreet:          &m.Street,
		constants.FieldEmail:           &m.Email,
		constants.FieldMobilePhone:     &m.MobilePhone,
		constants.FieldMailingApproval: &m.MailingApproval,
		constants.FieldEducation:       &m.Education,
		constants.FieldInstitution:     &m.Institution,
	}
}

func dateFields(m *model.Member) map[string]**time.Time {
	return map[string]**time.Time{
		constants.FieldBirthDate:           &m.BirthDate,
		constants.FieldJoinDate:            &m.JoinDate,
		constants.FieldAliyahOrStudiesDate: &m.AliyahOrStudiesDate,
		constants.FieldApprovalDate:        &m.ApprovalDate,
	}
}

// applyFields copies the recognized keys of an update body onto the member.
func applyFields(m *model.Member, fields map[string]interface{}) error {

	if len(fields) == 0 {
		return badUpdate("Update body must contain at least one field.")
	}

	strs := stringFields(m)
	dates := dateFields(m)
	var unknown []string
	for key, value := range fields {
		if readOnlyFields[key] {
			continue
		}
		if key == constants.FieldIdCard {
			idCard, _ := utils.CoerceCellToString(value)
			idCard = strings.TrimSpace(idCard)
			if idCard == "" {
				return badUpdate("idCard cannot be empty.")
			}
			m.IdCard = idCard
			continue
		}
		if target, ok := strs[key]; ok {
			*target = optionalText(value)
			continue
		}
		if target, ok := dates[key]; ok {
			parsed, valid := schema.ParseDateValue(value)
			if !valid {
				return badUpdate(fmt.Sprintf("%s is not a valid date.", key))
			}
			*target = parsed
			continue
		}
		unknown = append(unknown, key)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return badUpdate(fmt.Sprintf("Unknown fields: %s.", strings.Join(unknown, ", ")))
	}
	return nil
}

func optionalText(value interface{}) *string {
	text, ok := utils.CoerceCellToString(value)
	if !ok {
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return &text
}

func badUpdate(description string) error {
	return errors2.NewClientError(errors2.BAD_REQUEST.WithDescription(description), http.StatusBadRequest)
}
