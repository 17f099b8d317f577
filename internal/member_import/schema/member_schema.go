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

package schema

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/wso2/member-registry-service/internal/member/model"
	"github.com/wso2/member-registry-service/internal/system/constants"
	"github.com/wso2/member-registry-service/internal/system/utils"
	rulesModel "github.com/wso2/member-registry-service/internal/validation_rules/model"
)

var validate = validator.New()

// RuleFields are the fields whose validation is driven by the configurable rule set.
var RuleFields = []string{
	constants.FieldIdCard,
	constants.FieldFirstName,
	constants.FieldLastName,
	constants.FieldEmail,
	constants.FieldMobilePhone,
}

var fallbackLabels = map[string]string{
	constants.FieldIdCard:      "ID Card",
	constants.FieldFirstName:   "First Name",
	constants.FieldLastName:    "Last Name",
	constants.FieldEmail:       "Email",
	constants.FieldMobilePhone: "Phone",
}

var dateFieldLabels = map[string]string{
	constants.FieldBirthDate:           "Birth Date",
	constants.FieldJoinDate:            "Join Date",
	constants.FieldAliyahOrStudiesDate: "Aliyah/Studies Date",
	constants.FieldApprovalDate:        "Approval Date",
}

// MemberSchema validates mapped spreadsheet rows against one snapshot of the rule set.
type MemberSchema struct {
	rules rulesModel.ValidationRuleSet
}

// Build compiles a schema for a single upload. Schemas are never shared between uploads.
func Build(rules rulesModel.ValidationRuleSet) *MemberSchema {

	snapshot := make(rulesModel.ValidationRuleSet, len(rules))
	for field, rule := range rules {
		snapshot[field] = rule
	}
	return &MemberSchema{rules: snapshot}
}

// Validate checks one mapped row and returns the normalized member together with every violation,
// keyed by field. An empty error map means the row is accepted.
func (s *MemberSchema) Validate(raw map[string]interface{}) (model.Member, map[string][]string) {

	errs := map[string][]string{}
	text := map[string]string{}
	for field, value := range raw {
		if _, isDate := dateFieldLabels[field]; isDate {
			continue
		}
		if str, ok := utils.CoerceCellToString(value); ok {
			text[field] = strings.TrimSpace(str)
		}
	}

	for _, field := range RuleFields {
		rule, ok := s.rules[field]
		if !ok || !rule.Required {
			continue
		}
		label := s.label(field)
		value := text[field]
		if value == "" {
			errs[field] = append(errs[field], fmt.Sprintf("%s is missing", label))
			continue
		}
		if rule.Min != nil && *rule.Min > 0 && utf8.RuneCountInString(value) < *rule.Min {
			errs[field] = append(errs[field], fmt.Sprintf("%s must be at least %d chars", label, *rule.Min))
		}
		if field == constants.FieldEmail && validate.Var(value, "email") != nil {
			errs[field] = append(errs[field], "Invalid email format")
		}
	}

	dates := map[string]*time.Time{}
	for field, label := range dateFieldLabels {
		value, present := raw[field]
		if !present {
			continue
		}
		parsed, ok := ParseDateValue(value)
		if !ok {
			errs[field] = append(errs[field], fmt.Sprintf("%s is not a valid date", label))
			continue
		}
		dates[field] = parsed
	}

	return buildMember(text, dates), errs
}

func (s *MemberSchema) label(field string) string {
	if rule, ok := s.rules[field]; ok && strings.TrimSpace(rule.Label) != "" {
		return rule.Label
	}
	return fallbackLabels[field]
}

func buildMember(text map[string]string, dates map[string]*time.Time) model.Member {

	optional := func(field string) *string {
		if v, ok := text[field]; ok && v != "" {
			return &v
		}
		return nil
	}

	return model.Member{
		IdCard:              text[constants.FieldIdCard],
		FirstName:           optional(constants.FieldFirstName),
		LastName:            optional(constants.FieldLastName),
		Gender:              optional(constants.FieldGender),
		BirthDate:           dates[constants.FieldBirthDate],
		Association:         optional(constants.FieldAssociation),
		Employer:            optional(constants.FieldEmployer),
		Status:              optional(constants.FieldStatus),
		Branch:              optional(constants.FieldBranch),
		JoinDate:            dates[constants.FieldJoinDate],
		AliyahOrStudiesDate: dates[constants.FieldAliyahOrStudiesDate],
		MembershipType:      optional(constants.FieldMembershipType),
		ExceptionReason:     optional(constants.FieldExceptionReason),
		City:                optional(constants.FieldCity),
		Street:              optional(constants.FieldStreet),
		Email:               optional(constants.FieldEmail),
		MobilePhone:         optional(constants.FieldMobilePhone),
		MailingApproval:     optional(constants.FieldMailingApproval),
		ApprovalDate:        dates[constants.FieldApprovalDate],
		Education:           optional(constants.FieldEducation),
		Institution:         optional(constants.FieldInstitution),
	}
}
