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

	"github.com/pkg/errors"
	activityLogService "github.com/wso2/member-registry-service/internal/activity_log/service"
	"github.com/wso2/member-registry-service/internal/member/model"
	"github.com/wso2/member-registry-service/internal/member/store"
	"github.com/wso2/member-registry-service/internal/member_import/schema"
	"github.com/wso2/member-registry-service/internal/system/constants"
	errors2 "github.com/wso2/member-registry-service/internal/system/errors"
	"github.com/wso2/member-registry-service/internal/system/log"
	rulesService "github.com/wso2/member-registry-service/internal/validation_rules/service"
)

// statGroups lists the categorical breakdowns reported with the member list.
var statGroups = []string{
	constants.FieldBranch,
	constants.FieldStatus,
	constants.FieldGender,
	constants.FieldMembershipType,
}

// ValidationError carries the per field violations of a rejected registration.
type ValidationError struct {
	Err     *errors2.ClientError
	Details map[string][]string
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type MemberServiceInterface interface {
	ListMembers(search string) (*model.MemberListResponse, error)
	RegisterMember(input map[string]interface{}, actor string) (*model.Member, error)
	UpdateMember(id int64, fields map[string]interface{}, actor string) (*model.Member, error)
	DeleteMember(id int64, actor string) error
	DeleteMembers(ids []int64, actor string) (int64, error)
	ClearMembers(actor string) (int64, error)
}

// MemberService is the default implementation of MemberServiceInterface.
type MemberService struct {
	store       store.MemberStoreInterface
	rules       rulesService.ValidationRuleServiceInterface
	activityLog activityLogService.ActivityLogServiceInterface
	now         func() time.Time
}

// GetMemberService returns a service backed by the PostgreSQL member store.
func GetMemberService() MemberServiceInterface {

	return &MemberService{
		store:       &store.MemberStore{},
		rules:       rulesService.GetValidationRuleService(),
		activityLog: activityLogService.GetActivityLogService(),
		now:         time.Now,
	}
}

// NewMemberService wires the service with explicit dependencies.
func NewMemberService(memberStore store.MemberStoreInterface, rules rulesService.ValidationRuleServiceInterface,
	activityLog activityLogService.ActivityLogServiceInterface, now func() time.Time) *MemberService {

	if now == nil {
		now = time.Now
	}
	return &MemberService{store: memberStore, rules: rules, activityLog: activityLog, now: now}
}

// ListMembers returns the matching members together with registry wide statistics.
func (s *MemberService) ListMembers(search string) (*model.MemberListResponse, error) {

	members, err := s.store.FindMembers(strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	stats, err := s.buildStats()
	if err != nil {
		return nil, err
	}
	return &model.MemberListResponse{Users: members, Stats: *stats}, nil
}

func (s *MemberService) buildStats() (*model.MemberStats, error) {

	now := s.now()
	stats := &model.MemberStats{}

	total, err := s.store.CountMembers()
	if err != nil {
		return nil, err
	}
	stats.Total = total

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stats.Today, err = s.store.CountMembersSince(midnight); err != nil {
		return nil, err
	}

	groups := make([][]model.GroupCount, len(statGroups))
	for i, field := range statGroups {
		if groups[i], err = s.store.GroupCountBy(field); err != nil {
			return nil, err
		}
	}
	stats.Branches, stats.Statuses, stats.Genders, stats.MembershipTypes = groups[0], groups[1], groups[2], groups[3]

	created, err := s.store.FindCreatedSince(now.Add(-constants.TimelineWindow))
	if err != nil {
		return nil, err
	}
	stats.Timeline = BuildTimeline(created)
	return stats, nil
}

// BuildTimeline buckets creation times per UTC day in ascending order. Days without registrations
// are left out.
func BuildTimeline(created []time.Time) []model.TimelinePoint {

	counts := map[string]int64{}
	for _, t := range created {
		counts[t.UTC().Format("2006-01-02")]++
	}
	timeline := make([]model.TimelinePoint, 0, len(counts))
	for date, count := range counts {
		timeline = append(timeline, model.TimelinePoint{Date: date, Count: count})
	}
	sort.Slice(timeline, func(i, j int) bool { return timeline[i].Date < timeline[j].Date })
	return timeline
}

// RegisterMember validates a single record with the active rules and stores it.
func (s *MemberService) RegisterMember(input map[string]interface{}, actor string) (*model.Member, error) {

	rules, err := s.rules.GetRules()
	if err != nil {
		return nil, err
	}
	member, violations := schema.Build(rules).Validate(input)
	if len(violations) > 0 {
		return nil, &ValidationError{
			Err:     errors2.NewClientError(errors2.MEMBER_VALIDATION_FAILED, http.StatusBadRequest),
			Details: violations,
		}
	}
	if member.IdCard == "" {
		return nil, &ValidationError{
			Err:     errors2.NewClientError(errors2.MEMBER_VALIDATION_FAILED, http.StatusBadRequest),
			Details: map[string][]string{constants.FieldIdCard: {"ID Card is missing"}},
		}
	}

	existing, err := s.store.FindMemberByIDCard(member.IdCard)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors2.NewClientError(errors2.MEMBER_ALREADY_EXISTS, http.StatusBadRequest)
	}

	created, err := s.store.CreateMember(member)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateIDCard) {
			return nil, errors2.NewClientError(errors2.MEMBER_ALREADY_EXISTS, http.StatusBadRequest)
		}
		return nil, err
	}

	s.activityLog.LogActivity(constants.ActionSingleRegistration,
		fmt.Sprintf("Manual registration for %s (%s)", displayName(created), created.IdCard), "", actor)
	s.audit(actor, fmt.Sprintf("%d", created.ID), log.TargetTypeMember, log.ActionRegisterMember, nil)
	return created, nil
}

// UpdateMember applies a partial update. Only canonical field keys are accepted.
func (s *MemberService) UpdateMember(id int64, fields map[string]interface{}, actor string) (*model.Member, error) {

	existing, err := s.store.FindMemberByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, memberNotFound(id)
	}

	updated := *existing
	if err := applyFields(&updated, fields); err != nil {
		return nil, err
	}

	saved, err := s.store.UpdateMember(updated)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateIDCard) {
			return nil, errors2.NewClientError(errors2.MEMBER_ALREADY_EXISTS.WithDescription(
				fmt.Sprintf("Another member is registered with id card %s.", updated.IdCard)), http.StatusConflict)
		}
		return nil, err
	}
	if saved == nil {
		return nil, memberNotFound(id)
	}

	entityID := fmt.Sprintf("%d", id)
	s.activityLog.LogActivity(constants.ActionUpdateUser,
		fmt.Sprintf("Updated details for user %s (%s)", displayName(saved), saved.IdCard), entityID, actor)
	s.audit(actor, entityID, log.TargetTypeMember, log.ActionUpdateMember, map[string]int{"fields": len(fields)})
	return saved, nil
}

// DeleteMember removes one member.
func (s *MemberService) DeleteMember(id int64, actor string) error {

	existing, err := s.store.FindMemberByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return memberNotFound(id)
	}
	deleted, err := s.store.DeleteMember(id)
	if err != nil {
		return err
	}
	if !deleted {
		return memberNotFound(id)
	}

	entityID := fmt.Sprintf("%d", id)
	s.activityLog.LogActivity(constants.ActionDeleteUser,
		fmt.Sprintf("Deleted user %s (%s)", displayName(existing), existing.IdCard), entityID, actor)
	s.audit(actor, entityID, log.TargetTypeMember, log.ActionDeleteMember, nil)
	return nil
}

// DeleteMembers removes the listed members and returns how many existed.
func (s *MemberService) DeleteMembers(ids []int64, actor string) (int64, error) {

	if len(ids) == 0 {
		return 0, errors2.NewClientError(errors2.INVALID_MEMBER_IDS, http.StatusBadRequest)
	}
	count, err := s.store.DeleteMembers(ids)
	if err != nil {
		return 0, err
	}

	s.activityLog.LogActivity(constants.ActionBulkDelete,
		fmt.Sprintf("Deleted %d users in a bulk operation.", count), "", actor)
	s.audit(actor, "", log.TargetTypeMemberRegistry, log.ActionDeleteMembers,
		map[string]int64{"requested": int64(len(ids)), "deleted": count})
	return count, nil
}

// ClearMembers removes every member and returns how many were stored.
func (s *MemberService) ClearMembers(actor string) (int64, error) {

	count, err := s.store.DeleteAllMembers()
	if err != nil {
		return 0, err
	}

	s.activityLog.LogActivity(constants.ActionDatabaseClear,
		fmt.Sprintf("Database cleared completely. Deleted %d records.", count), "", actor)
	s.audit(actor, "", log.TargetTypeMemberRegistry, log.ActionClearMembers, map[string]int64{"deleted": count})
	return count, nil
}

func (s *MemberService) audit(actor, targetID, targetType, action string, data interface{}) {
	if actor == "" {
		actor = constants.SystemActor
	}
	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: log.InitiatorTypeAdmin,
		TargetID:      targetID,
		TargetType:    targetType,
		ActionID:      action,
		Data:          data,
	})
}

func memberNotFound(id int64) error {
	return errors2.NewClientError(errors2.MEMBER_NOT_FOUND.WithDescription(
		fmt.Sprintf("No user exists with id %d.", id)), http.StatusNotFound)
}

func displayName(m *model.Member) string {
	parts := make([]string, 0, 2)
	for _, p := range []*string{m.FirstName, m.LastName} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	return strings.Join(parts, " ")
}
