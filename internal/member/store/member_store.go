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
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/wso2/member-registry-service/internal/member/model"
	"github.com/wso2/member-registry-service/internal/system/constants"
	"github.com/wso2/member-registry-service/internal/system/database/provider"
	"github.com/wso2/member-registry-service/internal/system/database/scripts"
	errors2 "github.com/wso2/member-registry-service/internal/system/errors"
	"github.com/wso2/member-registry-service/internal/system/log"
)

// ErrDuplicateIDCard is returned when a write would break the id card uniqueness constraint.
var ErrDuplicateIDCard = errors.New("member with the same id card already exists")

const uniqueViolation = "23505"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// groupColumns whitelists the fields that can be grouped on, mapped to their column names.
var groupColumns = map[string]string{
	constants.FieldBranch:         "branch",
	constants.FieldStatus:         "status",
	constants.FieldGender:         "gender",
	constants.FieldMembershipType: "membership_type",
}

type MemberStoreInterface interface {
	CreateMember(member model.Member) (*model.Member, error)
	FindMemberByID(id int64) (*model.Member, error)
	FindMemberByIDCard(idCard string) (*model.Member, error)
	UpdateMember(member model.Member) (*model.Member, error)
	DeleteMember(id int64) (bool, error)
	DeleteMembers(ids []int64) (int64, error)
	DeleteAllMembers() (int64, error)
	FindMembers(search string) ([]model.Member, error)
	CountMembers() (int64, error)
	CountMembersSince(since time.Time) (int64, error)
	GroupCountBy(field string) ([]model.GroupCount, error)
	FindCreatedSince(since time.Time) ([]time.Time, error)
}

// MemberStore persists members in the members table.
type MemberStore struct{}

// CreateMember inserts a member and returns the stored row. A taken id card yields ErrDuplicateIDCard.
func (s *MemberStore) CreateMember(member model.Member) (*model.Member, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for adding member: %s", member.IdCard)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ADD_MEMBER.WithDescription(errorMsg), err)
	}
	defer dbClient.Close()

	query := scripts.InsertMember[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, memberArgs(member)...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateIDCard
		}
		errorMsg := fmt.Sprintf("Failed to insert member: %s", member.IdCard)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ADD_MEMBER.WithDescription(errorMsg), err)
	}
	if len(results) == 0 {
		errorMsg := fmt.Sprintf("Insert returned no row for member: %s", member.IdCard)
		return nil, errors2.NewServerError(errors2.ADD_MEMBER.WithDescription(errorMsg), nil)
	}
	created := mapRowToMember(results[0])
	return &created, nil
}

// FindMemberByID returns nil without an error when no member has the id.
func (s *MemberStore) FindMemberByID(id int64) (*model.Member, error) {
	return s.getOne(scripts.GetMemberByID, fmt.Sprintf("%d", id), id)
}

// FindMemberByIDCard returns nil without an error when the id card is not registered.
func (s *MemberStore) FindMemberByIDCard(idCard string) (*model.Member, error) {
	return s.getOne(scripts.GetMemberByIDCard, idCard, idCard)
}

func (s *MemberStore) getOne(queries map[string]string, ref string, arg interface{}) (*model.Member, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching member: %s", ref)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.GET_MEMBER.WithDescription(errorMsg), err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(queries[provider.NewDBProvider().GetDBType()], arg)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching member: %s", ref)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.GET_MEMBER.WithDescription(errorMsg), err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	member := mapRowToMember(results[0])
	return &member, nil
}

// UpdateMember overwrites every column of an existing member. Returns nil when the id is unknown.
func (s *MemberStore) UpdateMember(member model.Member) (*model.Member, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for updating member: %d", member.ID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.UPDATE_MEMBER.WithDescription(errorMsg), err)
	}
	defer dbClient.Close()

	args := append([]interface{}{member.ID}, memberArgs(member)...)
	query := scripts.UpdateMember[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateIDCard
		}
		errorMsg := fmt.Sprintf("Failed to update member: %d", member.ID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.UPDATE_MEMBER.WithDescription(errorMsg), err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	updated := mapRowToMember(results[0])
	return &updated, nil
}

// DeleteMember reports whether a row was removed.
func (s *MemberStore) DeleteMember(id int64) (bool, error) {
	count, err := s.executeDelete(scripts.DeleteMember, fmt.Sprintf("member %d", id), id)
	return count > 0, err
}

// DeleteMembers removes every listed member and returns how many rows existed.
func (s *MemberStore) DeleteMembers(ids []int64) (int64, error) {
	return s.executeDelete(scripts.DeleteMembers, fmt.Sprintf("%d members", len(ids)), pq.Array(ids))
}

func (s *MemberStore) DeleteAllMembers() (int64, error) {
	return s.executeDelete(scripts.DeleteAllMembers, "all members")
}

func (s *MemberStore) executeDelete(queries map[string]string, ref string, args ...interface{}) (int64, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for deleting %s", ref)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.DELETE_MEMBER.WithDescription(errorMsg), err)
	}
	defer dbClient.Close()

	count, err := dbClient.ExecuteCommand(queries[provider.NewDBProvider().GetDBType()], args...)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to delete %s", ref)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.DELETE_MEMBER.WithDescription(errorMsg), err)
	}
	return count, nil
}

// FindMembers returns members newest first. A non-empty search matches names, id card and email
// case insensitively.
func (s *MemberStore) FindMembers(search string) ([]model.Member, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for listing members."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.GET_MEMBER.WithDescription(errorMsg), err)
	}
	defer dbClient.Close()

	dbType := provider.NewDBProvider().GetDBType()
	var results []map[string]interface{}
	if search == "" {
		results, err = dbClient.ExecuteQuery(scripts.ListMembers[dbType])
	} else {
		results, err = dbClient.ExecuteQuery(scripts.SearchMembers[dbType], containsPattern(search))
	}
	if err != nil {
		errorMsg := "Failed to execute query for listing members."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.GET_MEMBER.WithDescription(errorMsg), err)
	}

	members := make([]model.Member, 0, len(results))
	for _, row := range results {
		members = append(members, mapRowToMember(row))
	}
	return members, nil
}

func (s *MemberStore) CountMembers() (int64, error) {
	return s.count(scripts.CountMembers)
}

func (s *MemberStore) CountMembersSince(since time.Time) (int64, error) {
	return s.count(scripts.CountMembersSince, since)
}

func (s *MemberStore) count(queries map[string]string, args ...interface{}) (int64, error) {

	results, err := s.queryStats(queries[provider.NewDBProvider().GetDBType()], args...)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return asInt64(results[0]["count"]), nil
}

// GroupCountBy counts members per distinct value of a groupable field. Members without a
// value are counted under "Unknown".
func (s *MemberStore) GroupCountBy(field string) ([]model.GroupCount, error) {

	column, ok := groupColumns[field]
	if !ok {
		return nil, errors2.NewServerError(
			errors2.GET_MEMBER_STATS.WithDescription(fmt.Sprintf("Field %s cannot be grouped", field)), nil)
	}
	query := fmt.Sprintf(scripts.GroupCountMembers[provider.NewDBProvider().GetDBType()], column)
	results, err := s.queryStats(query)
	if err != nil {
		return nil, err
	}

	groups := make([]model.GroupCount, 0, len(results))
	unknown := -1
	for _, row := range results {
		name := asString(row["name"])
		count := asInt64(row["count"])
		if name == "" {
			name = constants.UnknownGroupName
		}
		if name == constants.UnknownGroupName {
			if unknown >= 0 {
				groups[unknown].Count += count
				continue
			}
			unknown = len(groups)
		}
		groups = append(groups, model.GroupCount{Name: name, Count: count})
	}
	return groups, nil
}

// FindCreatedSince returns creation timestamps of members registered at or after since.
func (s *MemberStore) FindCreatedSince(since time.Time) ([]time.Time, error) {

	results, err := s.queryStats(scripts.GetMemberCreatedTimesSince[provider.NewDBProvider().GetDBType()], since)
	if err != nil {
		return nil, err
	}
	times := make([]time.Time, 0, len(results))
	for _, row := range results {
		if t, ok := row["created_at"].(time.Time); ok {
			times = append(times, t)
		}
	}
	return times, nil
}

func (s *MemberStore) queryStats(query string, args ...interface{}) ([]map[string]interface{}, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for member statistics."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.GET_MEMBER_STATS.WithDescription(errorMsg), err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(query, args...)
	if err != nil {
		errorMsg := "Failed to execute query for member statistics."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.GET_MEMBER_STATS.WithDescription(errorMsg), err)
	}
	return results, nil
}

// containsPattern builds an ILIKE pattern matching search as a literal substring.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
