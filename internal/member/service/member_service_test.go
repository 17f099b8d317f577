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
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	activityLogModel "github.com/wso2/member-registry-service/internal/activity_log/model"
	"github.com/wso2/member-registry-service/internal/member/model"
	"github.com/wso2/member-registry-service/internal/member/store"
	errors2 "github.com/wso2/member-registry-service/internal/system/errors"
	"github.com/wso2/member-registry-service/internal/system/log"
	rulesModel "github.com/wso2/member-registry-service/internal/validation_rules/model"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// MockMemberStore implements store.MemberStoreInterface for testing
type MockMemberStore struct {
	mock.Mock
}

func (m *MockMemberStore) CreateMember(member model.Member) (*model.Member, error) {
	args := m.Called(member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockMemberStore) FindMemberByID(id int64) (*model.Member, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockMemberStore) FindMemberByIDCard(idCard string) (*model.Member, error) {
	args := m.Called(idCard)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockMemberStore) UpdateMember(member model.Member) (*model.Member, error) {
	args := m.Called(member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockMemberStore) DeleteMember(id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberStore) DeleteMembers(ids []int64) (int64, error) {
	args := m.Called(ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberStore) DeleteAllMembers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberStore) FindMembers(search string) ([]model.Member, error) {
	args := m.Called(search)
	return args.Get(0).([]model.Member), args.Error(1)
}

func (m *MockMemberStore) CountMembers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberStore) CountMembersSince(since time.Time) (int64, error) {
	args := m.Called(since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberStore) GroupCountBy(field string) ([]model.GroupCount, error) {
	args := m.Called(field)
	return args.Get(0).([]model.GroupCount), args.Error(1)
}

func (m *MockMemberStore) FindCreatedSince(since time.Time) ([]time.Time, error) {
	args := m.Called(since)
	return args.Get(0).([]time.Time), args.Error(1)
}

// MockRuleService implements the validation rule service for testing
type MockRuleService struct {
	mock.Mock
}

func (m *MockRuleService) GetRules() (rulesModel.ValidationRuleSet, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(rulesModel.ValidationRuleSet), args.Error(1)
}

func (m *MockRuleService) SetRules(rules rulesModel.ValidationRuleSet, actor string) error {
	return m.Called(rules, actor).Error(0)
}

// MockActivityLogService implements the activity log service for testing
type MockActivityLogService struct {
	mock.Mock
}

func (m *MockActivityLogService) LogActivity(action, details, entityID, admin string) {
	m.Called(action, details, entityID, admin)
}

func (m *MockActivityLogService) GetActivityLogs(limit int) ([]activityLogModel.ActivityLog, error) {
	args := m.Called(limit)
	return args.Get(0).([]activityLogModel.ActivityLog), args.Error(1)
}

func strPtr(s string) *string { return &s }

var fixedNow = time.Date(2025, time.June, 15, 14, 30, 0, 0, time.UTC)

func newTestService() (*MemberService, *MockMemberStore, *MockRuleService, *MockActivityLogService) {
	memberStore := new(MockMemberStore)
	rules := new(MockRuleService)
	activityLog := new(MockActivityLogService)
	svc := NewMemberService(memberStore, rules, activityLog, func() time.Time { return fixedNow })
	return svc, memberStore, rules, activityLog
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var clientErr *errors2.ClientError
	require.True(t, errors.As(err, &clientErr), "expected client error, got %v", err)
	return clientErr.StatusCode
}

func TestBuildTimeline(t *testing.T) {
	created := []time.Time{
		time.Date(2025, time.June, 3, 23, 30, 0, 0, time.FixedZone("IDT", 3*3600)),
		time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 1, 22, 0, 0, 0, time.UTC),
	}

	timeline := BuildTimeline(created)

	assert.Equal(t, []model.TimelinePoint{
		{Date: "2025-06-01", Count: 2},
		{Date: "2025-06-03", Count: 2},
	}, timeline)
	assert.Empty(t, BuildTimeline(nil))
}

func TestListMembers(t *testing.T) {
	svc, memberStore, _, _ := newTestService()
	users := []model.Member{{ID: 2, IdCard: "22222222"}, {ID: 1, IdCard: "11111111"}}
	midnight := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	memberStore.On("FindMembers", "dan").Return(users, nil)
	memberStore.On("CountMembers").Return(int64(2), nil)
	memberStore.On("CountMembersSince", midnight).Return(int64(1), nil)
	memberStore.On("GroupCountBy", "branch").Return([]model.GroupCount{{Name: "Haifa", Count: 2}}, nil)
	memberStore.On("GroupCountBy", "status").Return([]model.GroupCount{{Name: "Unknown", Count: 2}}, nil)
	memberStore.On("GroupCountBy", "gender").Return([]model.GroupCount{}, nil)
	memberStore.On("GroupCountBy", "membershipType").Return([]model.GroupCount{}, nil)
	memberStore.On("FindCreatedSince", fixedNow.Add(-30*24*time.Hour)).
		Return([]time.Time{fixedNow.Add(-time.Hour)}, nil)

	resp, err := svc.ListMembers("  dan ")
	require.NoError(t, err)

	assert.Equal(t, users, resp.Users)
	assert.Equal(t, int64(2), resp.Stats.Total)
	assert.Equal(t, int64(1), resp.Stats.Today)
	assert.Equal(t, []model.GroupCount{{Name: "Haifa", Count: 2}}, resp.Stats.Branches)
	assert.Equal(t, []model.GroupCount{{Name: "Unknown", Count: 2}}, resp.Stats.Statuses)
	assert.Equal(t, []model.TimelinePoint{{Date: "2025-06-15", Count: 1}}, resp.Stats.Timeline)
	memberStore.AssertExpectations(t)
}

func TestRegisterMember(t *testing.T) {
	svc, memberStore, rules, activityLog := newTestService()
	rules.On("GetRules").Return(rulesModel.DefaultRules(), nil)
	memberStore.On("FindMemberByIDCard", "12345678").Return(nil, nil)
	memberStore.On("CreateMember", mock.MatchedBy(func(m model.Member) bool {
		return m.IdCard == "12345678" && *m.FirstName == "Dana"
	})).Return(&model.Member{ID: 9, IdCard: "12345678", FirstName: strPtr("Dana"), LastName: strPtr("Levi")}, nil)
	activityLog.On("LogActivity", "SINGLE_REGISTRATION", "Manual registration for Dana Levi (12345678)", "", "admin").
		Return()

	created, err := svc.RegisterMember(map[string]interface{}{
		"idCard": 12345678.0, "firstName": "Dana", "lastName": "Levi",
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
	activityLog.AssertExpectations(t)
}

func TestRegisterMember_ValidationFailure(t *testing.T) {
	svc, memberStore, rules, activityLog := newTestService()
	rules.On("GetRules").Return(rulesModel.DefaultRules(), nil)

	_, err := svc.RegisterMember(map[string]interface{}{"idCard": "123", "firstName": "Dana"}, "admin")

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"ID Card must be at least 8 chars"}, validationErr.Details["idCard"])
	assert.Equal(t, []string{"Last Name is missing"}, validationErr.Details["lastName"])
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	memberStore.AssertNotCalled(t, "CreateMember", mock.Anything)
	activityLog.AssertNotCalled(t, "LogActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterMember_Duplicate(t *testing.T) {
	svc, memberStore, rules, _ := newTestService()
	rules.On("GetRules").Return(rulesModel.DefaultRules(), nil)
	memberStore.On("FindMemberByIDCard", "12345678").Return(&model.Member{ID: 1, IdCard: "12345678"}, nil)

	_, err := svc.RegisterMember(map[string]interface{}{
		"idCard": "12345678", "firstName": "Dana", "lastName": "Levi",
	}, "admin")

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	memberStore.AssertNotCalled(t, "CreateMember", mock.Anything)
}

func TestRegisterMember_DuplicateRaceOnInsert(t *testing.T) {
	svc, memberStore, rules, _ := newTestService()
	rules.On("GetRules").Return(rulesModel.DefaultRules(), nil)
	memberStore.On("FindMemberByIDCard", "12345678").Return(nil, nil)
	memberStore.On("CreateMember", mock.Anything).Return(nil, store.ErrDuplicateIDCard)

	_, err := svc.RegisterMember(map[string]interface{}{
		"idCard": "12345678", "firstName": "Dana", "lastName": "Levi",
	}, "admin")

	var clientErr *errors2.ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, "ID already exists", clientErr.Message)
}

func TestUpdateMember(t *testing.T) {
	svc, memberStore, _, activityLog := newTestService()
	existing := &model.Member{ID: 4, IdCard: "12345678", FirstName: strPtr("Dana"), LastName: strPtr("Levi")}
	memberStore.On("FindMemberByID", int64(4)).Return(existing, nil)
	memberStore.On("UpdateMember", mock.MatchedBy(func(m model.Member) bool {
		return m.ID == 4 && *m.City == "Haifa" && m.BirthDate != nil && m.BirthDate.Year() == 1990 && m.Gender == nil
	})).Return(&model.Member{ID: 4, IdCard: "12345678", FirstName: strPtr("Dana"), LastName: strPtr("Levi")}, nil)
	activityLog.On("LogActivity", "UPDATE_USER", "Updated details for user Dana Levi (12345678)", "4", "admin").
		Return()

	updated, err := svc.UpdateMember(4, map[string]interface{}{
		"id": 4.0, "city": "Haifa", "birthDate": "1990-02-01", "gender": nil,
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.ID)
	activityLog.AssertExpectations(t)
}

func TestUpdateMember_Errors(t *testing.T) {
	t.Run("unknown member", func(t *testing.T) {
		svc, memberStore, _, _ := newTestService()
		memberStore.On("FindMemberByID", int64(4)).Return(nil, nil)

		_, err := svc.UpdateMember(4, map[string]interface{}{"city": "Haifa"}, "admin")
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})

	t.Run("unknown field", func(t *testing.T) {
		svc, memberStore, _, _ := newTestService()
		memberStore.On("FindMemberByID", int64(4)).Return(&model.Member{ID: 4, IdCard: "12345678"}, nil)

		_, err := svc.UpdateMember(4, map[string]interface{}{"nickname": "D"}, "admin")
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
		memberStore.AssertNotCalled(t, "UpdateMember", mock.Anything)
	})

	t.Run("invalid date", func(t *testing.T) {
		svc, memberStore, _, _ := newTestService()
		memberStore.On("FindMemberByID", int64(4)).Return(&model.Member{ID: 4, IdCard: "12345678"}, nil)

		_, err := svc.UpdateMember(4, map[string]interface{}{"joinDate": "soon"}, "admin")
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})

	t.Run("id card conflict", func(t *testing.T) {
		svc, memberStore, _, _ := newTestService()
		memberStore.On("FindMemberByID", int64(4)).Return(&model.Member{ID: 4, IdCard: "12345678"}, nil)
		memberStore.On("UpdateMember", mock.Anything).Return(nil, store.ErrDuplicateIDCard)

		_, err := svc.UpdateMember(4, map[string]interface{}{"idCard": "87654321"}, "admin")
		assert.Equal(t, http.StatusConflict, statusOf(t, err))
	})
}

func TestDeleteMember(t *testing.T) {
	svc, memberStore, _, activityLog := newTestService()
	memberStore.On("FindMemberByID", int64(3)).
		Return(&model.Member{ID: 3, IdCard: "12345678", FirstName: strPtr("Dana")}, nil)
	memberStore.On("DeleteMember", int64(3)).Return(true, nil)
	activityLog.On("LogActivity", "DELETE_USER", "Deleted user Dana (12345678)", "3", "admin").Return()

	require.NoError(t, svc.DeleteMember(3, "admin"))
	activityLog.AssertExpectations(t)
}

func TestDeleteMember_NotFound(t *testing.T) {
	svc, memberStore, _, _ := newTestService()
	memberStore.On("FindMemberByID", int64(3)).Return(nil, nil)

	err := svc.DeleteMember(3, "admin")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	memberStore.AssertNotCalled(t, "DeleteMember", mock.Anything)
}

func TestDeleteMembers(t *testing.T) {
	svc, memberStore, _, activityLog := newTestService()
	memberStore.On("DeleteMembers", []int64{1, 2, 3}).Return(int64(2), nil)
	activityLog.On("LogActivity", "BULK_DELETE", "Deleted 2 users in a bulk operation.", "", "admin").Return()

	count, err := svc.DeleteMembers([]int64{1, 2, 3}, "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	activityLog.AssertExpectations(t)
}

func TestDeleteMembers_EmptyList(t *testing.T) {
	svc, memberStore, _, _ := newTestService()

	_, err := svc.DeleteMembers(nil, "admin")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	memberStore.AssertNotCalled(t, "DeleteMembers", mock.Anything)
}

func TestClearMembers(t *testing.T) {
	svc, memberStore, _, activityLog := newTestService()
	memberStore.On("DeleteAllMembers").Return(int64(12), nil)
	activityLog.On("LogActivity", "DATABASE_CLEAR", "Database cleared completely. Deleted 12 records.", "", "admin").
		Return()

	count, err := svc.ClearMembers("admin")
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
	activityLog.AssertExpectations(t)
}

func TestClearMembers_StoreFailure(t *testing.T) {
	svc, memberStore, _, activityLog := newTestService()
	memberStore.On("DeleteAllMembers").Return(int64(0), errors.New("connection refused"))

	_, err := svc.ClearMembers("admin")
	require.Error(t, err)
	activityLog.AssertNotCalled(t, "LogActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
