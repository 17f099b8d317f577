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
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	activityLogModel "github.com/wso2/member-registry-service/internal/activity_log/model"
	memberModel "github.com/wso2/member-registry-service/internal/member/model"
	memberStore "github.com/wso2/member-registry-service/internal/member/store"
	errors2 "github.com/wso2/member-registry-service/internal/system/errors"
	"github.com/wso2/member-registry-service/internal/system/log"
	rulesModel "github.com/wso2/member-registry-service/internal/validation_rules/model"
)

const csvHeader = "תעודת זהות,שם פרטי,שם משפחה,תאריך לידה,סניף\n"

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// memoryStore keeps members by id card and enforces uniqueness like the members table.
type memoryStore struct {
	memberStore.MemberStoreInterface
	mu       sync.Mutex
	byIDCard map[string]memberModel.Member
	failOn   map[string]error
	nextID   int64
	inserts  []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{byIDCard: map[string]memberModel.Member{}, failOn: map[string]error{}}
}

func (s *memoryStore) CreateMember(member memberModel.Member) (*memberModel.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts = append(s.inserts, member.IdCard)
	if err, ok := s.failOn[member.IdCard]; ok {
		return nil, err
	}
	if _, exists := s.byIDCard[member.IdCard]; exists {
		return nil, memberStore.ErrDuplicateIDCard
	}
	s.nextID++
	member.ID = s.nextID
	s.byIDCard[member.IdCard] = member
	return &member, nil
}

type staticRules struct {
	rules rulesModel.ValidationRuleSet
	err   error
}

func (r *staticRules) GetRules() (rulesModel.ValidationRuleSet, error) {
	return r.rules, r.err
}

func (r *staticRules) SetRules(rules rulesModel.ValidationRuleSet, actor string) error {
	return nil
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

func newPipeline(store *memoryStore) (*MemberImportService, *MockActivityLogService) {
	activityLog := new(MockActivityLogService)
	activityLog.On("LogActivity", "UPLOAD", mock.Anything, "", mock.Anything).Return()
	return NewMemberImportService(store, &staticRules{rules: rulesModel.DefaultRules()}, activityLog), activityLog
}

func clientErrorOf(t *testing.T, err error) *errors2.ClientError {
	t.Helper()
	var clientErr *errors2.ClientError
	require.True(t, errors.As(err, &clientErr), "expected client error, got %v", err)
	return clientErr
}

func TestImportMembers_PartitionsRows(t *testing.T) {
	store := newMemoryStore()
	store.byIDCard["22222222"] = memberModel.Member{ID: 100, IdCard: "22222222"}
	svc, activityLog := newPipeline(store)

	content := csvHeader +
		"11111111,Dana,Levi,17/05/1990,Haifa\n" +
		"123,Avi,,,\n" +
		"22222222,Noa,Cohen,,Tel Aviv\n"

	summary, err := svc.ImportMembers(context.Background(), "members.csv", strings.NewReader(content), "admin")
	require.NoError(t, err)

	assert.True(t, summary.Success)
	assert.Equal(t, 1, summary.AddedCount)
	assert.Equal(t, 2, summary.ErrorCount)
	require.Len(t, summary.Users, 1)
	assert.Equal(t, "11111111", summary.Users[0].IdCard)
	require.NotNil(t, summary.Users[0].BirthDate)
	assert.Equal(t, "1990-05-17", summary.Users[0].BirthDate.Format("2006-01-02"))

	require.Len(t, summary.Errors, 2)
	assert.Equal(t, 2, summary.Errors[0].ExcelRow)
	assert.Equal(t, []string{"ID Card must be at least 8 chars"}, summary.Errors[0].Errors["idCard"])
	assert.Equal(t, []string{"Last Name is missing"}, summary.Errors[0].Errors["lastName"])
	assert.Equal(t, 3, summary.Errors[1].ExcelRow)
	assert.Equal(t, map[string][]string{"db": {"ID already exists"}}, summary.Errors[1].Errors)
	assert.Equal(t, "Noa", summary.Errors[1].Data["firstName"])

	activityLog.AssertCalled(t, "LogActivity", "UPLOAD",
		`Processed file "members.csv". 1 users added, 2 failed.`, "", "admin")
}

func TestImportMembers_SecondRunAddsNothing(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newPipeline(store)
	content := csvHeader + "11111111,Dana,Levi,,\n33333333,Omer,Katz,,\n"

	first, err := svc.ImportMembers(context.Background(), "members.csv", strings.NewReader(content), "admin")
	require.NoError(t, err)
	assert.Equal(t, 2, first.AddedCount)

	second, err := svc.ImportMembers(context.Background(), "members.csv", strings.NewReader(content), "admin")
	require.NoError(t, err)
	assert.Equal(t, 0, second.AddedCount)
	assert.Equal(t, 2, second.ErrorCount)
	assert.Empty(t, second.Users)
	assert.Len(t, store.byIDCard, 2)
}

func TestImportMembers_SkipsEmptyRowsButKeepsNumbering(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newPipeline(store)
	content := csvHeader + ",,,,\n" + "12,Dana,Levi,,\n"

	summary, err := svc.ImportMembers(context.Background(), "members.csv", strings.NewReader(content), "admin")
	require.NoError(t, err)

	assert.Equal(t, 0, summary.AddedCount)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, 2, summary.Errors[0].ExcelRow)
	assert.Empty(t, store.inserts)
}

func TestImportMembers_DatabaseErrorIsReportedPerRow(t *testing.T) {
	store := newMemoryStore()
	store.failOn["44444444"] = errors2.NewServerError(errors2.ADD_MEMBER, errors.New("connection reset"))
	svc, _ := newPipeline(store)
	content := csvHeader + "44444444,Dana,Levi,,\n55555555,Avi,Cohen,,\n"

	summary, err := svc.ImportMembers(context.Background(), "members.csv", strings.NewReader(content), "admin")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.AddedCount)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, []string{"Database error: connection reset"}, summary.Errors[0].Errors["db"])
	assert.Equal(t, []string{"44444444", "55555555"}, store.inserts)
}

func TestImportMembers_CapsReturnedUsers(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newPipeline(store)
	var sb strings.Builder
	sb.WriteString(csvHeader)
	for i := 0; i < 60; i++ {
		sb.WriteString(fmt.Sprintf("%d,First,Last,,\n", 10000000+i))
	}

	summary, err := svc.ImportMembers(context.Background(), "members.csv", strings.NewReader(sb.String()), "admin")
	require.NoError(t, err)

	assert.Equal(t, 60, summary.AddedCount)
	assert.Len(t, summary.Users, 50)
	assert.Equal(t, "10000000", summary.Users[0].IdCard)
}

func TestImportMembers_HeaderNotFound(t *testing.T) {
	store := newMemoryStore()
	svc, activityLog := newPipeline(store)
	content := "name,surname\nDana,Levi\n"

	summary, err := svc.ImportMembers(context.Background(), "members.csv", strings.NewReader(content), "admin")
	assert.Nil(t, summary)

	clientErr := clientErrorOf(t, err)
	assert.Equal(t, errors2.HEADER_NOT_FOUND.Code, clientErr.Code)
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
	assert.Empty(t, store.inserts)
	activityLog.AssertNotCalled(t, "LogActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestImportMembers_InvalidFile(t *testing.T) {
	svc, _ := newPipeline(newMemoryStore())

	_, err := svc.ImportMembers(context.Background(), "members.xlsx", strings.NewReader("plain text"), "admin")

	clientErr := clientErrorOf(t, err)
	assert.Equal(t, errors2.INVALID_FILE_FORMAT.Code, clientErr.Code)
}

func TestImportMembers_RulesUnavailable(t *testing.T) {
	store := newMemoryStore()
	activityLog := new(MockActivityLogService)
	rulesErr := errors2.NewServerError(errors2.GET_VALIDATION_RULES, errors.New("timeout"))
	svc := NewMemberImportService(store, &staticRules{err: rulesErr}, activityLog)

	_, err := svc.ImportMembers(context.Background(), "members.csv",
		strings.NewReader(csvHeader+"11111111,Dana,Levi,,\n"), "admin")

	assert.ErrorIs(t, err, rulesErr)
	assert.Empty(t, store.inserts)
	activityLog.AssertNotCalled(t, "LogActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
