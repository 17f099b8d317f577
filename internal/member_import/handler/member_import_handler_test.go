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

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wso2/member-registry-service/internal/member_import/model"
	"github.com/wso2/member-registry-service/internal/member_import/service"
	errors2 "github.com/wso2/member-registry-service/internal/system/errors"
	"github.com/wso2/member-registry-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// MockImportService implements service.MemberImportServiceInterface for testing
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) ImportMembers(ctx context.Context, fileName string, reader io.Reader,
	actor string) (*model.ImportSummary, error) {
	content, _ := io.ReadAll(reader)
	args := m.Called(fileName, string(content), actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportSummary), args.Error(1)
}

type stubProvider struct {
	svc service.MemberImportServiceInterface
}

func (p *stubProvider) GetMemberImportService() service.MemberImportServiceInterface {
	return p.svc
}

func multipartRequest(t *testing.T, field, fileName, content string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadMembers(t *testing.T) {
	svc := new(MockImportService)
	summary := &model.ImportSummary{Success: true, AddedCount: 1, Errors: []model.RejectedRow{}}
	svc.On("ImportMembers", "members.csv", "csv-content", "Internal System").Return(summary, nil)
	h := NewMemberImportHandlerWithProvider(&stubProvider{svc: svc}, 1<<20)

	rec := httptest.NewRecorder()
	h.UploadMembers(rec, multipartRequest(t, "file", "members.csv", "csv-content"))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["addedCount"])
	svc.AssertExpectations(t)
}

func TestUploadMembers_MissingFile(t *testing.T) {
	svc := new(MockImportService)
	h := NewMemberImportHandlerWithProvider(&stubProvider{svc: svc}, 1<<20)

	rec := httptest.NewRecorder()
	h.UploadMembers(rec, multipartRequest(t, "attachment", "members.csv", "x"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), errors2.NO_FILE_UPLOADED.Code)
	svc.AssertNotCalled(t, "ImportMembers", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadMembers_TooLarge(t *testing.T) {
	svc := new(MockImportService)
	h := NewMemberImportHandlerWithProvider(&stubProvider{svc: svc}, 64)

	rec := httptest.NewRecorder()
	h.UploadMembers(rec, multipartRequest(t, "file", "members.csv", string(bytes.Repeat([]byte("a"), 1024))))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), errors2.FILE_TOO_LARGE.Code)
}

func TestUploadMembers_HeaderNotFound(t *testing.T) {
	svc := new(MockImportService)
	svc.On("ImportMembers", "members.xlsx", "data", "Internal System").
		Return(nil, errors2.NewClientError(errors2.HEADER_NOT_FOUND, http.StatusBadRequest))
	h := NewMemberImportHandlerWithProvider(&stubProvider{svc: svc}, 1<<20)

	rec := httptest.NewRecorder()
	h.UploadMembers(rec, multipartRequest(t, "file", "members.xlsx", "data"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}
