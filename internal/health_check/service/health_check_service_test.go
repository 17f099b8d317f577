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
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/member-registry-service/internal/system/database/provider"
	"github.com/wso2/member-registry-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	_ = os.Setenv("TEST_MODE", "true")
	os.Exit(m.Run())
}

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	provider.SetTestDB(db)
	t.Cleanup(func() {
		provider.SetTestDB(nil)
		_ = db.Close()
	})
	return mock
}

func TestCheckReadiness(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"ok"}).AddRow(1))

	assert.NoError(t, GetHealthCheckService().CheckReadiness())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckReadiness_DatabaseDown(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("connection refused"))

	err := GetHealthCheckService().CheckReadiness()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
