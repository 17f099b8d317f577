//go:build integration

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

package integration

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	memberService "github.com/wso2/member-registry-service/internal/member/service"
	errors2 "github.com/wso2/member-registry-service/internal/system/errors"
	rulesModel "github.com/wso2/member-registry-service/internal/validation_rules/model"
	rulesService "github.com/wso2/member-registry-service/internal/validation_rules/service"
	"github.com/wso2/member-registry-service/test/integration/utils"
)

func Test_ValidationRules(t *testing.T) {
	require.NoError(t, utils.ResetTables(testPostgres.DB))
	svc := rulesService.GetValidationRuleService()

	rules, err := svc.GetRules()
	require.NoError(t, err)
	assert.Equal(t, rulesModel.DefaultRules(), rules)

	nine := 9
	custom := rulesModel.ValidationRuleSet{
		"idCard":    {Min: &nine, Required: true, Label: "תעודת זהות"},
		"firstName": {Required: true, Label: "שם פרטי"},
	}
	require.NoError(t, svc.SetRules(custom, "integration"))

	stored, err := svc.GetRules()
	require.NoError(t, err)
	assert.Equal(t, custom, stored)

	err = svc.SetRules(rulesModel.ValidationRuleSet{"firstName": {Required: true}}, "integration")
	var clientErr *errors2.ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func Test_MemberLifecycle(t *testing.T) {
	require.NoError(t, utils.ResetTables(testPostgres.DB))
	svc := memberService.GetMemberService()

	created, err := svc.RegisterMember(map[string]interface{}{
		"idCard": "87654321", "firstName": "Noa", "lastName": "Cohen", "joinDate": "2024-03-01",
	}, "integration")
	require.NoError(t, err)
	require.NotNil(t, created.JoinDate)

	_, err = svc.RegisterMember(map[string]interface{}{
		"idCard": "87654321", "firstName": "Noa", "lastName": "Cohen",
	}, "integration")
	require.Error(t, err)

	updated, err := svc.UpdateMember(created.ID, map[string]interface{}{"city": "Haifa", "joinDate": nil}, "integration")
	require.NoError(t, err)
	require.NotNil(t, updated.City)
	assert.Equal(t, "Haifa", *updated.City)
	assert.Nil(t, updated.JoinDate)

	second, err := svc.RegisterMember(map[string]interface{}{
		"idCard": "11223344", "firstName": "Omer", "lastName": "Katz",
	}, "integration")
	require.NoError(t, err)

	_, err = svc.UpdateMember(second.ID, map[string]interface{}{"idCard": "87654321"}, "integration")
	var clientErr *errors2.ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, http.StatusConflict, clientErr.StatusCode)

	count, err := svc.DeleteMembers([]int64{second.ID, 999999}, "integration")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.DeleteMember(created.ID, "integration"))
	err = svc.DeleteMember(created.ID, "integration")
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)

	cleared, err := svc.ClearMembers("integration")
	require.NoError(t, err)
	assert.Equal(t, int64(0), cleared)
}
