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

package sheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadWorkbook_Excel(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Registry export"},
		{"תעודת זהות", "שם פרטי", "הערות"},
		{12345678, "Dana", "vip"},
		{nil, nil, nil},
		{"000123", "Avi"},
	})

	rows, err := ReadWorkbook("members.xlsx", buf)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 5)

	assert.Equal(t, "Registry export", rows[0][0])
	assert.Equal(t, "תעודת זהות", rows[1][0])
	assert.Equal(t, 12345678.0, rows[2][0])
	assert.Equal(t, "Dana", rows[2][1])
	assert.True(t, IsEmptyRow(rows[3]))
	assert.Equal(t, "000123", rows[4][0])
}

func TestReadWorkbook_CSV(t *testing.T) {
	content := "\ufeffתעודת זהות,שם פרטי,טלפון נייד\n12345678,Dana,0501234567\n,,\n"

	rows, err := ReadWorkbook("members.CSV", strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "תעודת זהות", rows[0][0])
	assert.Equal(t, 12345678.0, rows[1][0])
	assert.Equal(t, "Dana", rows[1][1])
	assert.Equal(t, "0501234567", rows[1][2])
	assert.True(t, IsEmptyRow(rows[2]))
}

func TestReadWorkbook_InvalidFile(t *testing.T) {
	_, err := ReadWorkbook("members.xlsx", strings.NewReader("definitely not a zip archive"))
	require.Error(t, err)

	var formatErr *FileFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "members.xlsx", formatErr.FileName)
}
