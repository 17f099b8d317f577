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
	"strings"

	"github.com/pkg/errors"
	"github.com/wso2/member-registry-service/internal/system/constants"
	"github.com/wso2/member-registry-service/internal/system/utils"
)

// AnchorHeader is the column label that identifies the header row.
const AnchorHeader = "תעודת זהות"

// ErrHeaderNotFound is returned when no scanned row contains the anchor header.
var ErrHeaderNotFound = errors.New("could not find header row containing '" + AnchorHeader + "'")

// HeaderMapping maps the localized column labels of the registry spreadsheet to canonical field keys.
var HeaderMapping = map[string]string{
	"תעודת זהות":         constants.FieldIdCard,
	"שם פרטי":            constants.FieldFirstName,
	"שם משפחה":           constants.FieldLastName,
	"מין":                constants.FieldGender,
	"תאריך לידה":         constants.FieldBirthDate,
	"אגודה":              constants.FieldAssociation,
	"מעסיק":              constants.FieldEmployer,
	"סטטוס":              constants.FieldStatus,
	"סניף":               constants.FieldBranch,
	"תאריך הצטרפות":      constants.FieldJoinDate,
	"תאריך עליה/לימודים": constants.FieldAliyahOrStudiesDate,
	"סוג חברות":          constants.FieldMembershipType,
	"סיבת חריגים":        constants.FieldExceptionReason,
	"עיר":                constants.FieldCity,
	"רחוב ומספר":         constants.FieldStreet,
	"דואר אלקטרוני":      constants.FieldEmail,
	"טלפון נייד":         constants.FieldMobilePhone,
	"אישור דיוור":        constants.FieldMailingApproval,
	"תאריך דחייה/אישור":  constants.FieldApprovalDate,
	"השכלה":              constants.FieldEducation,
	"מוסד לימודים":       constants.FieldInstitution,
}

// Header is the resolved header row of a worksheet.
type Header struct {
	// RowIndex is the zero based position of the header row in the grid.
	RowIndex int
	// Fields holds the canonical key per column, "" for columns without a mapping.
	Fields []string
}

// ResolveHeader finds the header row among the first scanLimit rows.
func ResolveHeader(rows [][]interface{}, scanLimit int) (*Header, error) {

	if scanLimit <= 0 {
		scanLimit = constants.DefaultHeaderScanRows
	}
	limit := scanLimit
	if len(rows) < limit {
		limit = len(rows)
	}

	for i := 0; i < limit; i++ {
		if !containsAnchor(rows[i]) {
			continue
		}
		fields := make([]string, len(rows[i]))
		for col, cell := range rows[i] {
			fields[col] = HeaderMapping[headerText(cell)]
		}
		return &Header{RowIndex: i, Fields: fields}, nil
	}
	return nil, ErrHeaderNotFound
}

// DataRows returns the rows that follow the header.
func (h *Header) DataRows(rows [][]interface{}) [][]interface{} {
	if h.RowIndex+1 >= len(rows) {
		return nil
	}
	return rows[h.RowIndex+1:]
}

// MapRow projects a data row onto canonical keys. Unmapped columns and blank cells are left out.
func (h *Header) MapRow(row []interface{}) map[string]interface{} {

	mapped := make(map[string]interface{}, len(h.Fields))
	for col, field := range h.Fields {
		if field == "" || col >= len(row) || row[col] == nil {
			continue
		}
		mapped[field] = row[col]
	}
	return mapped
}

// IsEmptyRow reports whether every cell of the row is blank.
func IsEmptyRow(row []interface{}) bool {
	for _, cell := range row {
		if !utils.IsBlankCell(cell) {
			return false
		}
	}
	return true
}

func containsAnchor(row []interface{}) bool {
	for _, cell := range row {
		if headerText(cell) == AnchorHeader {
			return true
		}
	}
	return false
}

func headerText(cell interface{}) string {
	text, ok := utils.CoerceCellToString(cell)
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}
