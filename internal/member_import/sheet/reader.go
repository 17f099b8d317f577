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
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// FileFormatError reports an upload that could not be read as a spreadsheet.
type FileFormatError struct {
	FileName string
	Err      error
}

func (e *FileFormatError) Error() string {
	return fmt.Sprintf("invalid file format for %q: %v", e.FileName, e.Err)
}

func (e *FileFormatError) Unwrap() error {
	return e.Err
}

var (
	errNoSheets = errors.New("workbook has no worksheets")
	// Plain decimal numbers. Values with a leading zero such as "0501234567" stay text.
	numericCell = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?$`)
)

const utf8BOM = "\ufeff"

// ReadWorkbook loads the first worksheet of an upload into a grid of cells.
// Numeric cells are float64, booleans are bool and everything else is a string. Blank cells are nil.
func ReadWorkbook(fileName string, r io.Reader) ([][]interface{}, error) {

	var (
		rows [][]interface{}
		err  error
	)
	if strings.EqualFold(filepath.Ext(fileName), ".csv") {
		rows, err = readCSV(r)
	} else {
		rows, err = readExcel(r)
	}
	if err != nil {
		return nil, &FileFormatError{FileName: fileName, Err: err}
	}
	return rows, nil
}

func readExcel(r io.Reader) ([][]interface{}, error) {

	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}
	sheetName := sheets[0]

	rawRows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read worksheet %q", sheetName)
	}

	grid := make([][]interface{}, len(rawRows))
	for rowIdx, rawRow := range rawRows {
		row := make([]interface{}, len(rawRow))
		for colIdx, raw := range rawRow {
			if raw == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, errors.Wrap(err, "invalid cell coordinates")
			}
			cellType, err := f.GetCellType(sheetName, axis)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read cell %s", axis)
			}
			row[colIdx] = typedExcelValue(cellType, raw)
		}
		grid[rowIdx] = row
	}
	return grid, nil
}

func typedExcelValue(cellType excelize.CellType, raw string) interface{} {

	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	}
	return raw
}

func readCSV(r io.Reader) ([][]interface{}, error) {

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read upload")
	}
	content = bytes.TrimPrefix(content, []byte(utf8BOM))

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse csv")
	}

	grid := make([][]interface{}, len(records))
	for i, record := range records {
		row := make([]interface{}, len(record))
		for j, cell := range record {
			row[j] = typedCSVValue(cell)
		}
		grid[i] = row
	}
	return grid, nil
}

func typedCSVValue(cell string) interface{} {

	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	if numericCell.MatchString(trimmed) {
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return v
		}
	}
	return cell
}
