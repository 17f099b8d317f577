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

package schema

import (
	"math"
	"strings"
	"time"

	"github.com/wso2/member-registry-service/internal/system/utils"
)

// maxSerial is the spreadsheet serial of 9999-12-31.
const maxSerial = 2958465

var (
	// Serials below 60 predate the fictitious 1900-02-29 that spreadsheet serials count.
	earlySerialEpoch = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)
	serialEpoch      = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
)

// Accepted textual layouts. Slash, dot and dash separated dates with the year last are day first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02.01.2006",
	"2.1.2006",
	"02-01-2006",
}

// SerialToDate converts a spreadsheet serial day number into a UTC calendar date.
// Serial 1 is 1900-01-01 and serial 25569 is 1970-01-01.
func SerialToDate(serial float64) time.Time {
	days := int(math.Round(serial))
	if days < 60 {
		return earlySerialEpoch.AddDate(0, 0, days)
	}
	return serialEpoch.AddDate(0, 0, days)
}

// ParseDateValue normalizes a cell into a UTC midnight date.
// It returns (nil, true) for blank cells and (nil, false) for values that are not dates.
func ParseDateValue(value interface{}) (*time.Time, bool) {

	if utils.IsBlankCell(value) {
		return nil, true
	}

	switch v := value.(type) {
	case time.Time:
		day := toDay(v)
		return &day, true
	case string:
		return parseDateString(strings.TrimSpace(v))
	}

	if serial, ok := utils.CoerceCellToFloat(value); ok {
		if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 0 || serial > maxSerial {
			return nil, false
		}
		day := SerialToDate(serial)
		return &day, true
	}
	return nil, false
}

func parseDateString(text string) (*time.Time, bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			day := toDay(parsed)
			return &day, true
		}
	}
	return nil, false
}

// toDay keeps the calendar day as written, dropping the time of day and offset.
func toDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
