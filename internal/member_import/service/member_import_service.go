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
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	activityLogService "github.com/wso2/member-registry-service/internal/activity_log/service"
	memberModel "github.com/wso2/member-registry-service/internal/member/model"
	memberStore "github.com/wso2/member-registry-service/internal/member/store"
	"github.com/wso2/member-registry-service/internal/member_import/model"
	"github.com/wso2/member-registry-service/internal/member_import/schema"
	"github.com/wso2/member-registry-service/internal/member_import/sheet"
	"github.com/wso2/member-registry-service/internal/system/config"
	"github.com/wso2/member-registry-service/internal/system/constants"
	traceContext "github.com/wso2/member-registry-service/internal/system/context"
	errors2 "github.com/wso2/member-registry-service/internal/system/errors"
	"github.com/wso2/member-registry-service/internal/system/log"
	"github.com/wso2/member-registry-service/internal/system/metrics"
	rulesService "github.com/wso2/member-registry-service/internal/validation_rules/service"
)

const duplicateIDCardMessage = "ID already exists"

type MemberImportServiceInterface interface {
	ImportMembers(ctx context.Context, fileName string, reader io.Reader, actor string) (*model.ImportSummary, error)
}

// MemberImportService runs uploads through parse, header resolution, validation and persistence.
type MemberImportService struct {
	store             memberStore.MemberStoreInterface
	rules             rulesService.ValidationRuleServiceInterface
	activityLog       activityLogService.ActivityLogServiceInterface
	headerScanRows    int
	responseUserLimit int
}

// GetMemberImportService returns a pipeline wired to the PostgreSQL member store and the runtime limits.
func GetMemberImportService() MemberImportServiceInterface {

	svc := &MemberImportService{
		store:             &memberStore.MemberStore{},
		rules:             rulesService.GetValidationRuleService(),
		activityLog:       activityLogService.GetActivityLogService(),
		headerScanRows:    constants.DefaultHeaderScanRows,
		responseUserLimit: constants.DefaultResponseUserLimit,
	}
	if config.IsInitialized() {
		upload := config.GetMRSRuntime().Config.Upload
		svc.headerScanRows = upload.HeaderScanRows
		svc.responseUserLimit = upload.ResponseUserLimit
	}
	return svc
}

// NewMemberImportService wires the pipeline with explicit dependencies and default limits.
func NewMemberImportService(store memberStore.MemberStoreInterface, rules rulesService.ValidationRuleServiceInterface,
	activityLog activityLogService.ActivityLogServiceInterface) *MemberImportService {

	return &MemberImportService{
		store:             store,
		rules:             rules,
		activityLog:       activityLog,
		headerScanRows:    constants.DefaultHeaderScanRows,
		responseUserLimit: constants.DefaultResponseUserLimit,
	}
}

// ImportMembers processes one upload. Only unreadable files, a missing header row or a failure to load
// the rules abort the batch. Every other problem is reported against its row.
func (s *MemberImportService) ImportMembers(ctx context.Context, fileName string, reader io.Reader,
	actor string) (*model.ImportSummary, error) {

	started := time.Now()
	traceID := traceContext.GetTraceID(ctx)
	logger := log.GetLogger()

	rows, err := sheet.ReadWorkbook(fileName, reader)
	if err != nil {
		metrics.ObserveUpload(metrics.UploadInvalidFile, started)
		logger.Debug("Rejected unreadable upload", log.String("file", fileName), log.Error(err))
		return nil, errors2.NewClientErrorWithTraceID(
			errors2.INVALID_FILE_FORMAT.WithDescription(fmt.Sprintf("Could not read %q as a spreadsheet.", fileName)),
			http.StatusBadRequest, traceID)
	}

	header, err := sheet.ResolveHeader(rows, s.headerScanRows)
	if err != nil {
		metrics.ObserveUpload(metrics.UploadHeaderNotFound, started)
		return nil, errors2.NewClientErrorWithTraceID(errors2.HEADER_NOT_FOUND.WithDescription(err.Error()),
			http.StatusBadRequest, traceID)
	}

	rules, err := s.rules.GetRules()
	if err != nil {
		metrics.ObserveUpload(metrics.UploadFailed, started)
		return nil, err
	}
	memberSchema := schema.Build(rules)

	accepted, rejected := partitionRows(memberSchema, header, header.DataRows(rows))

	created := make([]memberModel.Member, 0, len(accepted))
	conflicts := 0
	for _, row := range accepted {
		member, err := s.store.CreateMember(row.Member)
		if err != nil {
			message := persistenceMessage(err)
			if errors.Is(err, memberStore.ErrDuplicateIDCard) {
				conflicts++
			} else {
				logger.Debug("Failed to persist imported row", log.Int("excelRow", row.ExcelRow),
					log.String("traceId", traceID), log.Error(err))
			}
			rejected = append(rejected, model.RejectedRow{
				Data:     row.Data,
				ExcelRow: row.ExcelRow,
				Errors:   map[string][]string{constants.DBErrorKey: {message}},
			})
			continue
		}
		created = append(created, *member)
	}

	summary := &model.ImportSummary{
		Success:    true,
		AddedCount: len(created),
		ErrorCount: len(rejected),
		Errors:     rejected,
		Users:      created,
	}
	if len(summary.Users) > s.responseUserLimit {
		summary.Users = summary.Users[:s.responseUserLimit]
	}

	metrics.ObserveImportRows(metrics.RowAccepted, len(created))
	metrics.ObserveImportRows(metrics.RowRejected, len(rejected)-conflicts)
	metrics.ObserveImportRows(metrics.RowConflict, conflicts)
	metrics.ObserveUpload(metrics.UploadCompleted, started)

	s.activityLog.LogActivity(constants.ActionUpload,
		fmt.Sprintf("Processed file %q. %d users added, %d failed.", fileName, summary.AddedCount, summary.ErrorCount),
		"", actor)
	logger.Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: log.InitiatorTypeAdmin,
		TargetID:      fileName,
		TargetType:    log.TargetTypeMemberRegistry,
		ActionID:      log.ActionImportMembers,
		TraceID:       traceID,
		Data:          map[string]int{"added": summary.AddedCount, "failed": summary.ErrorCount},
	})
	logger.Info("Processed member upload", log.String("file", fileName), log.Int("added", summary.AddedCount),
		log.Int("failed", summary.ErrorCount), log.String("traceId", traceID))
	return summary, nil
}

// partitionRows validates every non-empty data row. Row numbers count data rows from 1.
func partitionRows(memberSchema *schema.MemberSchema, header *sheet.Header,
	dataRows [][]interface{}) ([]model.AcceptedRow, []model.RejectedRow) {

	accepted := make([]model.AcceptedRow, 0, len(dataRows))
	rejected := make([]model.RejectedRow, 0)
	for i, row := range dataRows {
		if sheet.IsEmptyRow(row) {
			continue
		}
		excelRow := i + 1
		mapped := header.MapRow(row)
		member, violations := memberSchema.Validate(mapped)
		if len(violations) > 0 {
			rejected = append(rejected, model.RejectedRow{Data: mapped, ExcelRow: excelRow, Errors: violations})
			continue
		}
		accepted = append(accepted, model.AcceptedRow{Member: member, ExcelRow: excelRow, Data: mapped})
	}
	return accepted, rejected
}

func persistenceMessage(err error) string {
	if errors.Is(err, memberStore.ErrDuplicateIDCard) {
		return duplicateIDCardMessage
	}
	cause := err
	var serverErr *errors2.ServerError
	if errors.As(err, &serverErr) && serverErr.Err != nil {
		cause = serverErr.Err
	}
	return fmt.Sprintf("Database error: %s", cause.Error())
}
