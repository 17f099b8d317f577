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
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/wso2/member-registry-service/internal/member_import/provider"
	"github.com/wso2/member-registry-service/internal/system/config"
	"github.com/wso2/member-registry-service/internal/system/constants"
	"github.com/wso2/member-registry-service/internal/system/context"
	errors2 "github.com/wso2/member-registry-service/internal/system/errors"
	"github.com/wso2/member-registry-service/internal/system/log"
	"github.com/wso2/member-registry-service/internal/system/utils"
)

const (
	uploadFormField  = "file"
	multipartMemory  = 8 << 20
	bytesPerMegabyte = 1 << 20
)

type MemberImportHandler struct {
	provider      provider.MemberImportProviderInterface
	maxUploadSize int64
}

func NewMemberImportHandler() *MemberImportHandler {

	maxMB := constants.DefaultMaxUploadSizeMB
	if config.IsInitialized() {
		maxMB = config.GetMRSRuntime().Config.Upload.MaxFileSizeMB
	}
	return NewMemberImportHandlerWithProvider(provider.NewMemberImportProvider(), int64(maxMB)*bytesPerMegabyte)
}

// NewMemberImportHandlerWithProvider builds a handler around the given provider and upload size limit.
func NewMemberImportHandlerWithProvider(p provider.MemberImportProviderInterface, maxUploadSize int64) *MemberImportHandler {
	return &MemberImportHandler{provider: p, maxUploadSize: maxUploadSize}
}

// UploadMembers imports the spreadsheet sent in the "file" multipart field.
func (h *MemberImportHandler) UploadMembers(w http.ResponseWriter, r *http.Request) {

	traceID := context.GetTraceID(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			utils.HandleError(w, errors2.NewClientErrorWithTraceID(errors2.FILE_TOO_LARGE.WithDescription(
				"Uploads are limited to "+humanSize(h.maxUploadSize)+"."), http.StatusRequestEntityTooLarge, traceID))
			return
		}
		utils.HandleError(w, errors2.NewClientErrorWithTraceID(errors2.NO_FILE_UPLOADED, http.StatusBadRequest, traceID))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, fileHeader, err := r.FormFile(uploadFormField)
	if err != nil {
		utils.HandleError(w, errors2.NewClientErrorWithTraceID(errors2.NO_FILE_UPLOADED, http.StatusBadRequest, traceID))
		return
	}
	defer func() { _ = file.Close() }()

	log.GetLogger().Debug("Received member upload", log.String("file", fileHeader.Filename),
		log.Int64("size", fileHeader.Size), log.String("traceId", traceID))

	summary, err := h.provider.GetMemberImportService().ImportMembers(r.Context(), fileHeader.Filename, file,
		context.GetActor(r.Context()))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, summary)
}

func humanSize(bytes int64) string {
	if bytes%bytesPerMegabyte == 0 {
		return strconv.FormatInt(bytes/bytesPerMegabyte, 10) + " MB"
	}
	return strconv.FormatInt(bytes, 10) + " bytes"
}
