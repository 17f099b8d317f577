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

package utils

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	customerrors "github.com/wso2/member-registry-service/internal/system/errors"
	"github.com/wso2/member-registry-service/internal/system/log"
)

// HandleError sends an HTTP error response based on the provided error
func HandleError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	var clientError *customerrors.ClientError
	if ok := errors.As(err, &clientError); ok {
		status := clientError.StatusCode
		if status == 0 {
			status = http.StatusBadRequest
		}
		errText := clientError.Message
		if clientError.Description != "" {
			errText = clientError.Description
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(struct {
			Code        string `json:"code"`
			Message     string `json:"message"`
			Description string `json:"description,omitempty"`
			TraceID     string `json:"trace_id,omitempty"`
			Error       string `json:"error"`
		}{
			Code:        clientError.Code,
			Message:     clientError.Message,
			Description: clientError.Description,
			TraceID:     clientError.TraceID,
			Error:       errText,
		})
		return
	}

	logger := log.GetLogger()
	logger.Error("Request failed", log.Error(err))
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "Internal server error",
	})
}

// WriteJSONResponse writes the payload as JSON with the given status.
func WriteJSONResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.GetLogger().Debug("Failed to encode response", log.Error(err))
	}
}

// DecodeJSONBody decodes the request body into v and turns decoding failures into a 400 ClientError.
func DecodeJSONBody(r *http.Request, v interface{}, resourceName string) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return customerrors.NewClientError(customerrors.BAD_REQUEST.WithDescription(HandleDecodeError(err, resourceName)),
			http.StatusBadRequest)
	}
	return nil
}

// ParsePathID parses a numeric record id taken from the URL path.
func ParsePathID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, customerrors.NewClientError(customerrors.INVALID_MEMBER_ID.WithDescription("User id must be a positive integer."),
			http.StatusBadRequest)
	}
	return id, nil
}
