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

package errors

const errorPrefix = "MRS-"

var (
	// Client error codes

	INVALID_FILE_FORMAT = ErrorMessage{
		Code:        errorPrefix + "10001",
		Message:     "Invalid file format.",
		Description: "The uploaded file could not be read as a spreadsheet.",
	}

	HEADER_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "10002",
		Message:     "Could not find header row.",
		Description: "Could not find header row containing 'תעודת זהות'.",
	}

	NO_FILE_UPLOADED = ErrorMessage{
		Code:        errorPrefix + "10003",
		Message:     "No file uploaded.",
		Description: "The request must carry a multipart field named 'file'.",
	}

	INVALID_VALIDATION_RULES = ErrorMessage{
		Code:    errorPrefix + "10004",
		Message: "Invalid rules configuration.",
	}

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "10005",
		Message: "Invalid body format.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "10006",
		Message:     "Unauthorized",
		Description: "Authorization failure. Authorization information was invalid or missing from your request.",
	}

	MEMBER_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "10007",
		Message: "User not found.",
	}

	MEMBER_ALREADY_EXISTS = ErrorMessage{
		Code:        errorPrefix + "10008",
		Message:     "ID already exists",
		Description: "A member with the same ID card is already registered.",
	}

	MEMBER_VALIDATION_FAILED = ErrorMessage{
		Code:    errorPrefix + "10009",
		Message: "Validation failed.",
	}

	INVALID_MEMBER_IDS = ErrorMessage{
		Code:        errorPrefix + "10010",
		Message:     "Invalid IDs.",
		Description: "The request body must carry a non-empty 'ids' array.",
	}

	INVALID_MEMBER_ID = ErrorMessage{
		Code:    errorPrefix + "10011",
		Message: "Invalid user id.",
	}

	FILE_TOO_LARGE = ErrorMessage{
		Code:    errorPrefix + "10012",
		Message: "Uploaded file is too large.",
	}

	// Server error codes

	GET_VALIDATION_RULES = ErrorMessage{
		Code:    errorPrefix + "60001",
		Message: "Error while fetching validation rules.",
	}

	UPDATE_VALIDATION_RULES = ErrorMessage{
		Code:    errorPrefix + "60002",
		Message: "Error while updating validation rules.",
	}

	ADD_MEMBER = ErrorMessage{
		Code:    errorPrefix + "60003",
		Message: "Error while adding member.",
	}

	GET_MEMBER = ErrorMessage{
		Code:    errorPrefix + "60004",
		Message: "Error while fetching member(s).",
	}

	UPDATE_MEMBER = ErrorMessage{
		Code:    errorPrefix + "60005",
		Message: "Error while updating member.",
	}

	DELETE_MEMBER = ErrorMessage{
		Code:    errorPrefix + "60006",
		Message: "Error while deleting member(s).",
	}

	GET_MEMBER_STATS = ErrorMessage{
		Code:    errorPrefix + "60007",
		Message: "Error while computing member statistics.",
	}

	ADD_ACTIVITY_LOG = ErrorMessage{
		Code:    errorPrefix + "60008",
		Message: "Error while adding activity log.",
	}

	GET_ACTIVITY_LOGS = ErrorMessage{
		Code:    errorPrefix + "60009",
		Message: "Error while fetching activity logs.",
	}
)
