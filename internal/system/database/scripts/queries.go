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

package scripts

// Validation rules

var GetValidationRules = map[string]string{
	"postgres": `SELECT rules_json::text AS rules_json FROM validation_rules WHERE id = $1`,
}

var UpsertValidationRules = map[string]string{
	"postgres": `INSERT INTO validation_rules (id, rules_json, updated_at) VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (id) DO UPDATE SET rules_json = EXCLUDED.rules_json, updated_at = NOW()`,
}

// Members

const memberColumns = `id, id_card, first_name, last_name, gender, birth_date, association, employer, status,
	branch, join_date, aliyah_or_studies_date, membership_type, exception_reason, city, street, email,
	mobile_phone, mailing_approval, approval_date, education, institution, created_at, updated_at`

var InsertMember = map[string]string{
	"postgres": `INSERT INTO members (id_card, first_name, last_name, gender, birth_date, association, employer,
		status, branch, join_date, aliyah_or_studies_date, membership_type, exception_reason, city, street, email,
		mobile_phone, mailing_approval, approval_date, education, institution, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21,
		NOW(), NOW())
		RETURNING ` + memberColumns,
}

var UpdateMember = map[string]string{
	"postgres": `UPDATE members SET id_card = $2, first_name = $3, last_name = $4, gender = $5, birth_date = $6,
		association = $7, employer = $8, status = $9, branch = $10, join_date = $11, aliyah_or_studies_date = $12,
		membership_type = $13, exception_reason = $14, city = $15, street = $16, email = $17, mobile_phone = $18,
		mailing_approval = $19, approval_date = $20, education = $21, institution = $22, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + memberColumns,
}

var GetMemberByID = map[string]string{
	"postgres": `SELECT ` + memberColumns + ` FROM members WHERE id = $1`,
}

var GetMemberByIDCard = map[string]string{
	"postgres": `SELECT ` + memberColumns + ` FROM members WHERE id_card = $1`,
}

var ListMembers = map[string]string{
	"postgres": `SELECT ` + memberColumns + ` FROM members ORDER BY created_at DESC, id DESC`,
}

// SearchMembers expects a pattern whose wildcard characters are escaped with a backslash.
var SearchMembers = map[string]string{
	"postgres": `SELECT ` + memberColumns + ` FROM members
		WHERE first_name ILIKE $1 ESCAPE '\' OR last_name ILIKE $1 ESCAPE '\'
			OR id_card ILIKE $1 ESCAPE '\' OR email ILIKE $1 ESCAPE '\'
		ORDER BY created_at DESC, id DESC`,
}

var CountMembers = map[string]string{
	"postgres": `SELECT COUNT(*) AS count FROM members`,
}

var CountMembersSince = map[string]string{
	"postgres": `SELECT COUNT(*) AS count FROM members WHERE created_at >= $1`,
}

// GroupCountMembers is completed with a whitelisted column name by the store.
var GroupCountMembers = map[string]string{
	"postgres": `SELECT %[1]s AS name, COUNT(*) AS count FROM members GROUP BY %[1]s ORDER BY count DESC`,
}

var GetMemberCreatedTimesSince = map[string]string{
	"postgres": `SELECT created_at FROM members WHERE created_at >= $1 ORDER BY created_at ASC`,
}

var DeleteMember = map[string]string{
	"postgres": `DELETE FROM members WHERE id = $1`,
}

var DeleteMembers = map[string]string{
	"postgres": `DELETE FROM members WHERE id = ANY($1)`,
}

var DeleteAllMembers = map[string]string{
	"postgres": `DELETE FROM members`,
}

// Activity logs

var InsertActivityLog = map[string]string{
	"postgres": `INSERT INTO activity_logs (id, action, details, entity_id, admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
}

var GetRecentActivityLogs = map[string]string{
	"postgres": `SELECT id, action, details, entity_id, admin, created_at FROM activity_logs
		ORDER BY created_at DESC LIMIT $1`,
}

// Health

var PingDatabase = map[string]string{
	"postgres": `SELECT 1 AS ok`,
}
