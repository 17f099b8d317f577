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

package lock

import (
	"database/sql"
	"fmt"
	"hash/fnv"

	"github.com/wso2/member-registry-service/internal/system/log"
)

// GenerateLockKey hashes a lock name into the bigint space used by PostgreSQL advisory locks.
func GenerateLockKey(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum64())
}

// AcquireTxLock blocks until the advisory lock for name is held by tx. The lock is released
// when the transaction commits or rolls back.
func AcquireTxLock(tx *sql.Tx, name string) error {

	lockID := GenerateLockKey(name)
	if _, err := tx.Exec("SELECT pg_advisory_xact_lock($1)", lockID); err != nil {
		log.GetLogger().Debug("Failed to acquire advisory lock", log.String("lock", name), log.Error(err))
		return fmt.Errorf("failed to acquire advisory lock %q: %w", name, err)
	}
	log.GetLogger().Debug(fmt.Sprintf("Advisory lock acquired for lock id: %d", lockID))
	return nil
}
