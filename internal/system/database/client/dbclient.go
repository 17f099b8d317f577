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

package client

import (
	"database/sql"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/wso2/member-registry-service/internal/system/database/lock"
	"github.com/wso2/member-registry-service/internal/system/log"

	_ "github.com/lib/pq"
)

const schemaLockName = "member-registry-schema"

// DBClientInterface defines the interface for database operations.
type DBClientInterface interface {
	ExecuteQuery(query string, args ...interface{}) ([]map[string]interface{}, error)
	ExecuteCommand(query string, args ...interface{}) (int64, error)
	BeginTx() (*sql.Tx, error)
	Ping() error
	Close() error
	InitDatabase(mrsHome, file string) error
}

// DBClient is the implementation of DBClientInterface.
type DBClient struct {
	db     *sql.DB
	shared bool
}

// NewDBClient creates a new instance of DBClient that owns the provided database connection.
func NewDBClient(db *sql.DB) DBClientInterface {

	return &DBClient{
		db: db,
	}
}

// NewSharedDBClient wraps a pooled connection that outlives the client. Close leaves the pool open.
func NewSharedDBClient(db *sql.DB) DBClientInterface {

	return &DBClient{
		db:     db,
		shared: true,
	}
}

// InitDatabase runs the schema script while holding a transaction scoped advisory lock so that
// replicas starting together do not race on DDL.
func (client *DBClient) InitDatabase(mrsHome, file string) error {

	sqlBytes, err := os.ReadFile(path.Join(mrsHome, file))
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	tx, err := client.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	if err := lock.AcquireTxLock(tx, schemaLockName); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err = tx.Exec(string(sqlBytes)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	log.GetLogger().Info("Database schema created successfully")
	return nil
}

// ExecuteQuery executes a SELECT query and returns the result as a slice of maps.
func (client *DBClient) ExecuteQuery(query string, args ...interface{}) ([]map[string]interface{}, error) {

	rows, err := client.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]interface{}
	for rows.Next() {
		row := make([]interface{}, len(columns))
		rowPointers := make([]interface{}, len(columns))
		for i := range row {
			rowPointers[i] = &row[i]
		}

		if err := rows.Scan(rowPointers...); err != nil {
			return nil, err
		}

		result := map[string]interface{}{}
		for i, col := range columns {
			// Normalize column names to lowercase for consistency.
			result[strings.ToLower(col)] = row[i]
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// ExecuteCommand executes an INSERT, UPDATE or DELETE and returns the number of affected rows.
func (client *DBClient) ExecuteCommand(query string, args ...interface{}) (int64, error) {

	res, err := client.db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// BeginTx starts a new database transaction.
func (client *DBClient) BeginTx() (*sql.Tx, error) {

	return client.db.Begin()
}

func (client *DBClient) Ping() error {

	return client.db.Ping()
}

// Close closes the database connection.
func (client *DBClient) Close() error {
	if client.shared || os.Getenv("TEST_MODE") == "true" {
		return nil
	}
	return client.db.Close()
}
