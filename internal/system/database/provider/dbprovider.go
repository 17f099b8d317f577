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

package provider

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/wso2/member-registry-service/internal/system/config"
	"github.com/wso2/member-registry-service/internal/system/constants"
	"github.com/wso2/member-registry-service/internal/system/database/client"
)

// DBConfig represents the local database configuration.
type DBConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient() (client.DBClientInterface, error)
	GetDBType() string
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct{}

var (
	poolMu sync.Mutex
	pool   *sql.DB
)

// NewDBProvider creates a new instance of DBProvider.
func NewDBProvider() DBProviderInterface {

	return &DBProvider{}
}

// GetDBClient returns a client over the process wide connection pool, opening it on first use.
func (d *DBProvider) GetDBClient() (client.DBClientInterface, error) {

	poolMu.Lock()
	defer poolMu.Unlock()

	if pool != nil {
		return client.NewSharedDBClient(pool), nil
	}

	runtimeConfig := config.GetMRSRuntime().Config
	dbConfig := getDBConfig(runtimeConfig)

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}
	if runtimeConfig.DataSource.MaxOpenConns > 0 {
		db.SetMaxOpenConns(runtimeConfig.DataSource.MaxOpenConns)
	}
	if runtimeConfig.DataSource.MaxIdleConns > 0 {
		db.SetMaxIdleConns(runtimeConfig.DataSource.MaxIdleConns)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	pool = db
	return client.NewSharedDBClient(pool), nil
}

// GetDBType returns the key used to pick statements from the scripts maps.
func (d *DBProvider) GetDBType() string {

	return constants.PostgresDBType
}

// SetTestDB installs a connection to be returned by every provider. Passing nil resets the pool.
func SetTestDB(db *sql.DB) {

	poolMu.Lock()
	defer poolMu.Unlock()
	pool = db
}

// ClosePool closes the shared pool on shutdown.
func ClosePool() error {

	poolMu.Lock()
	defer poolMu.Unlock()
	if pool == nil {
		return nil
	}
	err := pool.Close()
	pool = nil
	return err
}

func getDBConfig(cfg config.Config) DBConfig {

	var dbConfig DBConfig

	dbConfig.driverName = "postgres"
	dbConfig.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DataSource.Hostname, cfg.DataSource.Port, cfg.DataSource.Username, cfg.DataSource.Password,
		cfg.DataSource.Name, cfg.DataSource.SSLMode)

	return dbConfig
}
