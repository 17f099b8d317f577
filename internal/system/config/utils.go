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

package config

import (
	"os"
	"path"

	"github.com/wso2/member-registry-service/internal/system/constants"
	"gopkg.in/yaml.v2"
)

// LoadConfig reads the deployment file, expands environment references and applies defaults.
func LoadConfig(mrsHome, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(mrsHome, filePath))
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(file))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// ApplyDefaults fills in values that were left empty in the deployment file.
func ApplyDefaults(cfg *Config) {
	if cfg.Addr.Port == 0 {
		cfg.Addr.Port = 8900
	}
	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = "INFO"
	}
	if cfg.DataSource.SSLMode == "" {
		cfg.DataSource.SSLMode = "disable"
	}
	if cfg.Upload.MaxFileSizeMB <= 0 {
		cfg.Upload.MaxFileSizeMB = constants.DefaultMaxUploadSizeMB
	}
	if cfg.Upload.HeaderScanRows <= 0 {
		cfg.Upload.HeaderScanRows = constants.DefaultHeaderScanRows
	}
	if cfg.Upload.ResponseUserLimit <= 0 {
		cfg.Upload.ResponseUserLimit = constants.DefaultResponseUserLimit
	}
	if cfg.ActivityLog.Store == "" {
		cfg.ActivityLog.Store = constants.ActivityLogStorePostgres
	}
	if cfg.ActivityLog.QueueSize <= 0 {
		cfg.ActivityLog.QueueSize = constants.DefaultActivityLogQueueSize
	}
	if cfg.ActivityLog.Mongo.Collection == "" {
		cfg.ActivityLog.Mongo.Collection = "activity_logs"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

// OverrideMRSRuntime replaces the runtime configuration. Used by tests.
func OverrideMRSRuntime(conf Config) {
	runtimeConfig = &MRSRuntime{
		Config: conf,
	}
}
