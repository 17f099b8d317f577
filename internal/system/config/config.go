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

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type AuthConfig struct {
	Enabled            bool     `yaml:"enabled"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	AdminUsername      string   `yaml:"admin_username"`
	AdminPassword      string   `yaml:"admin_password"`
	JWTSecret          string   `yaml:"jwt_secret"`
}

type DataSourceConfig struct {
	Hostname     string `yaml:"hostname"`
	Port         int    `yaml:"port"`
	Name         string `yaml:"name"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	SSLMode      string `yaml:"sslmode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type UploadConfig struct {
	MaxFileSizeMB     int `yaml:"max_file_size_mb"`
	HeaderScanRows    int `yaml:"header_scan_rows"`
	ResponseUserLimit int `yaml:"response_user_limit"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type ActivityLogConfig struct {
	Store     string      `yaml:"store"`
	QueueSize int         `yaml:"queue_size"`
	Mongo     MongoConfig `yaml:"mongodb"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type Config struct {
	Addr        AddrConfig        `yaml:"addr"`
	Log         LogConfig         `yaml:"log"`
	Auth        AuthConfig        `yaml:"auth"`
	DataSource  DataSourceConfig  `yaml:"datasource"`
	Upload      UploadConfig      `yaml:"upload"`
	ActivityLog ActivityLogConfig `yaml:"activity_log"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}
