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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/wso2/member-registry-service/internal/activity_log/store"
	"github.com/wso2/member-registry-service/internal/system/config"
	"github.com/wso2/member-registry-service/internal/system/constants"
	"github.com/wso2/member-registry-service/internal/system/database/provider"
	"github.com/wso2/member-registry-service/internal/system/log"
	"github.com/wso2/member-registry-service/internal/system/managers"
	"github.com/wso2/member-registry-service/internal/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	configFile      = "repository/conf/deployment.yaml"
	schemaFile      = "repository/dbscripts/postgres.sql"
	shutdownTimeout = 15 * time.Second
)

func main() {
	mrsHome := getMRSHome()
	logger := log.GetLogger()

	envFiles, err := filepath.Glob(filepath.Join(mrsHome, "config", "*.env"))
	if err != nil || len(envFiles) == 0 {
		logger.Warn("No .env files found in config directory")
	} else if err := godotenv.Load(envFiles...); err != nil {
		logger.Warn("Failed to load .env files", log.Error(err))
	}

	mrsConfig, err := config.LoadConfig(mrsHome, configFile)
	if err != nil {
		logger.Fatal("Failed to load configuration", log.Error(err))
	}

	if err := config.InitializeMRSRuntime(mrsHome, mrsConfig); err != nil {
		logger.Fatal("Failed to initialize runtime", log.Error(err))
	}

	if err := log.Init(mrsConfig.Log.LogLevel); err != nil {
		logger.Fatal("Failed to initialize logger", log.Error(err))
	}
	logger = log.GetLogger()

	if err := initDatabase(mrsHome); err != nil {
		logger.Fatal("Failed to initialize database", log.Error(err))
	}

	mongoClient, err := initActivityLogStore(mrsConfig.ActivityLog)
	if err != nil {
		logger.Fatal("Failed to initialize activity log store", log.Error(err))
	}
	workers.StartActivityLogWorker(store.GetActivityLogStore(), mrsConfig.ActivityLog.QueueSize)

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux, *mrsConfig)
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}

	serverAddr := fmt.Sprintf("%s:%d", mrsConfig.Addr.Host, mrsConfig.Addr.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           serviceManager.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Member registry service started", log.String("address", serverAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve requests", log.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down member registry service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", log.Error(err))
	}

	workers.StopActivityLogWorker()
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			logger.Warn("Failed to disconnect from MongoDB", log.Error(err))
		}
	}
	if err := provider.ClosePool(); err != nil {
		logger.Warn("Failed to close database pool", log.Error(err))
	}
}

func initDatabase(mrsHome string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return err
	}
	defer dbClient.Close()

	return dbClient.InitDatabase(mrsHome, schemaFile)
}

// initActivityLogStore selects the MongoDB backend when configured. PostgreSQL is the default.
func initActivityLogStore(cfg config.ActivityLogConfig) (*mongo.Client, error) {

	if cfg.Store != constants.ActivityLogStoreMongoDB {
		return nil, nil
	}

	client, err := store.ConnectMongo(context.Background(), cfg.Mongo.URI)
	if err != nil {
		return nil, err
	}
	store.UseActivityLogStore(store.NewMongoActivityLogStore(client.Database(cfg.Mongo.Database), cfg.Mongo.Collection))
	log.GetLogger().Info("Activity log is stored in MongoDB", log.String("database", cfg.Mongo.Database),
		log.String("collection", cfg.Mongo.Collection))
	return client, nil
}

func getMRSHome() string {

	projectHomeFlag := flag.String("mrsHome", "", "Path to member registry service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		return *projectHomeFlag
	}
	dir, err := os.Getwd()
	if err != nil {
		log.GetLogger().Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}
