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

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/wso2/member-registry-service/internal/activity_log/model"
	errors2 "github.com/wso2/member-registry-service/internal/system/errors"
	"github.com/wso2/member-registry-service/internal/system/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoActivityLogStore keeps activity log entries in a MongoDB collection.
type MongoActivityLogStore struct {
	Collection *mongo.Collection
}

// NewMongoActivityLogStore initializes a store for the given collection.
func NewMongoActivityLogStore(db *mongo.Database, collectionName string) *MongoActivityLogStore {
	return &MongoActivityLogStore{
		Collection: db.Collection(collectionName),
	}
}

// ConnectMongo opens and verifies a MongoDB client.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}

func (s *MongoActivityLogStore) AddActivityLog(entry model.ActivityLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.Collection.InsertOne(ctx, entry); err != nil {
		errorMsg := fmt.Sprintf("Failed to insert activity log: %s", entry.Action)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ADD_ACTIVITY_LOG.WithDescription(errorMsg), err)
	}
	return nil
}

func (s *MongoActivityLogStore) GetRecentActivityLogs(limit int) ([]model.ActivityLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.Collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		errorMsg := "Failed to query activity logs."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.GET_ACTIVITY_LOGS.WithDescription(errorMsg), err)
	}
	defer cursor.Close(ctx)

	logs := []model.ActivityLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		errorMsg := "Failed to decode activity logs."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.GET_ACTIVITY_LOGS.WithDescription(errorMsg), err)
	}
	for i := range logs {
		logs[i].CreatedAt = logs[i].CreatedAt.UTC()
	}
	return logs, nil
}
