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

package workers

import (
	"sync"

	"github.com/wso2/member-registry-service/internal/activity_log/model"
	"github.com/wso2/member-registry-service/internal/activity_log/store"
	"github.com/wso2/member-registry-service/internal/system/log"
)

type activityLogWorker struct {
	queue chan model.ActivityLog
	store store.ActivityLogStoreInterface
	done  chan struct{}
}

var (
	workerMu sync.RWMutex
	worker   *activityLogWorker
)

// StartActivityLogWorker starts the goroutine that drains queued activity log entries into the store.
// Calling it while a worker is running is a no-op.
func StartActivityLogWorker(logStore store.ActivityLogStoreInterface, queueSize int) {

	workerMu.Lock()
	defer workerMu.Unlock()
	if worker != nil {
		return
	}
	if queueSize <= 0 {
		queueSize = 1
	}

	w := &activityLogWorker{
		queue: make(chan model.ActivityLog, queueSize),
		store: logStore,
		done:  make(chan struct{}),
	}
	go func() {
		defer close(w.done)
		for entry := range w.queue {
			PersistActivityLog(w.store, entry)
		}
	}()
	worker = w
}

// EnqueueActivityLog hands an entry to the worker without blocking.
// Returns false when no worker is running or its queue is full.
func EnqueueActivityLog(entry model.ActivityLog) bool {

	workerMu.RLock()
	defer workerMu.RUnlock()
	if worker == nil {
		return false
	}

	select {
	case worker.queue <- entry:
		return true
	default:
		log.GetLogger().Warn("Activity log queue is full. Writing entry directly.",
			log.String("action", entry.Action))
		return false
	}
}

// StopActivityLogWorker closes the queue and waits until every queued entry has been written.
func StopActivityLogWorker() {

	workerMu.Lock()
	w := worker
	worker = nil
	workerMu.Unlock()

	if w == nil {
		return
	}
	close(w.queue)
	<-w.done
}

// PersistActivityLog writes an entry and logs failures instead of returning them.
func PersistActivityLog(logStore store.ActivityLogStoreInterface, entry model.ActivityLog) {

	if err := logStore.AddActivityLog(entry); err != nil {
		log.GetLogger().Error("Failed to persist activity log", log.String("action", entry.Action),
			log.Error(err))
	}
}
