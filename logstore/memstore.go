/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package logstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore keeps records in process memory. It is used when no bucket is
// configured and by tests.
type MemStore struct {
	mu      sync.Mutex
	records []Record
	now     func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{now: time.Now}
}

func (m *MemStore) Save(ctx context.Context, rec *Record) (string, error) {
	if err := rec.validate(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec.ID = uuid.NewString()
	rec.CreatedAt = m.now().UTC()
	m.records = append(m.records, *rec)

	return rec.ID, nil
}

func (m *MemStore) List(ctx context.Context) ([]Record, error) {
	m.mu.Lock()
	// reversed so records saved within the same instant stay newest first
	ret := make([]Record, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0; i-- {
		ret = append(ret, m.records[i])
	}
	m.mu.Unlock()

	sortNewestFirst(ret)
	return ret, nil
}

func sortNewestFirst(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
}
