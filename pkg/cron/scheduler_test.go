package cron

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBatchStore struct {
	mu      sync.Mutex
	cutoffs []time.Time
	deleted int64
}

func (r *recordingBatchStore) DeleteBatchesOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cutoffs = append(r.cutoffs, cutoff)
	return r.deleted, nil
}

func TestSweepCutoffHonorsRetentionWindow(t *testing.T) {
	store := &recordingBatchStore{deleted: 5}
	s := NewScheduler(store, 90, slog.Default())

	before := time.Now().AddDate(0, 0, -90)
	s.sweepExpiredBatches()
	after := time.Now().AddDate(0, 0, -90)

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.cutoffs, 1)
	cutoff := store.cutoffs[0]
	assert.False(t, cutoff.Before(before))
	assert.False(t, cutoff.After(after))
}

func TestStartRegistersSweepJob(t *testing.T) {
	store := &recordingBatchStore{}
	s := NewScheduler(store, 90, slog.Default())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Len(t, s.cron.Entries(), 1)
}
