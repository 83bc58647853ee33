package services

import (
	"testing"
	"time"

	"github.com/mockinsight/interview-service/internal/interview"
	"github.com/mockinsight/interview-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistry_AddGetRemove(t *testing.T) {
	r := NewSessionRegistry(time.Hour)
	flow := interview.NewFlow(validator.New())

	id, createdAt := r.Add(flow)
	assert.NotEmpty(t, id)

	got, gotCreated, err := r.Get(id)
	require.NoError(t, err)
	assert.Same(t, flow, got)
	assert.Equal(t, createdAt, gotCreated)
	assert.Equal(t, 1, r.Len())

	removed, err := r.Remove(id)
	require.NoError(t, err)
	assert.Same(t, flow, removed)

	_, _, err = r.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Remove(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRegistry_ExpireUsesLastAccess(t *testing.T) {
	r := NewSessionRegistry(time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	stale, _ := r.Add(interview.NewFlow(validator.New()))
	active, _ := r.Add(interview.NewFlow(validator.New()))

	now = now.Add(50 * time.Second)
	_, _, err := r.Get(active)
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	expired := r.Expire()

	require.Len(t, expired, 1)
	assert.Equal(t, stale, expired[0].ID)
	assert.Equal(t, 1, r.Len())
}

func TestSessionRegistry_Drain(t *testing.T) {
	r := NewSessionRegistry(time.Hour)
	r.Add(interview.NewFlow(validator.New()))
	r.Add(interview.NewFlow(validator.New()))

	assert.Len(t, r.Drain(), 2)
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Drain())
}
