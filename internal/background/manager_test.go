package background

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewgen/internal/config"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	return NewManager(cfg)
}

func TestManager_ExecutesSubmittedTasks(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Start(context.Background()))
	defer m.Stop(context.Background())

	var ran atomic.Int32
	done := make(chan struct{})
	m.Submit(Task{
		Name: "test-task",
		Run: func(ctx context.Context) error {
			ran.Add(1)
			close(done)
			return nil
		},
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task was not executed")
	}
	assert.Equal(t, int32(1), ran.Load())
}

func TestManager_SubmitBeforeStartIsDropped(t *testing.T) {
	m := newTestManager(t)

	m.Submit(Task{Name: "dropped", Run: func(ctx context.Context) error {
		t.Error("task should not run")
		return nil
	}})

	assert.False(t, m.IsHealthy())
}

func TestManager_DoubleStartFails(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Start(context.Background()))
	defer m.Stop(context.Background())

	assert.Error(t, m.Start(context.Background()))
	assert.True(t, m.IsHealthy())
}

func TestManager_StopIsIdempotent(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Start(context.Background()))

	require.NoError(t, m.Stop(context.Background()))
	assert.NoError(t, m.Stop(context.Background()))
	assert.False(t, m.IsHealthy())
}
