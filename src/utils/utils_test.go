package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"corona-observer/src/logger"

	"github.com/stretchr/testify/assert"
)

func TestRefreshInterval(t *testing.T) {
	tests := []struct {
		seconds int
		want    time.Duration
	}{
		{0, 0},
		{-5, 0},
		{10, MinRefreshInterval},
		{60, time.Minute},
		{3600, time.Hour},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RefreshInterval(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestRefreshScheduler_DisabledReturns(t *testing.T) {
	rs := NewRefreshScheduler(0, logger.NewLogger("SchedulerTest"))

	done := make(chan struct{})
	go func() {
		rs.Run(context.Background(), func(context.Context) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return for a zero interval")
	}
}

func TestRefreshScheduler_RunsUntilCancelled(t *testing.T) {
	rs := NewRefreshScheduler(5*time.Millisecond, logger.NewLogger("SchedulerTest"))
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	done := make(chan struct{})
	go func() {
		rs.Run(ctx, func(context.Context) error {
			// failures do not stop the loop
			if calls.Add(1) == 1 {
				return errors.New("offline")
			}
			return nil
		})
		close(done)
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
