package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunOnce(t *testing.T) {
	s := NewScheduler()

	var first, second int
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		first++
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		second++
		return errors.New("sweep failed")
	})

	s.RunOnce(context.Background())

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second, "a failing job does not stop the others")

	s.RunOnce(context.Background())
	assert.Equal(t, 2, first)
}

func TestStartRunsJobsImmediately(t *testing.T) {
	s := NewScheduler()

	ran := make(chan struct{})
	s.AddJob("immediate", time.Hour, func(ctx context.Context) error {
		close(ran)
		return nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
}
