package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

type mockOperation struct {
	invocations int
	failUntil   int // return ErrLocked while invocations < failUntil
	fatalErr    error
}

func (m *mockOperation) execute(ctx context.Context) error {
	m.invocations++
	if m.invocations < m.failUntil {
		return fmt.Errorf("upm: %w", upmprep.ErrLocked)
	}
	if m.invocations == m.failUntil && m.fatalErr != nil {
		return m.fatalErr
	}
	return nil
}

func fastBackoff(attempts int) *ExponentialBackoff {
	return NewExponentialBackoff(attempts, WithInitialDelay(time.Millisecond), WithJitter(0))
}

func TestIsLocked(t *testing.T) {
	assert.True(t, IsLocked(upmprep.ErrLocked))
	assert.True(t, IsLocked(fmt.Errorf("dir: %w", upmprep.ErrLocked)))
	assert.False(t, IsLocked(errors.New("permission denied")))
	assert.False(t, IsLocked(nil))
}

func TestExecutor_Execute(t *testing.T) {
	fatal := errors.New("permission denied")

	tests := []struct {
		name        string
		attempts    int
		op          *mockOperation
		wantErr     error
		invocations int
	}{
		{"success on first attempt", 3, &mockOperation{failUntil: 1}, nil, 1},
		{"success after retries", 5, &mockOperation{failUntil: 4}, nil, 4},
		{"fatal error is not retried", 5, &mockOperation{failUntil: 1, fatalErr: fatal}, fatal, 1},
		{"fatal error after transient ones", 5, &mockOperation{failUntil: 3, fatalErr: fatal}, fatal, 3},
		{"attempts exhausted", 2, &mockOperation{failUntil: 10}, upmprep.ErrLocked, 3},
		{"zero attempts never retries", 0, &mockOperation{failUntil: 10}, upmprep.ErrLocked, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := NewExecutor(IsLocked, fastBackoff(tt.attempts))
			err := executor.Execute(context.Background(), tt.op.execute)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.invocations, tt.op.invocations)
		})
	}
}

func TestExecutor_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	op := &mockOperation{failUntil: 100}

	executor := NewExecutor(IsLocked, NewExponentialBackoff(-1, WithInitialDelay(time.Hour))).
		WithOnRetry(func(int, error, time.Duration) { cancel() })

	err := executor.Execute(ctx, op.execute)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, op.invocations)
}

func TestExecutor_WithOnRetry(t *testing.T) {
	var delays []time.Duration
	base := NewExecutor(IsLocked, fastBackoff(5))
	executor := base.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		assert.ErrorIs(t, err, upmprep.ErrLocked)
		delays = append(delays, delay)
	})

	require.NoError(t, executor.Execute(context.Background(), (&mockOperation{failUntil: 3}).execute))
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, delays)
	assert.Nil(t, base.onRetry, "receiver is not modified")
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, fastBackoff(1)) })
	assert.Panics(t, func() { NewExecutor(IsLocked, nil) })
}

func TestExponentialBackoff_Defaults(t *testing.T) {
	b := NewExponentialBackoff(3)
	assert.Equal(t, 3, b.MaxAttempts())
	assert.Equal(t, 250*time.Millisecond, b.InitialDelay())
	assert.Equal(t, 5*time.Second, b.MaxDelay())
}

func TestExponentialBackoff_NextDelay(t *testing.T) {
	b := NewExponentialBackoff(10,
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(time.Second),
		WithMultiplier(3),
		WithJitter(0),
	)

	assert.Equal(t, 100*time.Millisecond, b.NextDelay(0))
	assert.Equal(t, 300*time.Millisecond, b.NextDelay(1))
	assert.Equal(t, 900*time.Millisecond, b.NextDelay(2))
	assert.Equal(t, time.Second, b.NextDelay(3), "capped at max delay")
}

func TestExponentialBackoff_Jitter(t *testing.T) {
	tests := []struct {
		random float64
		want   time.Duration
	}{
		{0.5, time.Second},
		{0.0, 800 * time.Millisecond},
		{0.75, 1100 * time.Millisecond},
	}

	for _, tt := range tests {
		b := NewExponentialBackoff(1,
			WithInitialDelay(time.Second),
			WithJitter(0.2),
			WithJitterFunc(func() float64 { return tt.random }),
		)
		assert.Equal(t, tt.want, b.NextDelay(0), "random=%v", tt.random)
	}
}
