package release

import (
	"context"
	"time"

	"github.com/boristhebrave/upmprep/internal/filelock"
	"github.com/boristhebrave/upmprep/internal/retry"
	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

// Locker takes an exclusive lock on a directory and returns its release
// function. It fails with upmprep.ErrLocked when another run holds the lock.
type Locker func(ctx context.Context, dir string) (release func() error, err error)

// DirectoryLock is the Locker backed by a lock file beside the directory.
func DirectoryLock(_ context.Context, dir string) (func() error, error) {
	lock, err := filelock.AcquireDirectory(dir)
	if err != nil {
		return nil, err
	}
	return lock.Release, nil
}

// NoLock is a Locker that does nothing, for filesystems that are not on disk.
func NoLock(context.Context, string) (func() error, error) {
	return func() error { return nil }, nil
}

// WaitingLock wraps locker so that a lock held by another run is retried
// up to attempts times with exponential backoff before giving up.
func WaitingLock(locker Locker, attempts int, logger upmprep.Logger) Locker {
	if attempts == 0 {
		return locker
	}
	executor := retry.NewExecutor(retry.IsLocked, retry.NewExponentialBackoff(attempts)).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Info("Waiting %v for lock (retry %d): %v", delay.Round(time.Millisecond), attempt+1, err)
		})

	return func(ctx context.Context, dir string) (func() error, error) {
		var unlock func() error
		err := executor.Execute(ctx, func(ctx context.Context) error {
			var err error
			unlock, err = locker(ctx, dir)
			return err
		})
		if err != nil {
			return nil, err
		}
		return unlock, nil
	}
}
