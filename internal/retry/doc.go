// Package retry retries operations that fail with a transient error,
// waiting between attempts with exponential backoff.
//
// upmprep uses it to wait for a lock held by a concurrent run:
//
//	backoff := retry.NewExponentialBackoff(5)
//	executor := retry.NewExecutor(retry.IsLocked, backoff)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    lock, err = filelock.AcquireDirectory(dir)
//	    return err
//	})
//
// # Error Classification
//
// A Classifier decides which errors are worth another attempt. IsLocked
// treats upmprep.ErrLocked as transient and everything else as fatal.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. WithOnRetry returns a new
// instance rather than modifying the receiver.
package retry
