package platform

import "context"

// Select runs query and hands the outcome to exactly one of the callbacks.
// A nil callback is skipped.
func Select(ctx context.Context, exec Executor, query string, args []any, onSuccess func([]Row), onFailure func(error)) {
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		if onFailure != nil {
			onFailure(err)
		}
		return
	}
	if onSuccess != nil {
		onSuccess(rows)
	}
}

// SelectAsync runs Select on its own goroutine. The returned channel is closed once the
// callback has returned.
func SelectAsync(ctx context.Context, exec Executor, query string, args []any, onSuccess func([]Row), onFailure func(error)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		Select(ctx, exec, query, args, onSuccess, onFailure)
	}()
	return done
}
