package realtime

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// ErrOffloaderClosed is returned by Do after Close.
var ErrOffloaderClosed = errors.New("offloader closed")

// Offloader bounds how many storage calls realtime handlers run at once.
// Do waits for a slot and for the result, so only the calling connection
// blocks on its round-trip.
type Offloader struct {
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
}

func NewOffloader(workers int64) *Offloader {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Offloader{sem: semaphore.NewWeighted(workers), ctx: ctx, cancel: cancel}
}

// Do runs fn once a slot is free. fn's context is cancelled when either ctx
// or the offloader is done. A panic in fn is returned as an error.
func (o *Offloader) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if o.ctx.Err() != nil {
		return ErrOffloaderClosed
	}
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	release := context.AfterFunc(o.ctx, stop)
	defer release()

	if err := o.sem.Acquire(ctx, 1); err != nil {
		if o.ctx.Err() != nil {
			return ErrOffloaderClosed
		}
		return err
	}
	defer o.sem.Release(1)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("offloaded call panicked: %v", r)
		}
	}()
	return fn(ctx)
}

// Close cancels in-flight calls and rejects new ones.
func (o *Offloader) Close() {
	o.cancel()
}

// Offload runs fn through o and returns its value.
func Offload[T any](ctx context.Context, o *Offloader, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := o.Do(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		out = v
		return err
	})
	return out, err
}
