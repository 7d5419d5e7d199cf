package lock

import "context"

// LocalLocker serializes writers within one process. Unlike the redis
// locker it blocks until the lock frees or the context is done, since
// in-process waiters are cheap.
type LocalLocker struct {
	token chan struct{}
}

func NewLocalLocker() *LocalLocker {
	l := &LocalLocker{token: make(chan struct{}, 1)}
	l.token <- struct{}{}
	return l
}

func (l *LocalLocker) Acquire(ctx context.Context) error {
	select {
	case <-l.token:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *LocalLocker) Release(ctx context.Context) error {
	select {
	case l.token <- struct{}{}:
	default:
	}
	return nil
}
