package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
)

type runnerStub struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (r *runnerStub) Run(ctx context.Context) (usecase.ReconcileResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return usecase.ReconcileResult{Sellers: 1, Products: 2}, r.err
}

func (r *runnerStub) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type logStub struct {
	mu     sync.Mutex
	infos  int
	errors int
}

func (l *logStub) Infof(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos++
}

func (l *logStub) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors++
}

func (l *logStub) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errors
}

func TestReconciler_RunsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &runnerStub{}
	w := NewReconciler(r, 5*time.Millisecond, &logStub{})

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return r.count() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop")
	}
}

func TestReconciler_LogsFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &runnerStub{err: errors.New("db down")}
	l := &logStub{}
	w := NewReconciler(r, 5*time.Millisecond, l)
	go w.Start(ctx)

	assert.Eventually(t, func() bool { return l.errorCount() >= 1 }, time.Second, 5*time.Millisecond)
}

func TestReconciler_DisabledReturnsImmediately(t *testing.T) {
	r := &runnerStub{}
	w := NewReconciler(r, 0, &logStub{})

	w.Start(context.Background())
	assert.Equal(t, 0, r.count())
}
