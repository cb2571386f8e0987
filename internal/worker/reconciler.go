package worker

import (
	"context"
	"time"

	"marketplace/internal/usecase"
)

type ReconcileRunner interface {
	Run(ctx context.Context) (usecase.ReconcileResult, error)
}

// echo.Logger で満たせる
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Reconciler は interval ごとに集計値の数え直しを回す
type Reconciler struct {
	runner   ReconcileRunner
	interval time.Duration
	log      Logger
}

func NewReconciler(runner ReconcileRunner, interval time.Duration, log Logger) *Reconciler {
	return &Reconciler{runner: runner, interval: interval, log: log}
}

// ctx が終わるまでブロックする。interval が 0 以下なら何もしない
func (w *Reconciler) Start(ctx context.Context) {
	if w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Infof("reconciler started (interval=%s)", w.interval)
	for {
		select {
		case <-ctx.Done():
			w.log.Infof("reconciler stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Reconciler) runOnce(ctx context.Context) {
	start := time.Now()
	res, err := w.runner.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.log.Errorf("reconcile failed: %v", err)
		return
	}
	w.log.Infof("reconciled sellers=%d products=%d in %s", res.Sellers, res.Products, time.Since(start))
}
