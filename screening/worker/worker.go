package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/talentrail/screening/pkg/logx"
	"github.com/talentrail/screening/screening"
	"github.com/talentrail/screening/screening/screeningsrv"
)

// ScreeningWorker consumes scoring tasks and runs the stalled-job sweep
type ScreeningWorker struct {
	service      *screeningsrv.Service
	queue        screening.TaskQueue
	workers      int
	stalledAfter time.Duration
	sweepEvery   time.Duration
}

func NewScreeningWorker(service *screeningsrv.Service, queue screening.TaskQueue, workers int) *ScreeningWorker {
	return &ScreeningWorker{
		service:      service,
		queue:        queue,
		workers:      workers,
		stalledAfter: 15 * time.Minute,
		sweepEvery:   time.Minute,
	}
}

func (w *ScreeningWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d screening workers", w.workers)

	// Start stalled-job sweep
	go w.sweepStalledJobs(ctx)

	// Start worker pool
	for i := 0; i < w.workers; i++ {
		go w.processTasks(ctx, i)
	}
}

func (w *ScreeningWorker) processTasks(ctx context.Context, workerID int) {
	logx.Infof("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Worker %d stopping", workerID)
			return
		default:
			// Dequeue with 5 second timeout
			data, err := w.queue.Dequeue(ctx, 5*time.Second)
			if err != nil {
				logx.Errorf("Worker %d dequeue error: %v", workerID, err)
				continue
			}

			// Queue timeout, no tasks available
			if len(data) == 0 {
				continue
			}

			var task screening.ScoringTask
			if err := json.Unmarshal(data, &task); err != nil {
				logx.Errorf("Worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
				continue
			}

			logx.Infof("Worker %d processing task: Screening=%s, File=%s",
				workerID, task.ScreeningJobID, task.FileName)
			if err := w.service.ProcessScoringTask(ctx, &task); err != nil {
				logx.Errorf("Worker %d task failed: %v", workerID, err)
			}
		}
	}
}

func (w *ScreeningWorker) sweepStalledJobs(ctx context.Context) {
	ticker := time.NewTicker(w.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.service.FailStalledJobs(ctx, w.stalledAfter); err != nil {
				logx.Errorf("Stalled-job sweep failed: %v", err)
			}
		}
	}
}
