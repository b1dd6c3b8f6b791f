package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// ErrQueueStopped is returned for jobs submitted after Stop.
var ErrQueueStopped = errors.New("download queue is stopped")

// DownloadJob представляет задачу загрузки
type DownloadJob struct {
	ID        string
	VideoURL  string
	Label     string
	CreatedAt time.Time
	Status    JobStatus
}

// JobStatus представляет статус задачи
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
)

// QueueStats is a point-in-time snapshot of the queue.
type QueueStats struct {
	Workers    int
	Pending    int
	Processing int
}

// DownloadQueue bounds how many engine runs execute at once. Submitters
// block until a slot frees up, so a slow retrieval never blocks updates
// from other chats, only other retrievals.
type DownloadQueue struct {
	workers int
	sem     *semaphore.Weighted

	activeJobs    map[string]*DownloadJob
	activeJobsMux sync.RWMutex

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	stopMux sync.Mutex
}

// NewDownloadQueue создает новую очередь загрузок
func NewDownloadQueue(workers int) *DownloadQueue {
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &DownloadQueue{
		workers:    workers,
		sem:        semaphore.NewWeighted(int64(workers)),
		activeJobs: make(map[string]*DownloadJob),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Stop rejects new jobs and waits for running ones to return.
func (q *DownloadQueue) Stop() {
	log.Info("Stopping download queue")
	q.stopMux.Lock()
	q.cancel()
	q.stopMux.Unlock()
	q.wg.Wait()
	log.Info("Download queue stopped")
}

// Do runs fn once a worker slot is available. The context passed to fn is
// cancelled when either ctx or the queue is stopped.
func (q *DownloadQueue) Do(ctx context.Context, videoURL, label string, fn func(ctx context.Context) error) error {
	q.stopMux.Lock()
	if q.ctx.Err() != nil {
		q.stopMux.Unlock()
		return ErrQueueStopped
	}
	q.wg.Add(1)
	q.stopMux.Unlock()
	defer q.wg.Done()

	job := &DownloadJob{
		ID:        uuid.NewString(),
		VideoURL:  videoURL,
		Label:     label,
		CreatedAt: time.Now(),
		Status:    JobStatusPending,
	}
	logger := log.WithFields(log.Fields{
		"job_id": job.ID,
		"url":    videoURL,
		"job":    label,
	})

	q.track(job)
	defer q.untrack(job.ID)

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(q.ctx, cancel)
	defer stop()

	logger.Debug("Job queued")
	if err := q.sem.Acquire(jobCtx, 1); err != nil {
		if q.ctx.Err() != nil {
			return ErrQueueStopped
		}
		return err
	}
	defer q.sem.Release(1)

	q.setStatus(job.ID, JobStatusProcessing)
	logger.WithField("waited", time.Since(job.CreatedAt).Round(time.Millisecond)).Info("Job started")

	err := fn(jobCtx)
	if err != nil {
		logger.WithError(err).Warn("Job failed")
		return err
	}

	logger.WithField("took", time.Since(job.CreatedAt).Round(time.Millisecond)).Info("Job completed")
	return nil
}

func (q *DownloadQueue) track(job *DownloadJob) {
	q.activeJobsMux.Lock()
	defer q.activeJobsMux.Unlock()
	q.activeJobs[job.ID] = job
}

func (q *DownloadQueue) untrack(id string) {
	q.activeJobsMux.Lock()
	defer q.activeJobsMux.Unlock()
	delete(q.activeJobs, id)
}

func (q *DownloadQueue) setStatus(id string, status JobStatus) {
	q.activeJobsMux.Lock()
	defer q.activeJobsMux.Unlock()
	if job, ok := q.activeJobs[id]; ok {
		job.Status = status
	}
}

// GetQueueStats возвращает статистику очереди
func (q *DownloadQueue) GetQueueStats() QueueStats {
	q.activeJobsMux.RLock()
	defer q.activeJobsMux.RUnlock()

	stats := QueueStats{Workers: q.workers}
	for _, job := range q.activeJobs {
		switch job.Status {
		case JobStatusPending:
			stats.Pending++
		case JobStatusProcessing:
			stats.Processing++
		}
	}
	return stats
}
