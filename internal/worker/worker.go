// Package worker drains the Redis job queue: orphaned screenshot cleanup and contact message delivery.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tournamentpro/backend/pkg/queue"
)

// Jobs is the queue the processor drains.
type Jobs interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*queue.Job, error)
	Retry(ctx context.Context, job *queue.Job) error
}

// ScreenshotDeleter removes objects from the screenshot bucket.
type ScreenshotDeleter interface {
	Bucket() string
	DeleteScreenshot(ctx context.Context, key string) error
}

// Processor executes queued jobs.
type Processor struct {
	jobs    Jobs
	files   ScreenshotDeleter
	logger  *zap.Logger
	wait    time.Duration
	backoff time.Duration
}

// NewProcessor creates a job processor.
func NewProcessor(jobs Jobs, files ScreenshotDeleter, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{jobs: jobs, files: files, logger: logger, wait: 5 * time.Second, backoff: queue.RetryBackoff}
}

// Process executes one job.
func (p *Processor) Process(ctx context.Context, job *queue.Job) error {
	switch job.Type {
	case queue.JobTypeScreenshotCleanup:
		var payload queue.ScreenshotCleanupPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("unmarshal payload: %w", err)
		}
		return p.cleanupScreenshot(ctx, payload)
	case queue.JobTypeContactMessage:
		var payload queue.ContactMessagePayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("unmarshal payload: %w", err)
		}
		p.logger.Info("contact message",
			zap.String("name", payload.Name),
			zap.String("email", payload.Email),
			zap.String("phone", payload.Phone),
			zap.String("subject", payload.Subject),
			zap.String("message", payload.Message),
		)
		return nil
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func (p *Processor) cleanupScreenshot(ctx context.Context, payload queue.ScreenshotCleanupPayload) error {
	if payload.Key == "" {
		return fmt.Errorf("screenshot cleanup without key")
	}
	if payload.Bucket != "" && payload.Bucket != p.files.Bucket() {
		p.logger.Warn("screenshot cleanup for foreign bucket skipped",
			zap.String("bucket", payload.Bucket), zap.String("key", payload.Key))
		return nil
	}
	if err := p.files.DeleteScreenshot(ctx, payload.Key); err != nil {
		return fmt.Errorf("delete screenshot: %w", err)
	}
	p.logger.Info("orphaned screenshot removed",
		zap.String("key", payload.Key), zap.String("game", payload.Game), zap.String("reason", payload.Reason))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error. It returns when ctx is done.
func (p *Processor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("worker stopping")
			return
		default:
		}

		job, err := p.jobs.Dequeue(ctx, p.wait)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			p.logger.Warn("dequeue error", zap.Error(err))
			p.sleep(ctx)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt), zap.Error(err))
			if reErr := p.jobs.Retry(context.WithoutCancel(ctx), job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			p.sleep(ctx)
		}
	}
}

func (p *Processor) sleep(ctx context.Context) {
	if p.backoff <= 0 {
		return
	}
	t := time.NewTimer(p.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
