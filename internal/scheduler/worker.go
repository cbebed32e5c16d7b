package scheduler

import (
	"context"
	"fmt"
	"time"

	"pos_admin_backend/internal/reports/service"
	"pos_admin_backend/platform/config"
	"pos_admin_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	reports *service.Service
	log     *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, reports *service.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		reports: reports,
		log:     log,
	}

	mux.HandleFunc(TaskDailySalesReport, w.handleDailySalesReport)

	return w, nil
}

func (w *Worker) handleDailySalesReport(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDailySalesReportPayload(task)
	if err != nil {
		return err
	}

	day, err := time.ParseInLocation(dateLayout, payload.Date, time.Local)
	if err != nil {
		return err
	}

	fileKey, err := w.reports.GenerateDailySalesReport(ctx, day)
	if err != nil {
		return err
	}

	w.log.Info("daily sales report task completed", "date", payload.Date, "fileKey", fileKey)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
