package render

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/domain"
	"github.com/atl08-heightmap/internal/domain/repository"
	"github.com/atl08-heightmap/internal/pkg/errors"
	"github.com/atl08-heightmap/internal/usecase/dto"
	"github.com/atl08-heightmap/internal/worker"
)

const (
	defaultBatchSize  = 10
	defaultPollPeriod = time.Second
	errorBackoff      = time.Second
	retryBackoff      = 200 * time.Millisecond
)

// MapRenderer renders a request and stores the result.
type MapRenderer interface {
	RenderAndStore(ctx context.Context, req *dto.RenderMapRequest) (*dto.RenderMapResponse, error)
}

// Config - параметры воркера
type Config struct {
	ConsumerGroup string
	BatchSize     int
	PollInterval  time.Duration
	MaxRetries    int
}

// RenderWorker обрабатывает задания построения карт из stream:atl08:render
type RenderWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	renderer     MapRenderer
	consumerName string
	batchSize    int
	pollInterval time.Duration
	maxRetries   int
}

// NewRenderWorker создает новый RenderWorker
func NewRenderWorker(
	streamRepo repository.StreamRepository,
	renderer MapRenderer,
	cfg Config,
	logger *zap.Logger,
) *RenderWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollPeriod
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &RenderWorker{
		BaseWorker:   worker.NewBaseWorker("map-render", cfg.ConsumerGroup, logger),
		streamRepo:   streamRepo,
		renderer:     renderer,
		consumerName: consumerName,
		batchSize:    cfg.BatchSize,
		pollInterval: cfg.PollInterval,
		maxRetries:   cfg.MaxRetries,
	}
}

// Start запускает воркер
func (w *RenderWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting RenderWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize))

	// Создаем consumer group
	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamMapRender, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		processed, err := w.ProcessBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			if !w.Wait(ctx, errorBackoff) {
				return w.exitErr(ctx)
			}
			continue
		}

		// Очередь пуста - ждём следующего опроса
		if processed == 0 && !w.Wait(ctx, w.pollInterval) {
			return w.exitErr(ctx)
		}
		if w.IsStopped() || ctx.Err() != nil {
			return w.exitErr(ctx)
		}
	}
}

func (w *RenderWorker) exitErr(ctx context.Context) error {
	if w.IsStopped() {
		w.Logger().Info("Worker stopped")
		return nil
	}
	w.Logger().Info("Context cancelled")
	return ctx.Err()
}

// ProcessBatch читает и обрабатывает пачку заданий.
// Возвращает количество прочитанных сообщений
func (w *RenderWorker) ProcessBatch(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ConsumeBatch(ctx, domain.StreamMapRender, w.ConsumerGroup(), w.consumerName, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	w.Logger().Info("Processing batch", zap.Int("message_count", len(messages)))

	for _, msg := range messages {
		done := w.handle(ctx, msg)

		if err := w.streamRepo.PublishToStream(ctx, domain.StreamMapRenderDone, done); err != nil {
			w.Logger().Error("Failed to publish done event",
				zap.String("job_id", done.JobID.String()),
				zap.Error(err))
		}

		// ACK даже при ошибке рендера - результат уже опубликован
		if err := w.streamRepo.AckMessage(ctx, domain.StreamMapRender, w.ConsumerGroup(), msg.ID); err != nil {
			w.Logger().Error("Failed to ack message", zap.String("message_id", msg.ID), zap.Error(err))
		}
	}

	return len(messages), nil
}

func (w *RenderWorker) handle(ctx context.Context, msg domain.StreamMessage) *domain.RenderMapDoneEvent {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	var event domain.RenderMapEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse message", zap.Error(err))
		return failed(&event, errors.ErrInvalidRequest.Wrap(err))
	}

	var req dto.RenderMapRequest
	if err := json.Unmarshal(event.Request, &req); err != nil {
		logger.Warn("Failed to parse render request", zap.Error(err))
		return failed(&event, errors.ErrInvalidRequest.Wrap(err))
	}

	var (
		resp *dto.RenderMapResponse
		err  error
	)
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		resp, err = w.renderer.RenderAndStore(ctx, &req)
		if err == nil || !retryable(err) || attempt == w.maxRetries {
			break
		}
		logger.Warn("Render failed, retrying", zap.Int("attempt", attempt+1), zap.Error(err))
		if !w.Wait(ctx, retryBackoff) {
			break
		}
	}
	if err != nil {
		logger.Error("Render job failed", zap.String("job_id", event.JobID.String()), zap.Error(err))
		return failed(&event, err)
	}

	logger.Info("Render job done",
		zap.String("job_id", event.JobID.String()),
		zap.String("map_id", resp.MapID),
		zap.Int("marker_count", resp.MarkerCount))

	return &domain.RenderMapDoneEvent{
		JobID:       event.JobID,
		MapID:       resp.MapID,
		MarkerCount: resp.MarkerCount,
	}
}

// retryable - только ошибки инфраструктуры, не ошибки входных данных
func retryable(err error) bool {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode >= 500
	}
	return true
}

func failed(event *domain.RenderMapEvent, err error) *domain.RenderMapDoneEvent {
	done := &domain.RenderMapDoneEvent{JobID: event.JobID, Error: err.Error()}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		done.ErrorCode = appErr.Code
	}
	return done
}
