package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cookfarm/pantry-service/internal/events"
	"github.com/cookfarm/pantry-service/internal/service"
)

// ExpiryWorker periodically evaluates the expired view and publishes a summary event.
type ExpiryWorker struct {
	calendar   *service.CalendarView
	dispatcher events.Dispatcher
	logger     *zap.Logger
	interval   time.Duration
}

// NewExpiryWorker constructs the worker.
func NewExpiryWorker(calendar *service.CalendarView, dispatcher events.Dispatcher, logger *zap.Logger, interval time.Duration) *ExpiryWorker {
	return &ExpiryWorker{calendar: calendar, dispatcher: dispatcher, logger: logger, interval: interval}
}

// Start runs the sweep on a ticker until ctx is cancelled. A non-positive
// interval disables the worker. The returned channel closes when the loop exits.
func (w *ExpiryWorker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if w.interval <= 0 {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.logger.Info("expiry worker started", zap.Duration("interval", w.interval))
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("expiry worker stopped")
				return
			case <-ticker.C:
				if _, err := w.Sweep(ctx); err != nil {
					w.logger.Error("expiry sweep failed", zap.Error(err))
				}
			}
		}
	}()
	return done
}

// Sweep evaluates the expired view once and returns the number of expired ingredients.
func (w *ExpiryWorker) Sweep(ctx context.Context) (int, error) {
	expired, err := w.calendar.ExpiredIngredients(ctx)
	if err != nil {
		return 0, err
	}
	if w.dispatcher != nil {
		_ = w.dispatcher.Publish(ctx, events.Event{
			Type: events.EventIngredientsExpired,
			Payload: events.IngredientsExpiredPayload{
				AsOf:  w.calendar.Today(),
				Count: len(expired),
			},
		})
	}
	return len(expired), nil
}
