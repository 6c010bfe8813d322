package filesvc

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cleanupFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "filekeeper_cleanup_failures_total",
	Help: "Best-effort blob deletions that failed and left an orphaned object.",
}, []string{"operation"})

// discard удаляет объекты, которые не должны остаться в хранилище. Ошибка не
// возвращается: она уходит в лог и метрику, основной ответ не меняется.
func (s *Files) discard(ctx context.Context, operation string, keys ...string) {
	// Клиент мог уже отключиться, но уборка должна дойти до конца.
	ctx = context.WithoutCancel(ctx)

	if err := s.BlobStorage.Delete(ctx, keys...); err != nil {
		cleanupFailures.WithLabelValues(operation).Inc()
		s.Logger.Warn("blob cleanup failed",
			slog.String("operation", operation),
			slog.Any("keys", keys),
			slog.String("error", err.Error()),
		)
	}
}
