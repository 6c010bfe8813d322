package storagehttp

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const manualGCTTL = 24 * time.Hour

// gcOnce вручную запускает сбор брошенных загрузок.
func (a *Server) gcOnce(w http.ResponseWriter, r *http.Request) {
	removed, err := sweepOnce(a.dataDir, manualGCTTL)
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	a.logger.Info("manual gc finished", slog.Int("removed", removed))
	w.WriteHeader(http.StatusNoContent)
}

// StartGC стартует периодическую очистку каталога.
func StartGC(root string, ttl time.Duration, every time.Duration, logger *slog.Logger) func() {
	if every <= 0 || ttl <= 0 {
		return func() {}
	}
	if logger == nil {
		logger = slog.Default()
	}

	ticker := time.NewTicker(every)
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		for {
			select {
			case <-ticker.C:
				removed, err := sweepOnce(root, ttl)
				if err != nil {
					logger.Warn("gc sweep failed", slog.String("error", err.Error()))
					continue
				}
				if removed > 0 {
					logger.Info("gc sweep finished", slog.Int("removed", removed))
				}
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stop)
		})
	}
}

// sweepOnce удаляет из .incoming временные файлы загрузок старше ttl
// (остаются после обрыва соединения или падения процесса).
func sweepOnce(root string, ttl time.Duration) (int, error) {
	now := time.Now()
	entries, err := os.ReadDir(filepath.Join(root, incomingDirName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), incomingSuffix) {
			continue
		}

		fi, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(fi.ModTime()) < ttl {
			continue
		}

		if err := os.Remove(filepath.Join(root, incomingDirName, e.Name())); err == nil {
			removed++
		}
	}

	return removed, nil
}
