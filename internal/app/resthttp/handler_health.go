package resthttp

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const healthTimeout = 2 * time.Second

type healthResp struct {
	OK bool `json:"ok"`
}

// health проверяет доступность хранилища записей.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.Logger.Warn("record store ping failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, healthResp{OK: false})
		return
	}
	writeJSON(w, http.StatusOK, healthResp{OK: true})
}
