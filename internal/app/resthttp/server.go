package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sir_venger/filekeeper/internal/blob"
	"github.com/sir_venger/filekeeper/internal/config"
	"github.com/sir_venger/filekeeper/internal/repo/meta"
	"github.com/sir_venger/filekeeper/internal/usecase/filesvc"
	"github.com/sir_venger/filekeeper/pkg/httperrors"
	"github.com/sir_venger/filekeeper/pkg/storageclient"
)

// multipart-части до этого размера держатся в памяти, остальное уходит во временные файлы
const multipartMemory = 8 << 20

type Server struct {
	FilesService filesvc.Service
	Cfg          *config.Config
	Logger       *slog.Logger

	store  meta.Store
	router *blob.Router
}

// NewServer конструктор
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (http.Handler, *Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, err := meta.Open(ctx, cfg.MetaDSN, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open record store: %w", err)
	}

	blobs, router, err := buildBlobStorage(cfg)
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("open blob storage: %w", err)
	}

	srv := &Server{
		FilesService: filesvc.New(filesvc.Deps{
			MetaStorage: store,
			BlobStorage: blobs,
			KeyPrefix:   cfg.Blob.KeyPrefix,
			Logger:      logger,
		}),
		Cfg:    cfg,
		Logger: logger,
		store:  store,
		router: router,
	}

	return srv.routes(), srv, nil
}

// Close освобождает хранилище записей.
func (s *Server) Close() error {
	return s.store.Close()
}

func (s *Server) routes() http.Handler {
	rtr := chi.NewRouter()
	rtr.Use(middleware.RequestID)
	rtr.Use(middleware.RealIP)
	rtr.Use(requestLogger(s.Logger))
	rtr.Use(metricsMiddleware)
	rtr.Use(middleware.Recoverer)

	rtr.Route("/files", func(r chi.Router) {
		r.Get("/", s.listFiles)
		r.Post("/", s.postFiles)
		r.Get("/{id}", s.getFile)
		r.Get("/{id}/download", s.downloadFile)
		r.Put("/{id}", s.putFile)
		r.Patch("/{id}", s.putFile)
		r.Delete("/{id}", s.deleteFile)
	})

	rtr.Get("/health", s.health)
	rtr.Handle("/metrics", promhttp.Handler())
	rtr.Get("/admin/config", s.adminConfig)
	rtr.Post("/admin/storages", s.addStorages)

	return rtr
}

// buildBlobStorage собирает бэкенд блоб-хранилища по конфигурации.
// Router возвращается только для бэкенда node.
func buildBlobStorage(cfg *config.Config) (filesvc.BlobStorage, *blob.Router, error) {
	switch cfg.Blob.Backend {
	case config.BackendLocal:
		l, err := blob.NewLocal(cfg.Blob.DataDir)
		return l, nil, err
	case config.BackendNode:
		r := blob.NewRouter(blob.NewHealthAdapter(cfg.Blob.MaxNodeLoadBytes))
		r.Set(cfg.Storages)
		return blob.NewNode(storageclient.New(), r), r, nil
	case config.BackendS3:
		o := cfg.Blob.S3
		client := blob.NewS3Client(blob.S3Options{
			Region:          o.Region,
			Endpoint:        o.Endpoint,
			AccessKeyID:     o.AccessKeyID,
			SecretAccessKey: o.SecretAccessKey,
			PathStyle:       o.PathStyle,
		})
		return blob.NewS3(client, o.Bucket, o.Prefix), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown blob backend %q", cfg.Blob.Backend)
	}
}

// fail пишет ошибку клиенту; причины 5xx остаются только в логе.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if httperrors.Status(err) >= http.StatusInternalServerError {
		s.Logger.Error("request failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	httperrors.Write(w, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
