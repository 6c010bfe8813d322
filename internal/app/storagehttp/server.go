package storagehttp

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Раскладка каталога данных стораджа.
const (
	objectsDirName  = "objects"
	metaDirName     = "meta"
	incomingDirName = ".incoming"
	metaFileSuffix  = ".json"
	incomingSuffix  = ".part"
)

// Server serves the storage node HTTP API on top of the local filesystem.
type Server struct {
	dataDir string
	logger  *slog.Logger
}

// New создаёт HTTP-обработчик стоража поверх каталога с данными.
func New(dataDir string, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{
		dataDir: dataDir,
		logger:  logger,
	}

	return srv.routes()
}

// routes регистрирует обработчики для объектов, здоровья и GC.
func (a *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/objects", func(or chi.Router) {
		or.Put("/*", a.insertObject)
		or.Get("/*", a.fetchObject)
		or.Head("/*", a.inspectObject)
		or.Delete("/*", a.deleteObject)
	})

	r.Get("/health", a.health)
	r.Post("/admin/gc", a.gcOnce)

	return r
}

func (a *Server) objectsDir() string  { return filepath.Join(a.dataDir, objectsDirName) }
func (a *Server) incomingDir() string { return filepath.Join(a.dataDir, incomingDirName) }

// internalError пишет 500 и логирует причину.
func (a *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error("storage request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
