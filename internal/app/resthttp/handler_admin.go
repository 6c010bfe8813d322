package resthttp

import (
	"encoding/json"
	"net/http"

	"github.com/sir_venger/filekeeper/pkg/httperrors"
)

type addStoragesRequest struct {
	Storages []string `json:"storages"`
}

type storagesResp struct {
	Storages []string `json:"storages"`
}

// adminConfig отдаёт действующую конфигурацию (секреты S3 в JSON не попадают).
func (s *Server) adminConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Cfg)
}

// addStorages добавляет storage-узлы в маршрутизатор без рестарта.
func (s *Server) addStorages(w http.ResponseWriter, r *http.Request) {
	if s.router == nil {
		httperrors.WriteMessages(w, http.StatusConflict, "Storages are only used by the node backend.")
		return
	}

	var payload addStoragesRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httperrors.WriteMessages(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	if len(payload.Storages) == 0 {
		httperrors.WriteMessages(w, http.StatusUnprocessableEntity, "The storages field is required.")
		return
	}

	s.router.Add(payload.Storages...)
	writeJSON(w, http.StatusOK, storagesResp{Storages: s.router.Storages()})
}
