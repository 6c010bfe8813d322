package integration

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sir_venger/filekeeper/internal/config"
	"github.com/sir_venger/filekeeper/internal/models"
)

func nodeConfig(t *testing.T, storages []string) *config.Config {
	cfg := config.Default()
	cfg.MetaDSN = "badger://" + filepath.Join(t.TempDir(), "meta")
	cfg.Blob.Backend = config.BackendNode
	cfg.Storages = storages
	return cfg
}

func Test_ReportLifecycle_NodeBackend(t *testing.T) {
	rest := startREST(t, nodeConfig(t, startNodes(t, 3)))

	v1 := bytes.Repeat([]byte{0xA1, 0xB2, 0xC3, 0xD4}, 256) // 1024 B
	code, rec := sendFile(t, http.MethodPost, rest+"/files", "report.pdf", v1)
	if code != http.StatusCreated {
		t.Fatalf("create status %d", code)
	}
	if rec.FileName != "report.pdf" || rec.FileSize != 1024 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if !strings.Contains(rec.FileLocation, "/objects/") {
		t.Fatalf("location is not a node object url: %q", rec.FileLocation)
	}

	code, got := do(t, http.MethodGet, rest+"/files/"+rec.ID+"/download", nil)
	if code != http.StatusOK || sha256.Sum256(got) != sha256.Sum256(v1) {
		t.Fatalf("download %d, sha mismatch", code)
	}

	v2 := bytes.Repeat([]byte{0x42}, 2048)
	code, upd := sendFile(t, http.MethodPut, rest+"/files/"+rec.ID, "report-v2.pdf", v2)
	if code != http.StatusOK {
		t.Fatalf("update status %d", code)
	}
	if upd.ID != rec.ID || upd.FileName != "report-v2.pdf" || upd.FileSize != 2048 {
		t.Fatalf("unexpected updated record %+v", upd)
	}

	// старый объект удалён с узла
	if code, _ := do(t, http.MethodHead, rec.FileLocation, nil); code != http.StatusNotFound {
		t.Fatalf("old object still on node: HEAD %d", code)
	}

	_, got = do(t, http.MethodGet, rest+"/files/"+rec.ID+"/download", nil)
	if !bytes.Equal(got, v2) {
		t.Fatal("download after update returned old content")
	}

	if code, _ := do(t, http.MethodDelete, rest+"/files/"+rec.ID, nil); code != http.StatusNoContent {
		t.Fatalf("destroy status %d", code)
	}
	if code, _ := do(t, http.MethodGet, rest+"/files/"+rec.ID, nil); code != http.StatusNotFound {
		t.Fatalf("show after destroy %d", code)
	}
	if code, _ := do(t, http.MethodHead, upd.FileLocation, nil); code != http.StatusNotFound {
		t.Fatalf("object survived destroy: HEAD %d", code)
	}
}

func Test_CreateWithoutFile_ListUnchanged(t *testing.T) {
	rest := startREST(t, nodeConfig(t, startNodes(t, 1)))

	if code, _ := sendFile(t, http.MethodPost, rest+"/files", "a.txt", []byte("a")); code != http.StatusCreated {
		t.Fatalf("seed create %d", code)
	}

	code, body := do(t, http.MethodPost, rest+"/files", strings.NewReader("{}"))
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d", code)
	}
	var msgs []string
	if err := json.Unmarshal(body, &msgs); err != nil || len(msgs) != 1 || msgs[0] != "The file field is required." {
		t.Fatalf("messages %s", body)
	}

	_, body = do(t, http.MethodGet, rest+"/files", nil)
	var all []models.FileRecord
	if err := json.Unmarshal(body, &all); err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("list has %d records", len(all))
	}
}

func Test_NodeUnavailable_NoRecordCreated(t *testing.T) {
	// адрес, на котором никто не слушает
	rest := startREST(t, nodeConfig(t, []string{"http://127.0.0.1:1"}))

	code, _ := sendFile(t, http.MethodPost, rest+"/files", "a.txt", []byte("payload"))
	if code != http.StatusInternalServerError {
		t.Fatalf("status %d", code)
	}

	_, body := do(t, http.MethodGet, rest+"/files", nil)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("record created despite storage failure: %s", body)
	}
}
