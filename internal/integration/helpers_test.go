package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sir_venger/filekeeper/internal/app/resthttp"
	"github.com/sir_venger/filekeeper/internal/app/storagehttp"
	"github.com/sir_venger/filekeeper/internal/config"
	"github.com/sir_venger/filekeeper/internal/models"
)

// startNodes поднимает n storage-узлов поверх временных каталогов.
func startNodes(t *testing.T, n int) []string {
	t.Helper()
	urls := make([]string, n)
	for i := range urls {
		s := httptest.NewServer(storagehttp.New(t.TempDir(), nil))
		t.Cleanup(s.Close)
		urls[i] = s.URL
	}
	return urls
}

func startREST(t *testing.T, cfg *config.Config) string {
	t.Helper()
	h, srv, err := resthttp.NewServer(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("new rest server: %v", err)
	}
	rest := httptest.NewServer(h)
	t.Cleanup(func() {
		rest.Close()
		_ = srv.Close()
	})
	return rest.URL
}

func sendFile(t *testing.T, method, url, name string, content []byte) (int, models.FileRecord) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write(content)
	_ = mw.Close()

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var rec models.FileRecord
	if resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
			t.Fatalf("decode record: %v", err)
		}
	}
	return resp.StatusCode, rec
}

func do(t *testing.T, method, url string, body io.Reader) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}
