package storagehttp

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sir_venger/filekeeper/pkg/storageproto"
)

func newTestNode(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	root := t.TempDir()
	s := httptest.NewServer(New(root, nil))
	t.Cleanup(s.Close)
	return s, root
}

func putObject(t *testing.T, base, key string, body []byte, checksum string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, storageproto.ObjectURL(base, key), bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if checksum != "" {
		req.Header.Set(storageproto.HeaderChecksum, checksum)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func sum(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

func Test_PutGetHeadDelete(t *testing.T) {
	s, _ := newTestNode(t)
	payload := bytes.Repeat([]byte("abc"), 1000)
	key := "files/0b7c/report v1.pdf"

	resp := putObject(t, s.URL, key, payload, sum(payload))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("put status %s", resp.Status)
	}
	var meta objectMeta
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		t.Fatal(err)
	}
	if meta.Key != key || meta.Size != int64(len(payload)) || meta.Sha256 != sum(payload) {
		t.Fatalf("unexpected meta %+v", meta)
	}

	get, err := http.Get(storageproto.ObjectURL(s.URL, key))
	if err != nil {
		t.Fatal(err)
	}
	got, _ := io.ReadAll(get.Body)
	_ = get.Body.Close()
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: %d bytes", len(got))
	}

	head, err := http.Head(storageproto.ObjectURL(s.URL, key))
	if err != nil {
		t.Fatal(err)
	}
	_ = head.Body.Close()
	if head.StatusCode != http.StatusOK || head.Header.Get(storageproto.HeaderChecksum) != sum(payload) {
		t.Fatalf("head %s %v", head.Status, head.Header)
	}

	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest(http.MethodDelete, storageproto.ObjectURL(s.URL, key), nil)
		del, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		_ = del.Body.Close()
		if del.StatusCode != http.StatusNoContent {
			t.Fatalf("delete #%d status %s", i, del.Status)
		}
	}

	get, err = http.Get(storageproto.ObjectURL(s.URL, key))
	if err != nil {
		t.Fatal(err)
	}
	_ = get.Body.Close()
	if get.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete %s", get.Status)
	}
}

func Test_PutChecksumMismatch(t *testing.T) {
	s, root := newTestNode(t)

	resp := putObject(t, s.URL, "a/b.txt", []byte("hello"), sum([]byte("other")))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status %s", resp.Status)
	}
	if _, err := os.Stat(filepath.Join(root, objectsDirName, "a", "b.txt")); !os.IsNotExist(err) {
		t.Fatalf("object must not be stored on checksum mismatch")
	}
	entries, _ := os.ReadDir(filepath.Join(root, incomingDirName))
	if len(entries) != 0 {
		t.Fatalf("incoming leftovers: %d", len(entries))
	}
}

func Test_PutEmptyObject(t *testing.T) {
	s, _ := newTestNode(t)

	resp := putObject(t, s.URL, "empty.bin", nil, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status %s", resp.Status)
	}
}

func Test_RejectsTraversalKeys(t *testing.T) {
	s, _ := newTestNode(t)

	for _, key := range []string{"a/../../etc/passwd", "a//b"} {
		req, _ := http.NewRequest(http.MethodGet, s.URL+"/objects/"+key, nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		_ = resp.Body.Close()
		// ".." может быть схлопнут клиентом или роутером, но до диска не дойдёт.
		if resp.StatusCode == http.StatusOK {
			t.Fatalf("key %q must be rejected", key)
		}
	}
}

func Test_HealthReportsTotalBytes(t *testing.T) {
	s, _ := newTestNode(t)
	_ = putObject(t, s.URL, "x/one", []byte("12345"), "")
	_ = putObject(t, s.URL, "x/two", []byte("123"), "")

	resp, err := http.Get(s.URL + storageproto.HealthPath)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var st healthStats
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if !st.OK || st.TotalBytes != 8 {
		t.Fatalf("unexpected health %+v", st)
	}
}

func Test_SweepOnce_RemovesStaleIncoming(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, incomingDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	stale := filepath.Join(dir, "stale"+incomingSuffix)
	fresh := filepath.Join(dir, "fresh"+incomingSuffix)
	for _, p := range []string{stale, fresh} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// старим модтайм
	old := time.Now().Add(-48 * time.Hour)
	_ = os.Chtimes(stale, old, old)

	removed, err := sweepOnce(root, 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Fatalf("removed %d", removed)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale upload not removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("fresh upload removed: %v", err)
	}
}

func Test_ManualGCEndpoint(t *testing.T) {
	s, _ := newTestNode(t)

	resp, err := http.Post(s.URL+storageproto.GCPath, "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("gc status %s", resp.Status)
	}
}
