package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func Test_AddStoragesAtRuntime(t *testing.T) {
	nodes := startNodes(t, 2)
	rest := startREST(t, nodeConfig(t, nodes[:1]))

	code, body := do(t, http.MethodPost, rest+"/admin/storages", strings.NewReader(`{"storages":["`+nodes[1]+`/"]}`))
	if code != http.StatusOK {
		t.Fatalf("add storages %d %s", code, body)
	}
	var resp struct {
		Storages []string `json:"storages"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Storages) != 2 || resp.Storages[1] != nodes[1] {
		t.Fatalf("storages %v", resp.Storages)
	}

	for i := 0; i < 4; i++ {
		payload := bytes.Repeat([]byte{byte(i)}, 100+i)
		code, rec := sendFile(t, http.MethodPost, rest+"/files", "f.bin", payload)
		if code != http.StatusCreated {
			t.Fatalf("upload %d status %d", i, code)
		}
		_, got := do(t, http.MethodGet, rest+"/files/"+rec.ID+"/download", nil)
		if !bytes.Equal(got, payload) {
			t.Fatalf("upload %d content mismatch", i)
		}
	}

	if code, _ := do(t, http.MethodPost, rest+"/admin/storages", strings.NewReader(`{"storages":[]}`)); code != http.StatusUnprocessableEntity {
		t.Fatalf("empty storages status %d", code)
	}
}
