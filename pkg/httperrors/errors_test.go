package httperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sir_venger/filekeeper/internal/models"
)

func TestWrite(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", models.NotFound(models.ErrNotFound), http.StatusNotFound, "File not found."},
		{"validation", models.Invalid("The file field is required."), http.StatusUnprocessableEntity, "The file field is required."},
		{"too large", models.TooLarge(errors.New("limit")), http.StatusRequestEntityTooLarge, "The file is too large."},
		{"storage", models.StorageFailure("Error Storing File.", errors.New("secret path")), http.StatusInternalServerError, "Error Storing File."},
		{"persistence", models.PersistenceFailure("File Not Saved", errors.New("conn refused")), http.StatusInternalServerError, "File Not Saved"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Write(rec, tc.err)

			if rec.Code != tc.status {
				t.Fatalf("status %d, want %d", rec.Code, tc.status)
			}
			var body []string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body %q: %v", rec.Body.String(), err)
			}
			if len(body) != 1 || body[0] != tc.msg {
				t.Fatalf("body %v, want [%q]", body, tc.msg)
			}
		})
	}
}
