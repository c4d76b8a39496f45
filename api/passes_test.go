package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cohen2you/transcripts-project/transcript"
	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, NewHandlers(nil))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not the envelope: %v (%s)", err, w.Body.String())
	}
	return string(resp.Error.Code)
}

func TestGetPasses(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodGet, "/api/passes", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp ListResponse[transcript.Pass]
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	want := transcript.DefaultPassNames()
	if len(resp.Data) != len(want) {
		t.Fatalf("got %d passes, want %d", len(resp.Data), len(want))
	}
	for i, p := range resp.Data {
		if p.Name != want[i] {
			t.Errorf("pass %d = %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestRunPassValidation(t *testing.T) {
	r := newTestRouter()

	oversize, err := json.Marshal(gin.H{"text": strings.Repeat("a", maxTranscriptBytes+1)})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "unknown pass",
			path:     "/api/passes/polish-everything",
			body:     `{"text":"Operator: Good morning."}`,
			wantCode: http.StatusNotFound,
			wantErr:  "NOT_FOUND",
		},
		{
			name:     "invalid body",
			path:     "/api/passes/speaker-labels",
			body:     `{"text":`,
			wantCode: http.StatusBadRequest,
			wantErr:  "BAD_REQUEST",
		},
		{
			name:     "empty text",
			path:     "/api/passes/speaker-labels",
			body:     `{"text":""}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "BAD_REQUEST",
		},
		{
			name:     "whitespace-only text",
			path:     "/api/passes/speaker-labels",
			body:     `{"text":"   \n  "}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "BAD_REQUEST",
		},
		{
			name:     "text over the size cap",
			path:     "/api/passes/speaker-labels",
			body:     string(oversize),
			wantCode: http.StatusBadRequest,
			wantErr:  "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, tt.path, tt.body)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantCode, w.Body.String())
			}
			if got := decodeErrorCode(t, w); got != tt.wantErr {
				t.Errorf("error code = %q, want %q", got, tt.wantErr)
			}
		})
	}
}

func TestCreateJobValidation(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid body", body: `not json`},
		{name: "empty text", body: `{"text":"  "}`},
		{name: "unknown pass name", body: `{"text":"Operator: Good morning.","passes":["speaker-labels","polish-everything"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/jobs", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (%s)", w.Code, w.Body.String())
			}
			if got := decodeErrorCode(t, w); got != "BAD_REQUEST" {
				t.Errorf("error code = %q, want BAD_REQUEST", got)
			}
		})
	}
}
