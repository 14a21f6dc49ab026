package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/labelkit/pkg/editor"
	"github.com/matzehuels/labelkit/pkg/errors"
	"github.com/matzehuels/labelkit/pkg/export"
	"github.com/matzehuels/labelkit/pkg/label"
)

func testDoc(t *testing.T) export.Document {
	t.Helper()
	e, err := editor.New(label.DefaultState(), label.LabelData{Fields: map[string]string{
		"recipient_name":  "Ada Lovelace",
		"tracking_number": "1Z999AA10123456784",
	}})
	if err != nil {
		t.Fatal(err)
	}
	return e.Export()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestArtifacts(t *testing.T) {
	s := New()
	e := s.Add(testDoc(t))

	tests := []struct {
		format string
		ctype  string
		prefix string
	}{
		{"json", "application/json", "{"},
		{"svg", "image/svg+xml", "<svg"},
		{"png", "image/png", "\x89PNG"},
		{"pdf", "application/pdf", "%PDF"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := get(t, s, "/labels/"+e.ID+"."+tt.format)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body)
			}
			if got := rec.Header().Get("Content-Type"); got != tt.ctype {
				t.Errorf("content type = %q, want %q", got, tt.ctype)
			}
			if !strings.HasPrefix(rec.Body.String(), tt.prefix) {
				t.Errorf("body starts with %.10q", rec.Body.String())
			}
		})
	}
}

func TestPage(t *testing.T) {
	s := New()
	e := s.Add(testDoc(t))
	rec := get(t, s, "/labels/"+e.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/labels/"+e.ID+".svg") {
		t.Errorf("page does not embed the svg:\n%s", rec.Body)
	}
}

func TestRequestErrors(t *testing.T) {
	s := New()
	e := s.Add(testDoc(t))

	tests := []struct {
		name   string
		path   string
		status int
		code   errors.Code
	}{
		{"unknown id", "/labels/00000000-0000-0000-0000-000000000000.json", http.StatusNotFound, errors.ErrCodeNotFound},
		{"malformed id", "/labels/nope.json", http.StatusNotFound, errors.ErrCodeNotFound},
		{"unknown format", "/labels/" + e.ID + ".gif", http.StatusBadRequest, errors.ErrCodeUnsupported},
		{"unknown page", "/labels/nope", http.StatusNotFound, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.path)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body: %v", err)
			}
			if body["code"] != string(tt.code) {
				t.Errorf("code = %q, want %q", body["code"], tt.code)
			}
		})
	}
}

func TestCreateAndIndex(t *testing.T) {
	s := New()
	data, err := export.Marshal(testDoc(t))
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/labels", bytes.NewReader(data)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/labels/") {
		t.Fatalf("location = %q", loc)
	}
	if got := get(t, s, loc+".json"); got.Code != http.StatusOK {
		t.Errorf("created label status = %d", got.Code)
	}

	var index struct {
		Labels []Entry `json:"labels"`
	}
	if err := json.Unmarshal(get(t, s, "/").Body.Bytes(), &index); err != nil {
		t.Fatal(err)
	}
	if len(index.Labels) != 1 || "/labels/"+index.Labels[0].ID != loc {
		t.Errorf("index = %+v", index.Labels)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/labels", strings.NewReader("{")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
}

func TestStoreLimit(t *testing.T) {
	s := New(WithLimit(2))
	doc := testDoc(t)
	first := s.Add(doc)
	s.Add(doc)
	s.Add(doc)
	if _, ok := s.store.get(first.ID); ok {
		t.Error("oldest label was not evicted")
	}
	if n := len(s.store.list()); n != 2 {
		t.Errorf("stored = %d, want 2", n)
	}
}

func TestOpenRequiresServer(t *testing.T) {
	s := New()
	doc := testDoc(t)
	if _, err := s.Open(context.Background(), doc); err == nil {
		t.Fatal("Open succeeded without a running server")
	}

	// A refused view falls back to a file.
	path := filepath.Join(t.TempDir(), "label.json")
	d, err := export.Deliver(context.Background(), doc, s, path)
	if err != nil {
		t.Fatal(err)
	}
	if d.Method != export.DeliveredFile || d.Blocked == nil {
		t.Errorf("delivery = %+v", d)
	}
}

func TestServeAndOpen(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}
	// Open must work before the Serve goroutine has started.
	s := New(WithBaseURL("http://" + ln.Addr().String()))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	d, err := export.Deliver(ctx, testDoc(t), s, filepath.Join(t.TempDir(), "unused.json"))
	if err != nil {
		t.Fatal(err)
	}
	if d.Method != export.DeliveredView {
		t.Fatalf("delivery = %+v", d)
	}

	resp, err := http.Get(d.Location + ".json")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if _, err := export.Read(bytes.NewReader(body)); err != nil {
		t.Errorf("served document unreadable: %v", err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
	if _, err := s.Open(context.Background(), testDoc(t)); err == nil {
		t.Error("Open succeeded after shutdown")
	}
}
