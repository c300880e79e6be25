package domalign

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testAligner(t *testing.T) *Aligner {
	t.Helper()
	cfg := &Config{}
	cfg.ApplyDefaults()
	return New(cfg, nil)
}

func TestAPI_Healthz(t *testing.T) {
	srv := httptest.NewServer(testAligner(t).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
}

func TestAPI_Preview(t *testing.T) {
	srv := httptest.NewServer(testAligner(t).Routes())
	defer srv.Close()

	body := `{
		"mover":  {"x":0,"y":0,"w":40,"h":20},
		"target": {"x":100,"y":200,"w":80,"h":60},
		"position": "tlr"
	}`
	resp, err := http.Post(srv.URL+"/v1/preview", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/preview: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}

	var got PreviewResult
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Left != 180 || got.Top != 230 {
		t.Errorf("preview: got {%v %v}, want {180 230}", got.Left, got.Top)
	}
}

// An unparsable position code is not a client error: the API answers 200
// with center alignment, mirroring the silent fallback everywhere else.
func TestAPI_PreviewInvalidCodeStillOK(t *testing.T) {
	srv := httptest.NewServer(testAligner(t).Routes())
	defer srv.Close()

	body := `{"mover":{"w":40,"h":20},"target":{"x":100,"y":200,"w":80,"h":60},"position":"zz9"}`
	resp, err := http.Post(srv.URL+"/v1/preview", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}

	var got PreviewResult
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.MoverCode != "cc" || got.TargetCode != "cc" {
		t.Errorf("codes: got (%q, %q), want center fallback", got.MoverCode, got.TargetCode)
	}
}

func TestAPI_PreviewMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(testAligner(t).Routes())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/preview", "application/json", strings.NewReader("{nope"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
}

func TestAPI_Resolve(t *testing.T) {
	srv := httptest.NewServer(testAligner(t).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/resolve/tlbr")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var got CodeClasses
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.MoverCode != "tl" || got.TargetCode != "br" {
		t.Errorf("resolve tlbr: got %+v", got)
	}
	if got.TargetHorizontal != "end" || got.TargetVertical != "end" {
		t.Errorf("br classes: got %+v", got)
	}
}

func TestAPI_AlignValidation(t *testing.T) {
	srv := httptest.NewServer(testAligner(t).Routes())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/align", "application/json",
		strings.NewReader(`{"url":"https://example.com"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing target/movers: got %d, want 400", resp.StatusCode)
	}
}

func TestAPI_PlacementsWithoutJournal(t *testing.T) {
	srv := httptest.NewServer(testAligner(t).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/placements")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status: got %d, want 404 when journal disabled", resp.StatusCode)
	}
}
