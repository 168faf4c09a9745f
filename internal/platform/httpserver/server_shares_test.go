package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sharehttp "beastypage/contexts/sharing/slug-registry/transport/http"

	"github.com/goccy/go-json"
)

func postShare(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/shares", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	return rr
}

func TestCreateAndGetShare(t *testing.T) {
	server := newTestServer()

	createRR := postShare(t, server, `{"payload":{"sprite":7,"colours":["ginger","white"]}}`)
	if createRR.Code != http.StatusCreated {
		t.Fatalf("expected 201 create, got %d body=%s", createRR.Code, createRR.Body.String())
	}
	var created sharehttp.CreateShareResponse
	if err := json.Unmarshal(createRR.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response failed: %v", err)
	}
	if len(created.Slug) != 7 || created.ID == "" {
		t.Fatalf("unexpected create response %+v", created)
	}

	getRR := httptest.NewRecorder()
	server.handler.ServeHTTP(getRR, httptest.NewRequest(http.MethodGet, "/v1/shares/"+created.Slug, nil))
	if getRR.Code != http.StatusOK {
		t.Fatalf("expected 200 get, got %d body=%s", getRR.Code, getRR.Body.String())
	}
	var share sharehttp.ShareResponse
	if err := json.Unmarshal(getRR.Body.Bytes(), &share); err != nil {
		t.Fatalf("decode share failed: %v", err)
	}
	if share.ID != created.ID || share.Slug != created.Slug || share.CreatedAt <= 0 {
		t.Fatalf("unexpected share %+v", share)
	}
	var payload map[string]any
	if err := json.Unmarshal(share.Payload, &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload["sprite"] != float64(7) {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestCreateShareWithRequestedSlugConflicts(t *testing.T) {
	server := newTestServer()

	first := postShare(t, server, `{"payload":{"a":1},"slug":"my-cat"}`)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", first.Code, first.Body.String())
	}
	second := postShare(t, server, `{"payload":{"a":2},"slug":"my-cat"}`)
	if second.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", second.Code, second.Body.String())
	}
	var body sharehttp.ErrorResponse
	if err := json.Unmarshal(second.Body.Bytes(), &body); err != nil || body.Code != "slug_taken" {
		t.Fatalf("unexpected error body %s", second.Body.String())
	}
}

func TestRequestedSlugWithSpaceRoundTrips(t *testing.T) {
	server := newTestServer()

	createRR := postShare(t, server, `{"payload":{"a":1},"slug":"my cat"}`)
	if createRR.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", createRR.Code, createRR.Body.String())
	}

	getRR := httptest.NewRecorder()
	server.handler.ServeHTTP(getRR, httptest.NewRequest(http.MethodGet, "/v1/shares/my%20cat", nil))
	if getRR.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", getRR.Code, getRR.Body.String())
	}
	var share sharehttp.ShareResponse
	if err := json.Unmarshal(getRR.Body.Bytes(), &share); err != nil || share.Slug != "my cat" {
		t.Fatalf("unexpected share %s", getRR.Body.String())
	}
}

func TestCreateShareRejectsBadRequests(t *testing.T) {
	server := newTestServer()
	cases := []struct {
		name string
		body string
		code string
	}{
		{name: "malformed json", body: `{"payload":`, code: "invalid_json"},
		{name: "missing payload", body: `{"slug":"abc"}`, code: "invalid_request"},
		{name: "slug too long", body: `{"payload":{},"slug":"` + strings.Repeat("x", 65) + `"}`, code: "invalid_request"},
		{name: "broken nested payload", body: `{"payload":[1,2}`, code: "invalid_json"},
		{name: "slug with path separator", body: `{"payload":{},"slug":"x/y"}`, code: "invalid_request"},
	}
	for _, tc := range cases {
		rr := postShare(t, server, tc.body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d body=%s", tc.name, rr.Code, rr.Body.String())
		}
		var body sharehttp.ErrorResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil || body.Code != tc.code {
			t.Fatalf("%s: expected code %s, got %s", tc.name, tc.code, rr.Body.String())
		}
	}
}

func TestGetShareNotFound(t *testing.T) {
	server := newTestServer()
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/shares/abcdefg", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}
