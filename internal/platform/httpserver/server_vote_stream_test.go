package httpserver

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	voteevents "beastypage/contexts/stream-voting/vote-aggregator/adapters/events"
	votehttp "beastypage/contexts/stream-voting/vote-aggregator/transport/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

func TestVoteStreamPushesMatchingVotes(t *testing.T) {
	server := newTestServer()
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/vote-sessions/s1/stream?step_id=A"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	if server.bus.Subscribers(voteevents.TopicVoteCreated) != 1 {
		t.Fatalf("expected stream subscription, got %d", server.bus.Subscribers(voteevents.TopicVoteCreated))
	}

	for _, body := range []string{
		`{"step_id":"B","option_key":"skip-step"}`,
		`{"step_id":"A","option_key":"tabby"}`,
	} {
		postResp, err := http.Post(ts.URL+"/v1/vote-sessions/s1/votes", "application/json", bytes.NewReader([]byte(body)))
		if err != nil {
			t.Fatalf("post vote failed: %v", err)
		}
		postResp.Body.Close()
	}
	otherResp, err := http.Post(ts.URL+"/v1/vote-sessions/s2/votes", "application/json", bytes.NewReader([]byte(`{"step_id":"A","option_key":"other-session"}`)))
	if err != nil {
		t.Fatalf("post vote failed: %v", err)
	}
	otherResp.Body.Close()

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set deadline failed: %v", err)
	}
	_, frame, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame failed: %v", err)
	}
	var msg votehttp.StreamMessage
	if err := json.Unmarshal(frame, &msg); err != nil {
		t.Fatalf("decode frame failed: %v", err)
	}
	if msg.Type != "vote" || msg.Data.OptionKey != "tabby" || msg.Data.SessionID != "s1" {
		t.Fatalf("unexpected frame %+v", msg)
	}

	if err := conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond)); err != nil {
		t.Fatalf("set deadline failed: %v", err)
	}
	if _, extra, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected no further frames, got %s", extra)
	}
}

func TestVoteStreamReleasesSubscriptionOnClose(t *testing.T) {
	server := newTestServer()
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/vote-sessions/s1/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for server.bus.Subscribers(voteevents.TopicVoteCreated) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("stream subscription was not released")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestShutdownClosesOpenVoteStreams(t *testing.T) {
	server := newTestServer()
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/vote-sessions/s1/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set deadline failed: %v", err)
	}
	_, _, err = conn.ReadMessage()
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) || closeErr.Code != websocket.CloseNormalClosure {
		t.Fatalf("expected normal close frame after shutdown, got %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for server.bus.Subscribers(voteevents.TopicVoteCreated) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("stream subscription was not released on shutdown")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if _, resp, err := websocket.DefaultDialer.Dial(wsURL, nil); err == nil {
		t.Fatal("expected new streams to be refused after shutdown")
	} else if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 after shutdown, got %v", err)
	}
}

func TestVoteStreamRejectsPlainHTTP(t *testing.T) {
	server := newTestServer()
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/vote-sessions/s1/stream", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-websocket request, got %d", rr.Code)
	}
}
