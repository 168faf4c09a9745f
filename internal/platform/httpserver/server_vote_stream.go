package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	voteevents "beastypage/contexts/stream-voting/vote-aggregator/adapters/events"
	votehttpadapter "beastypage/contexts/stream-voting/vote-aggregator/adapters/http"
	votehttp "beastypage/contexts/stream-voting/vote-aggregator/transport/http"
	"beastypage/internal/shared/events"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	streamWriteWait      = 10 * time.Second
	streamPongWait       = 60 * time.Second
	streamPingPeriod     = (streamPongWait * 9) / 10
	streamMaxMessageSize = 512
	streamFrameBuffer    = 64
)

// handleVoteStream pushes every new vote of the session as a websocket frame.
// The bus subscription is registered before the upgrade completes so no vote
// created after the handshake is missed.
func (s *Server) handleVoteStream(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")
	if strings.TrimSpace(sessionID) == "" {
		writeVoteError(w, http.StatusBadRequest, "invalid_session", "session id is required")
		return
	}
	filter := votehttpadapter.StepFilter(stepParam(r))

	if s.streams.Err() != nil {
		writeVoteError(w, http.StatusServiceUnavailable, "stream_unavailable", "server is shutting down")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(s.streams, cancel)
	defer stop()

	frames := make(chan []byte, streamFrameBuffer)
	err := s.bus.Subscribe(ctx, voteevents.TopicVoteCreated, "vote-stream", func(_ context.Context, event events.Envelope) error {
		if event.PartitionKey != sessionID {
			return nil
		}
		var vote votehttp.VoteResponse
		if err := json.Unmarshal(event.Payload, &vote); err != nil {
			return err
		}
		if !filter.Matches(vote.StepID) {
			return nil
		}
		frame, err := json.Marshal(votehttp.StreamMessage{Type: "vote", Data: vote})
		if err != nil {
			return err
		}
		select {
		case frames <- frame:
		default:
			s.logger.Warn("dropping vote frame for slow stream client",
				"event", "vote_stream_frame_dropped",
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"session_id", sessionID,
				"vote_id", vote.VoteID,
			)
		}
		return nil
	})
	if err != nil {
		writeVoteError(w, http.StatusServiceUnavailable, "stream_unavailable", "vote stream is unavailable")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("vote stream upgrade failed",
			"event", "vote_stream_upgrade_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"request_id", RequestID(r.Context()),
			"error", err.Error(),
		)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	s.metrics.StreamOpened()
	defer s.metrics.StreamClosed()
	s.logger.Info("vote stream opened",
		"event", "vote_stream_opened",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"session_id", sessionID,
	)

	go readStream(conn, cancel)
	s.writeStream(ctx, conn, frames)

	s.logger.Info("vote stream closed",
		"event", "vote_stream_closed",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"session_id", sessionID,
	)
}

// readStream discards client frames and cancels the stream once the peer goes
// away or stops answering pings.
func readStream(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(streamMaxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(streamPongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writeStream(ctx context.Context, conn *websocket.Conn, frames <-chan []byte) {
	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(streamWriteWait),
			)
			return
		case frame := <-frames:
			if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
