package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/roomcast/roomcast/internal/blob"
	"github.com/roomcast/roomcast/internal/config"
	"github.com/roomcast/roomcast/internal/core"
	"github.com/roomcast/roomcast/internal/proto"
)

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	hub := core.NewHub(nil, 0)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	cfg := config.Default()
	cfg.UploadDir = t.TempDir()

	blobs, err := blob.NewDisk(cfg.UploadDir, "/files")
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}

	logger := testLogger()
	server := NewServer(hub, blobs, cfg, logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func dialWS(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, msgType string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s: %v", msgType, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: payload}); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

type outboundFrame struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

// readEvent skips frames until one with the wanted event name arrives.
func readEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) json.RawMessage {
	t.Helper()

	for {
		var frame outboundFrame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			t.Fatalf("read waiting for %q: %v", event, err)
		}
		if frame.Event == event {
			return frame.Data
		}
	}
}

func readError(t *testing.T, ctx context.Context, conn *websocket.Conn) *proto.Error {
	t.Helper()

	for {
		var frame outboundFrame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			t.Fatalf("read waiting for error: %v", err)
		}
		if frame.Type == proto.OutboundTypeError {
			return frame.Error
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestWebSocketJoinAndMessage(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)
	connB := dialWS(t, ctx, ts)

	send(t, ctx, connA, proto.InboundTypeJoin, proto.JoinData{Username: "alice"})
	send(t, ctx, connB, proto.InboundTypeJoin, proto.JoinData{Username: "bob"})

	// Wait until alice sees both users in a presence snapshot.
	for {
		var users proto.EventUsersData
		data := readEvent(t, ctx, connA, proto.EventUsers)
		if err := json.Unmarshal(data, &users); err != nil {
			t.Fatalf("unmarshal users: %v", err)
		}
		if len(users.Users) == 2 {
			break
		}
	}

	send(t, ctx, connA, proto.InboundTypeSendMessage, proto.SendMessageData{Body: "hi there"})

	var msg proto.EventMessageData
	data := readEvent(t, ctx, connB, proto.EventMessage)
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}
	if msg.From != "alice" || msg.Body != "hi there" || msg.Room != core.DefaultRoom {
		t.Fatalf("unexpected message payload: %+v", msg)
	}
	if len(msg.ReadBy) != 1 || msg.ReadBy[0] != "alice" {
		t.Fatalf("unexpected readBy: %v", msg.ReadBy)
	}
}

func TestWebSocketPrivateMessage(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)
	connB := dialWS(t, ctx, ts)

	send(t, ctx, connA, proto.InboundTypeJoin, proto.JoinData{Username: "alice"})
	send(t, ctx, connB, proto.InboundTypeJoin, proto.JoinData{Username: "bob"})

	// Find bob's connection id from the presence snapshot.
	var bobID string
	for bobID == "" {
		var users proto.EventUsersData
		data := readEvent(t, ctx, connA, proto.EventUsers)
		if err := json.Unmarshal(data, &users); err != nil {
			t.Fatalf("unmarshal users: %v", err)
		}
		for _, u := range users.Users {
			if u.Username == "bob" {
				bobID = u.ID
			}
		}
	}

	send(t, ctx, connA, proto.InboundTypePrivate, proto.PrivateMessageData{To: bobID, Body: "psst"})

	var msg proto.EventMessageData
	data := readEvent(t, ctx, connB, proto.EventMessage)
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}
	if msg.From != "alice" || msg.Body != "psst" || msg.To != bobID {
		t.Fatalf("unexpected private message: %+v", msg)
	}
}

func TestWebSocketRejectsBeforeJoin(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)
	send(t, ctx, conn, proto.InboundTypeSendMessage, proto.SendMessageData{Body: "too soon"})

	protoErr := readError(t, ctx, conn)
	if protoErr.Code != core.ErrCodeNotJoined {
		t.Fatalf("expected not_joined, got %+v", protoErr)
	}
}

func TestWebSocketRejectsEmptyUsername(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)
	send(t, ctx, conn, proto.InboundTypeJoin, proto.JoinData{Username: "   "})

	protoErr := readError(t, ctx, conn)
	if protoErr.Code != core.ErrCodeBadRequest {
		t.Fatalf("expected bad_request, got %+v", protoErr)
	}
}

func TestWebSocketRejectsEmptyBody(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)
	send(t, ctx, conn, proto.InboundTypeJoin, proto.JoinData{Username: "alice"})
	send(t, ctx, conn, proto.InboundTypeSendMessage, proto.SendMessageData{})

	protoErr := readError(t, ctx, conn)
	if protoErr.Code != core.ErrCodeBadRequest {
		t.Fatalf("expected bad_request, got %+v", protoErr)
	}
}
