package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/roomcast/roomcast/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	user := flag.String("user", "tester", "username to join with")
	room := flag.String("room", "", "room to switch into after joining")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(msgType string, data any) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", msgType, err)
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: payload}); err != nil {
			return fmt.Errorf("send %s: %w", msgType, err)
		}
		return nil
	}

	if err := send(proto.InboundTypeJoin, proto.JoinData{Username: *user}); err != nil {
		return err
	}
	if *room != "" {
		if err := send(proto.InboundTypeJoinRoom, proto.JoinRoomData{Room: *room}); err != nil {
			return err
		}
	}
	if err := send(proto.InboundTypeSendMessage, proto.SendMessageData{Body: *text}); err != nil {
		return err
	}

	// Read frames until our own message echoes back.
	for {
		var frame struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if frame.Type == proto.OutboundTypeError {
			return fmt.Errorf("server error: %s (%s)", frame.Error.Msg, frame.Error.Code)
		}
		log.Printf("event %s: %s", frame.Event, frame.Data)
		if frame.Event == proto.EventMessage {
			var msg proto.EventMessageData
			if err := json.Unmarshal(frame.Data, &msg); err != nil {
				return fmt.Errorf("unmarshal message: %w", err)
			}
			if msg.From == *user && msg.Body == *text {
				log.Printf("round trip ok, message id %d", msg.ID)
				return nil
			}
		}
	}
}
