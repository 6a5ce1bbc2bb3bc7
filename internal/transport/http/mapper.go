package http

import (
	"encoding/json"
	"strings"

	"github.com/roomcast/roomcast/internal/core"
	"github.com/roomcast/roomcast/internal/proto"
)

// inboundToCommand validates an inbound envelope and maps it to a core
// command. Invalid input is rejected here with a protocol error so the
// core never sees it.
func inboundToCommand(inbound proto.Inbound, joined bool) (*core.Command, *proto.Error, error) {
	if inbound.Type != proto.InboundTypeJoin && !joined {
		return nil, &proto.Error{Code: core.ErrCodeNotJoined, Msg: "join first"}, nil
	}

	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if strings.TrimSpace(join.Username) == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "username is required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandJoin,
			Username: strings.TrimSpace(join.Username),
		}, nil, nil

	case proto.InboundTypeJoinRoom:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomName is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandJoinRoom,
			Room: join.Room,
		}, nil, nil

	case proto.InboundTypeSendMessage:
		var msg proto.SendMessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.Body == "" && msg.File == nil {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "body is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandSendMessage,
			Room: msg.Room,
			Body: msg.Body,
			File: fileRefFromData(msg.File),
		}, nil, nil

	case proto.InboundTypeSetTyping:
		var typing proto.SetTypingData
		if err := json.Unmarshal(inbound.Data, &typing); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:     core.CommandSetTyping,
			IsTyping: typing.IsTyping,
		}, nil, nil

	case proto.InboundTypePrivate:
		var pm proto.PrivateMessageData
		if err := json.Unmarshal(inbound.Data, &pm); err != nil {
			return nil, nil, err
		}
		if pm.To == "" || pm.Body == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "to and body are required"}, nil
		}
		return &core.Command{
			Kind: core.CommandSendPrivate,
			To:   pm.To,
			Body: pm.Body,
		}, nil, nil

	case proto.InboundTypeRead:
		var read proto.ReadMessageData
		if err := json.Unmarshal(inbound.Data, &read); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:      core.CommandReadMessage,
			MessageID: read.MessageID,
		}, nil, nil

	case proto.InboundTypeReact:
		var react proto.ReactMessageData
		if err := json.Unmarshal(inbound.Data, &react); err != nil {
			return nil, nil, err
		}
		if react.Symbol == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "symbol is required"}, nil
		}
		return &core.Command{
			Kind:      core.CommandReactMessage,
			MessageID: react.MessageID,
			Symbol:    react.Symbol,
			Username:  react.Username,
		}, nil, nil

	case proto.InboundTypeDisconnect:
		return &core.Command{Kind: core.CommandDisconnect}, nil, nil

	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventPresence:
		users := make([]proto.UserInfo, 0, len(event.Users))
		for _, u := range event.Users {
			users = append(users, proto.UserInfo{ID: u.ConnID, Username: u.Username})
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUsers,
			Data:  proto.EventUsersData{Users: users},
		}
	case core.EventUserJoined:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUserJoined,
			Data:  proto.EventUserJoinedData{User: event.User, Room: event.Room},
		}
	case core.EventUserLeft:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUserLeft,
			Data:  proto.EventUserLeftData{User: event.User},
		}
	case core.EventMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMessage,
			Data:  messageData(event.Message),
		}
	case core.EventTyping:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventTyping,
			Data:  proto.EventTypingData{Users: event.Typing},
		}
	case core.EventMessageRead:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMessageRead,
			Data:  proto.EventMessageReadData{MessageID: event.MessageID, ReadBy: event.ReadBy},
		}
	case core.EventMessageReaction:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMessageReaction,
			Data:  proto.EventMessageReactionData{MessageID: event.MessageID, Reactions: event.Reactions},
		}
	case core.EventHistory:
		messages := make([]proto.EventMessageData, 0, len(event.Messages))
		for _, msg := range event.Messages {
			messages = append(messages, messageData(msg))
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventHistory,
			Data:  proto.EventHistoryData{Messages: messages},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func messageData(msg *core.Message) proto.EventMessageData {
	return proto.EventMessageData{
		ID:        msg.ID,
		From:      msg.Sender,
		FromID:    msg.SenderID,
		Body:      msg.Body,
		Room:      msg.Room,
		To:        msg.To,
		File:      fileDataFromRef(msg.File),
		ReadBy:    msg.ReadBy,
		Reactions: msg.Reactions,
		TS:        msg.CreatedAt.UnixMilli(),
	}
}

func fileRefFromData(file *proto.FileData) *core.FileRef {
	if file == nil {
		return nil
	}
	return &core.FileRef{URL: file.URL, Name: file.Name, MimeType: file.MimeType}
}

func fileDataFromRef(file *core.FileRef) *proto.FileData {
	if file == nil {
		return nil
	}
	return &proto.FileData{URL: file.URL, Name: file.Name, MimeType: file.MimeType}
}
