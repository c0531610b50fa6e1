package http

import (
	"encoding/json"

	"github.com/huddlechat/huddle-server/internal/core"
	"github.com/huddlechat/huddle-server/internal/proto"
)

// inboundToCommand validates a client envelope and maps it onto a core
// command. Malformed payloads never reach the core: they come back as a
// protocol error for the sender only.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, badPayload(), nil
		}
		if join.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandJoinRoom,
			Room:     join.Room,
			Nickname: join.Nickname,
		}, nil, nil

	case proto.InboundTypeLeave:
		return &core.Command{Kind: core.CommandLeaveRoom}, nil, nil

	case proto.InboundTypeChat:
		var msg proto.ChatData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, badPayload(), nil
		}
		if msg.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandSendMessage,
			Room: msg.Room,
			Text: msg.Message,
		}, nil, nil

	case proto.InboundTypeDelete:
		var del proto.DeleteData
		if err := json.Unmarshal(inbound.Data, &del); err != nil {
			return nil, badPayload(), nil
		}
		if del.Room == "" || del.MessageID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room and messageId are required"}, nil
		}
		return &core.Command{
			Kind:      core.CommandDeleteMessage,
			Room:      del.Room,
			MessageID: del.MessageID,
		}, nil, nil

	case proto.InboundTypeTyping, proto.InboundTypeStop:
		var typing proto.TypingData
		if err := json.Unmarshal(inbound.Data, &typing); err != nil {
			return nil, badPayload(), nil
		}
		if typing.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		kind := core.CommandStartTyping
		if inbound.Type == proto.InboundTypeStop {
			kind = core.CommandStopTyping
		}
		return &core.Command{Kind: kind, Room: typing.Room}, nil, nil

	case proto.InboundTypeInvite:
		var invite proto.InviteData
		if err := json.Unmarshal(inbound.Data, &invite); err != nil {
			return nil, badPayload(), nil
		}
		if invite.TargetID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "targetId is required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandInvite,
			TargetID: invite.TargetID,
		}, nil, nil

	case proto.InboundTypeAccept:
		var accept proto.AcceptData
		if err := json.Unmarshal(inbound.Data, &accept); err != nil {
			return nil, badPayload(), nil
		}
		if accept.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind:      core.CommandAcceptInvite,
			Room:      accept.RoomID,
			InviterID: accept.InviterID,
		}, nil, nil

	default:
		return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "unknown message type"}, nil
	}
}

func badPayload() *proto.Error {
	return &proto.Error{Code: core.ErrCodeBadRequest, Msg: "malformed payload"}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventHistory:
		messages := make([]proto.WireMessage, 0, len(event.Messages))
		for _, msg := range event.Messages {
			messages = append(messages, wireMessage(&msg))
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRoomHistory,
			Data:  messages,
		}

	case core.EventMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMessage,
			Data:  wireMessage(event.Message),
		}

	case core.EventMessageDeleted:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMessageDeleted,
			Data:  proto.DeletedData{MessageID: event.MessageID},
		}

	case core.EventOnlineUsers:
		users := make([]proto.OnlineUser, 0, len(event.Members))
		for _, m := range event.Members {
			users = append(users, proto.OnlineUser{
				ID:       m.ID,
				Nickname: m.Nickname,
				Badge:    m.Badge,
			})
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventOnlineUsers,
			Data:  users,
		}

	case core.EventTyping:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventDisplayTyping,
			Data:  proto.TypingUser{User: event.User},
		}

	case core.EventStopTyping:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRemoveTyping,
			Data:  proto.TypingUser{User: event.User},
		}

	case core.EventInvite:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPrivateInvite,
			Data: proto.PrivateInviteData{
				From:      event.User,
				RoomID:    event.Room,
				InviterID: event.InviterID,
			},
		}

	case core.EventInviteSent:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventInviteSent,
			Data:  proto.InviteSentData{RoomID: event.Room},
		}

	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{
				Type:  proto.OutboundTypeError,
				Event: proto.EventErrorMsg,
				Error: &proto.Error{Code: "unknown", Msg: "unknown error"},
			}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Event: proto.EventErrorMsg,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}

	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func wireMessage(msg *core.Message) proto.WireMessage {
	if msg == nil {
		return proto.WireMessage{}
	}
	return proto.WireMessage{
		ID:     msg.ID,
		UserID: msg.AuthorID,
		User:   msg.Author,
		Text:   msg.Text,
		TS:     msg.SentAt.Unix(),
	}
}
