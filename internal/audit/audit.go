package audit

import (
	"context"

	"github.com/ishashanknigam/Peer-Connect/pkg/log"
)

// Audit actions for the signaling relay.
const (
	ActionJoinRoom   = "signal.join_room"
	ActionLeaveRoom  = "signal.leave_room"
	ActionChat       = "signal.chat"
	ActionToggle     = "signal.toggle"
	ActionDisconnect = "signal.disconnect"
)

// Field constants for audit entries.
const (
	FieldAction = "action"
	FieldDetail = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action, clientID, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldClientID, clientID).
		Msg(msg)
}

// LogWithRoom emits an audit log scoped to a room.
func LogWithRoom(ctx context.Context, action, clientID, roomID, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldClientID, clientID).
		Str(log.FieldRoomID, roomID).
		Msg(msg)
}
