package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants used by the client-server protocol.
const (
	// Client to server messages
	MessageTypeJoinTable  MessageType = "join_table"
	MessageTypeLeaveTable MessageType = "leave_table"
	MessageTypeListTables MessageType = "list_tables"
	MessageTypeAction     MessageType = "action"
	MessageTypeGetState   MessageType = "get_state"

	// Server to client messages
	MessageTypeError          MessageType = "error"
	MessageTypeTableJoined    MessageType = "table_joined"
	MessageTypeTableLeft      MessageType = "table_left"
	MessageTypeTableList      MessageType = "table_list"
	MessageTypeHandStart      MessageType = "hand_start"
	MessageTypePlayerAction   MessageType = "player_action"
	MessageTypeTableState     MessageType = "table_state"
	MessageTypeActionRequired MessageType = "action_required"
	MessageTypePlayerTimeout  MessageType = "player_timeout"
	MessageTypeHandEnd        MessageType = "hand_end"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
