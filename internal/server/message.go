package server

import (
	"encoding/json"
	"time"

	"github.com/cardroom/holdem/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type JoinTableData struct {
	Table      string `json:"table"`
	PlayerName string `json:"playerName"`
}

type LeaveTableData struct {
	Table string `json:"table"`
}

type ActionData struct {
	Table  string `json:"table"`
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

type GetStateData struct {
	Table string `json:"table"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type TableInfo struct {
	Name        string `json:"name"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	Stakes      string `json:"stakes"`
	Status      string `json:"status"`
}

type TableListData struct {
	Tables []TableInfo `json:"tables"`
}

type TableJoinedData struct {
	Table   string   `json:"table"`
	Seat    int      `json:"seat"`
	Players []string `json:"players"`
}

type HandStartData struct {
	Table      string            `json:"table"`
	HandNum    int               `json:"handNum"`
	SmallBlind int               `json:"smallBlind"`
	BigBlind   int               `json:"bigBlind"`
	State      *game.PublicState `json:"state"`
}

type PlayerActionData struct {
	Table  string            `json:"table"`
	Seat   int               `json:"seat"`
	Player string            `json:"player"`
	Action string            `json:"action"`
	Amount int               `json:"amount"`
	State  *game.PublicState `json:"state"`
}

type TableStateData struct {
	Table string             `json:"table"`
	State *game.PrivateState `json:"state"`
}

type ActionRequiredData struct {
	Table          string             `json:"table"`
	Seat           int                `json:"seat"`
	LegalActions   []string           `json:"legalActions"`
	State          *game.PrivateState `json:"state"`
	TimeoutSeconds int                `json:"timeoutSeconds"`
}

type PlayerTimeoutData struct {
	Table  string `json:"table"`
	Seat   int    `json:"seat"`
	Player string `json:"player"`
	Action string `json:"action"` // action applied on the player's behalf
}

type HandEndData struct {
	Table      string            `json:"table"`
	HandNum    int               `json:"handNum"`
	Settlement *game.Settlement  `json:"settlement"`
	State      *game.PublicState `json:"state"`
}

func actionNames(actions []game.Action) []string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return names
}
