package server

import (
	"encoding/json"
	"time"

	"github.com/RetiredDemiurge/love-letter/cards"
	"github.com/RetiredDemiurge/love-letter/internal/game"
)

// MessageType tags a WebSocket message.
type MessageType string

// Client → server message types.
const (
	TypeCreate    MessageType = "create"
	TypeJoin      MessageType = "join"
	TypeBegin     MessageType = "begin"
	TypeStartTurn MessageType = "start_turn"
	TypePlay      MessageType = "play"
	TypeNextRound MessageType = "next_round"
	TypeGetState  MessageType = "get_state"
)

// Server → client message types.
const (
	TypeCreated MessageType = "created"
	TypeJoined  MessageType = "joined"
	TypeState   MessageType = "state"
	TypeError   MessageType = "error"
)

// Message is the envelope for every WebSocket frame.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage wraps a payload with the current timestamp.
func NewMessage(messageType MessageType, data any) (*Message, error) {
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

// Client → server payloads.

type CreateData struct {
	Name string `json:"name"`
	Seed *int64 `json:"seed,omitempty"`
}

type JoinData struct {
	JoinCode string `json:"joinCode"`
	Name     string `json:"name"`
}

type BeginData struct {
	GameID    string `json:"gameId"`
	SeatToken string `json:"seatToken"`
}

type StartTurnData struct {
	GameID    string `json:"gameId"`
	SeatToken string `json:"seatToken"`
}

type PlayData struct {
	GameID    string  `json:"gameId"`
	SeatToken string  `json:"seatToken"`
	Card      string  `json:"card"`
	TargetID  *int    `json:"targetId,omitempty"`
	Guess     *string `json:"guess,omitempty"`
}

type NextRoundData struct {
	GameID    string `json:"gameId"`
	SeatToken string `json:"seatToken"`
}

type GetStateData struct {
	GameID    string `json:"gameId"`
	SeatToken string `json:"seatToken"`
}

// Server → client payloads.

type CreatedData struct {
	GameID    string `json:"gameId"`
	JoinCode  string `json:"joinCode"`
	SeatToken string `json:"seatToken"`
	PlayerID  int    `json:"playerId"`
}

type JoinedData struct {
	GameID    string `json:"gameId"`
	SeatToken string `json:"seatToken"`
	PlayerID  int    `json:"playerId"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// PlayerSnapshot is one player as seen by a particular seat. Hand is only
// present for the viewing player; everyone else gets just the count.
type PlayerSnapshot struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Tokens     int      `json:"tokens"`
	Protected  bool     `json:"protected"`
	Eliminated bool     `json:"eliminated"`
	Discard    []string `json:"discard"`
	Hand       []string `json:"hand,omitempty"`
	HandCount  int      `json:"handCount"`
}

// StateSnapshot is the full game view for one seat.
type StateSnapshot struct {
	GameID          string           `json:"gameId"`
	Started         bool             `json:"started"`
	Players         []PlayerSnapshot `json:"players"`
	CurrentPlayerID int              `json:"currentPlayerId"`
	RoundOver       bool             `json:"roundOver"`
	RoundNumber     int              `json:"roundNumber"`
	TargetTokens    int              `json:"targetTokens"`
	DeckCount       int              `json:"deckCount"`
	BurnedCount     int              `json:"burnedCount"`
	FaceUp          []string         `json:"faceUp"`
	PublicLog       []string         `json:"publicLog"`
	PrivateLog      []string         `json:"privateLog"`
	GameOver        bool             `json:"gameOver"`
}

func cardIDs(list []cards.Type) []string {
	ids := make([]string, len(list))
	for i, c := range list {
		ids[i] = c.ID()
	}
	return ids
}

func snapshotPlayer(p *game.Player, includeHand bool) PlayerSnapshot {
	snap := PlayerSnapshot{
		ID:         p.ID,
		Name:       p.Name,
		Tokens:     p.Tokens,
		Protected:  p.Protected,
		Eliminated: p.Eliminated,
		Discard:    cardIDs(p.Discard),
		HandCount:  len(p.Hand),
	}
	if includeHand {
		snap.Hand = cardIDs(p.Hand)
	}
	return snap
}
