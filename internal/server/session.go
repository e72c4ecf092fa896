package server

import (
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/RetiredDemiurge/love-letter/cards"
	"github.com/RetiredDemiurge/love-letter/internal/game"
	"github.com/RetiredDemiurge/love-letter/internal/gameid"
)

// maxSeats is the most players a Love Letter table holds.
const maxSeats = 4

// eventLogWindow bounds how much of the round log a snapshot carries.
const eventLogWindow = 40

// Seat binds a joined player to a secret token. Clients prove seat ownership
// by presenting the token on every request.
type Seat struct {
	PlayerID int
	Name     string
	Token    string
}

// Session owns one game: its rng, its seats, and the mutex that serializes
// every mutating call, as the engine requires. Each session is independently
// owned; there is no process-wide game state.
type Session struct {
	ID       string
	JoinCode string

	mu         sync.Mutex
	rng        *rand.Rand
	seats      []Seat
	game       *game.Game
	lastActive time.Time
}

// newSession creates a session with the host in seat 0.
func newSession(id, joinCode, hostName string, rng *rand.Rand, now time.Time) *Session {
	return &Session{
		ID:       id,
		JoinCode: joinCode,
		rng:      rng,
		seats: []Seat{{
			PlayerID: 0,
			Name:     hostName,
			Token:    gameid.New(),
		}},
		lastActive: now,
	}
}

// Join claims the next free seat. It fails once the game has begun or the
// table is full.
func (s *Session) Join(name string, now time.Time) (Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now

	if s.game != nil {
		return Seat{}, &game.RulesError{Reason: "Game already started."}
	}
	if len(s.seats) >= maxSeats {
		return Seat{}, &game.RulesError{Reason: "Table is full."}
	}

	seat := Seat{
		PlayerID: len(s.seats),
		Name:     name,
		Token:    gameid.New(),
	}
	s.seats = append(s.seats, seat)
	return seat, nil
}

// Begin starts the game once two to four players are seated and deals the
// first round.
func (s *Session) Begin(token string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now

	if _, err := s.seat(token); err != nil {
		return err
	}
	if s.game != nil {
		return &game.RulesError{Reason: "Game already started."}
	}

	names := make([]string, len(s.seats))
	for i, seat := range s.seats {
		names[i] = seat.Name
	}
	g, err := game.NewGame(names)
	if err != nil {
		return err
	}
	if _, err := g.SetupRound(s.rng); err != nil {
		return err
	}
	s.game = g
	return nil
}

// StartTurn runs the draw phase for the seat's player. It must be that
// player's turn. An empty deck immediately resolves the round end.
func (s *Session) StartTurn(token string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now

	seat, round, err := s.seatAndRound(token)
	if err != nil {
		return err
	}
	if round.RoundOver {
		return &game.RulesError{Reason: "Round is over."}
	}
	if round.CurrentPlayer().ID != seat.PlayerID {
		return &game.RulesError{Reason: "Not your turn."}
	}

	canPlay, err := round.StartTurn(seat.PlayerID, s.rng)
	if err != nil {
		return err
	}
	if !canPlay {
		s.game.CheckRoundEnd(round, s.rng)
	}
	return nil
}

// Play applies the seat's action, resolves any round end, and advances the
// turn. It must be that player's turn.
func (s *Session) Play(token string, data PlayData, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now

	seat, round, err := s.seatAndRound(token)
	if err != nil {
		return err
	}
	if round.RoundOver {
		return &game.RulesError{Reason: "Round is over."}
	}
	if round.CurrentPlayer().ID != seat.PlayerID {
		return &game.RulesError{Reason: "Not your turn."}
	}

	action, err := parseAction(seat.PlayerID, data)
	if err != nil {
		return err
	}
	if _, err := round.ApplyAction(action, s.rng); err != nil {
		return err
	}
	s.game.CheckRoundEnd(round, s.rng)
	if !round.RoundOver {
		round.AdvanceTurn()
	}
	return nil
}

// NextRound deals a fresh round after the current one has ended.
func (s *Session) NextRound(token string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now

	if _, err := s.seat(token); err != nil {
		return err
	}
	if s.game == nil {
		return &game.RulesError{Reason: "Game not started."}
	}
	if !s.game.Round.RoundOver {
		return &game.RulesError{Reason: "Round is not over."}
	}
	if s.game.Over() {
		return &game.RulesError{Reason: "Game is over."}
	}
	_, err := s.game.SetupRound(s.rng)
	return err
}

// Snapshot builds the seat-specific view: own hand visible, other hands
// counted only, and the event log split into public and private lines.
func (s *Session) Snapshot(token string, now time.Time) (*StateSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now

	seat, err := s.seat(token)
	if err != nil {
		return nil, err
	}

	snap := &StateSnapshot{GameID: s.ID}
	if s.game == nil {
		for _, st := range s.seats {
			snap.Players = append(snap.Players, PlayerSnapshot{ID: st.PlayerID, Name: st.Name})
		}
		return snap, nil
	}

	round := s.game.Round
	snap.Started = true
	snap.CurrentPlayerID = round.CurrentPlayer().ID
	snap.RoundOver = round.RoundOver
	snap.RoundNumber = s.game.RoundNumber
	snap.TargetTokens = s.game.TargetTokens
	snap.DeckCount = len(round.Deck)
	snap.BurnedCount = len(round.Burned)
	snap.FaceUp = cardIDs(round.FaceUp)
	snap.GameOver = s.game.Over()

	for _, p := range round.Players {
		snap.Players = append(snap.Players, snapshotPlayer(p, p.ID == seat.PlayerID))
	}

	events := round.Events
	if len(events) > eventLogWindow {
		events = events[len(events)-eventLogWindow:]
	}
	public := game.NewEventFormatter(round.Players, game.FormatOptions{HideHidden: true})
	snap.PublicLog = make([]string, 0, len(events))
	snap.PrivateLog = make([]string, 0)
	for _, ev := range events {
		snap.PublicLog = append(snap.PublicLog, public.Format(ev))
		if line, ok := public.FormatPrivate(ev, seat.PlayerID); ok {
			snap.PrivateLog = append(snap.PrivateLog, line)
		}
	}
	return snap, nil
}

// IdleSince reports the last time any seat touched the session.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) seat(token string) (Seat, error) {
	for _, seat := range s.seats {
		if seat.Token == token {
			return seat, nil
		}
	}
	return Seat{}, &game.RulesError{Reason: "Unknown seat token."}
}

func (s *Session) seatAndRound(token string) (Seat, *game.Round, error) {
	seat, err := s.seat(token)
	if err != nil {
		return Seat{}, nil, err
	}
	if s.game == nil {
		return Seat{}, nil, &game.RulesError{Reason: "Game not started."}
	}
	return seat, s.game.Round, nil
}

// parseAction converts wire card ids into an engine action.
func parseAction(playerID int, data PlayData) (game.Action, error) {
	card, ok := cards.FromID(data.Card)
	if !ok {
		return game.Action{}, &game.RulesError{Reason: "Unknown card."}
	}
	action := game.Action{PlayerID: playerID, Card: card, TargetID: data.TargetID}
	if data.Guess != nil {
		g, ok := cards.FromID(*data.Guess)
		if !ok {
			return game.Action{}, &game.RulesError{Reason: "Unknown card."}
		}
		action.Guess = &g
	}
	return action, nil
}
