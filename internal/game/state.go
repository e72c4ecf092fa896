// Package game implements the Love Letter rules engine: deck construction,
// round setup, turn sequencing, action validation, card effect resolution,
// round-end determination and the win condition.
//
// The engine is single-threaded and synchronous. All randomness comes from an
// explicit *rand.Rand passed into every operation that needs one, so
// identical seeds reproduce identical games. Callers exposing multiple
// concurrent games must serialize access to each Game/Round pair themselves.
package game

import (
	"github.com/RetiredDemiurge/love-letter/cards"
)

// Action is an immutable play request. TargetID and Guess are optional;
// Guess is only meaningful for the Guard.
type Action struct {
	PlayerID int
	Card     cards.Type
	TargetID *int
	Guess    *cards.Type
}

// SetupConfig controls how many cards are removed from the deck at round
// setup. Two-player games burn one card face down and three face up; three
// and four player games burn one face down only.
type SetupConfig struct {
	BurnFaceDown int
	BurnFaceUp   int
}

// Round holds the state of a single round. Players is shared with the owning
// Game, not copied. The deck and burn pile are stacks drawn from the end.
//
// Invariant: the multiset union of Deck, Burned, FaceUp, every hand and
// every discard is always exactly the full 16-card deck.
type Round struct {
	Players          []*Player
	Deck             []cards.Type
	Burned           []cards.Type
	FaceUp           []cards.Type
	CurrentPlayerIdx int
	Events           []Event
	RoundOver        bool
}

// Game holds the state of a full match. Round is replaced wholesale each
// round; the Players live for the life of the game.
type Game struct {
	Players      []*Player
	TargetTokens int
	RoundNumber  int
	Round        *Round

	// NextStartPlayerID is set by the previous round's winner selection and
	// consumed at the next setup. Nil means choose uniformly at random.
	NextStartPlayerID *int
}

// CurrentPlayer returns the player whose turn it is.
func (r *Round) CurrentPlayer() *Player {
	return r.Players[r.CurrentPlayerIdx]
}

// ActivePlayers returns the non-eliminated players in seat order.
func (r *Round) ActivePlayers() []*Player {
	active := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if !p.Eliminated {
			active = append(active, p)
		}
	}
	return active
}

// Player returns the player with the given id.
func (r *Round) Player(id int) (*Player, error) {
	for _, p := range r.Players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, rulesErrorf("Player not found.")
}

// emit appends an event to the round log and returns it.
func (r *Round) emit(ev Event) Event {
	r.Events = append(r.Events, ev)
	return ev
}

// drawCard pops the top card of the deck. The deck must not be empty.
func (r *Round) drawCard() cards.Type {
	c := r.Deck[len(r.Deck)-1]
	r.Deck = r.Deck[:len(r.Deck)-1]
	return c
}
