package game

import (
	"github.com/RetiredDemiurge/love-letter/cards"
)

// Player is the per-seat state. Hand, Discard, Protected and Eliminated are
// cleared at every round setup; Tokens persist for the life of the game.
type Player struct {
	ID         int
	Name       string
	Hand       []cards.Type
	Discard    []cards.Type
	Tokens     int
	Protected  bool
	Eliminated bool
}

// NewPlayer creates a player with an empty hand and no tokens.
func NewPlayer(id int, name string) *Player {
	return &Player{ID: id, Name: name}
}

// Holds reports whether the player's hand contains c.
func (p *Player) Holds(c cards.Type) bool {
	for _, held := range p.Hand {
		if held == c {
			return true
		}
	}
	return false
}

// DiscardSum returns the total point value of the player's discard pile,
// used as the round-end tiebreak.
func (p *Player) DiscardSum() int {
	sum := 0
	for _, c := range p.Discard {
		sum += c.Value()
	}
	return sum
}

// removeFromHand removes the first copy of c from the hand. It reports false
// if the card was not held.
func (p *Player) removeFromHand(c cards.Type) bool {
	for i, held := range p.Hand {
		if held == c {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// popHand removes and returns the last card of the hand. The hand must not
// be empty.
func (p *Player) popHand() cards.Type {
	c := p.Hand[len(p.Hand)-1]
	p.Hand = p.Hand[:len(p.Hand)-1]
	return c
}

// resetForRound clears all per-round state. Tokens are left untouched.
func (p *Player) resetForRound() {
	p.Hand = p.Hand[:0]
	p.Discard = p.Discard[:0]
	p.Protected = false
	p.Eliminated = false
}
