// Package cards defines the fixed Love Letter card catalog: the eight card
// types, their point values, official names, and per-type counts in the
// 16-card deck.
package cards

import (
	"fmt"
	"strings"
)

// Type identifies one of the eight card types. The integer value is both the
// display value and the strength used for comparisons (Baron duels, the
// round-end tiebreak).
type Type int

const (
	Guard    Type = 1
	Priest   Type = 2
	Baron    Type = 3
	Handmaid Type = 4
	Prince   Type = 5
	King     Type = 6
	Countess Type = 7
	Princess Type = 8
)

// DeckSize is the total number of cards in a full deck.
const DeckSize = 16

var names = map[Type]string{
	Guard:    "Guard",
	Priest:   "Priest",
	Baron:    "Baron",
	Handmaid: "Handmaid",
	Prince:   "Prince",
	King:     "King",
	Countess: "Countess",
	Princess: "Princess",
}

var counts = map[Type]int{
	Guard:    5,
	Priest:   2,
	Baron:    2,
	Handmaid: 2,
	Prince:   2,
	King:     1,
	Countess: 1,
	Princess: 1,
}

// Name returns the official card name.
func (t Type) Name() string {
	if name, ok := names[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(t))
}

// String implements fmt.Stringer.
func (t Type) String() string { return t.Name() }

// Value returns the card's point value.
func (t Type) Value() int { return int(t) }

// Valid reports whether t is one of the eight card types.
func (t Type) Valid() bool {
	_, ok := names[t]
	return ok
}

// ID returns the stable lowercase identifier used at serialization
// boundaries ("guard", "priest", ...).
func (t Type) ID() string { return strings.ToLower(t.Name()) }

// FromID resolves a lowercase identifier back to a card type.
func FromID(id string) (Type, bool) {
	for t, name := range names {
		if strings.ToLower(name) == id {
			return t, true
		}
	}
	return 0, false
}

// Count returns how many copies of t a full deck contains.
func Count(t Type) int { return counts[t] }

// All returns the eight card types in ascending value order.
func All() []Type {
	return []Type{Guard, Priest, Baron, Handmaid, Prince, King, Countess, Princess}
}
