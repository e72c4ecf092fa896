package game

import (
	"github.com/RetiredDemiurge/love-letter/cards"
)

// EventKind tags an event in the round log.
type EventKind string

const (
	KindRoundStart       EventKind = "round_start"
	KindFaceUp           EventKind = "face_up"
	KindDraw             EventKind = "draw"
	KindPlay             EventKind = "play"
	KindGuardGuess       EventKind = "guard_guess"
	KindReveal           EventKind = "reveal"
	KindBaronCompare     EventKind = "baron_compare"
	KindProtected        EventKind = "protected"
	KindProtectionEnded  EventKind = "protection_ended"
	KindDiscard          EventKind = "discard"
	KindEliminated       EventKind = "eliminated"
	KindSwap             EventKind = "swap"
	KindCountessNoEffect EventKind = "countess_no_effect"
	KindRoundEnd         EventKind = "round_end"
	KindTokenAwarded     EventKind = "token_awarded"
	KindDeckEmpty        EventKind = "deck_empty"
)

// Reasons carried by draw and discard events.
const (
	ReasonPrince      = "prince"
	ReasonElimination = "elimination"
)

// Elimination causes carried by eliminated events.
const (
	EliminatedByGuardGuess     = "guard_guess"
	EliminatedByBaron          = "baron"
	EliminatedByPrincePrincess = "prince_princess"
	EliminatedByPlayedPrincess = "played_princess"
)

// Event is an immutable record in the append-only round log. The log is the
// sole channel through which collaborators learn what happened; events within
// one round form a single total order matching the sequence of engine calls.
//
// Each kind is a distinct struct carrying exactly its fixed field set, so
// consumers never have to guess which fields are present.
type Event interface {
	Kind() EventKind
}

// RoundStartEvent opens every round.
type RoundStartEvent struct {
	Round         int
	StartPlayerID int
}

func (RoundStartEvent) Kind() EventKind { return KindRoundStart }

// FaceUpEvent lists the cards removed face up at a two-player setup.
type FaceUpEvent struct {
	Cards []cards.Type
}

func (FaceUpEvent) Kind() EventKind { return KindFaceUp }

// DrawEvent records a card drawn into a hand. Reason is empty for the normal
// turn-start draw and ReasonPrince for a Prince replacement draw.
type DrawEvent struct {
	PlayerID int
	Card     cards.Type
	Reason   string
}

func (DrawEvent) Kind() EventKind { return KindDraw }

// PlayEvent records a card moved from hand to discard.
type PlayEvent struct {
	PlayerID int
	Card     cards.Type
}

func (PlayEvent) Kind() EventKind { return KindPlay }

// GuardGuessEvent records a Guard guess, hit or miss.
type GuardGuessEvent struct {
	PlayerID int
	TargetID int
	Guess    cards.Type
}

func (GuardGuessEvent) Kind() EventKind { return KindGuardGuess }

// RevealEvent records a Priest peek. The card value is the true one; whether
// it is shown publicly or only to the viewer is a presentation concern.
type RevealEvent struct {
	ViewerID int
	TargetID int
	Card     cards.Type
}

func (RevealEvent) Kind() EventKind { return KindReveal }

// BaronCompareEvent records a Baron duel before any elimination.
type BaronCompareEvent struct {
	PlayerID   int
	TargetID   int
	PlayerCard cards.Type
	TargetCard cards.Type
}

func (BaronCompareEvent) Kind() EventKind { return KindBaronCompare }

// ProtectedEvent records Handmaid protection taking effect.
type ProtectedEvent struct {
	PlayerID int
}

func (ProtectedEvent) Kind() EventKind { return KindProtected }

// ProtectionEndedEvent records protection expiring at the owner's turn start.
type ProtectionEndedEvent struct {
	PlayerID int
}

func (ProtectionEndedEvent) Kind() EventKind { return KindProtectionEnded }

// DiscardEvent records a forced discard (Prince effect or elimination).
type DiscardEvent struct {
	PlayerID int
	Card     cards.Type
	Reason   string
}

func (DiscardEvent) Kind() EventKind { return KindDiscard }

// EliminatedEvent records a player leaving the round.
type EliminatedEvent struct {
	PlayerID int
	Reason   string
}

func (EliminatedEvent) Kind() EventKind { return KindEliminated }

// SwapEvent records a King hand exchange.
type SwapEvent struct {
	PlayerID int
	TargetID int
}

func (SwapEvent) Kind() EventKind { return KindSwap }

// CountessNoEffectEvent records a Countess play, which has no mechanical
// effect.
type CountessNoEffectEvent struct {
	PlayerID int
}

func (CountessNoEffectEvent) Kind() EventKind { return KindCountessNoEffect }

// RoundEndEvent closes a round. Winners may be empty if everyone was
// eliminated simultaneously.
type RoundEndEvent struct {
	Winners []int
}

func (RoundEndEvent) Kind() EventKind { return KindRoundEnd }

// TokenAwardedEvent records a winner's new token total.
type TokenAwardedEvent struct {
	PlayerID int
	Tokens   int
}

func (TokenAwardedEvent) Kind() EventKind { return KindTokenAwarded }

// DeckEmptyEvent records a turn-start draw attempt finding an empty deck.
type DeckEmptyEvent struct{}

func (DeckEmptyEvent) Kind() EventKind { return KindDeckEmpty }
