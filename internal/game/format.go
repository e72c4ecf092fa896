package game

import (
	"fmt"
	"strings"

	"github.com/RetiredDemiurge/love-letter/cards"
)

// FormatOptions controls how events are rendered for different audiences.
type FormatOptions struct {
	// HideHidden withholds card values that only some players saw: the
	// turn-start draw, the Priest reveal and the Baron compare details.
	// A shared broadcast log wants this on; a hotseat table does not.
	HideHidden bool
}

// EventFormatter renders events as log lines, resolving player ids to names.
type EventFormatter struct {
	opts  FormatOptions
	names map[int]string
}

// NewEventFormatter creates a formatter for the given players.
func NewEventFormatter(players []*Player, opts FormatOptions) *EventFormatter {
	names := make(map[int]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	return &EventFormatter{opts: opts, names: names}
}

// Format renders one event as a single line.
func (f *EventFormatter) Format(ev Event) string {
	switch e := ev.(type) {
	case RoundStartEvent:
		return fmt.Sprintf("Round %d begins. Start player: %s.", e.Round, f.name(e.StartPlayerID))
	case FaceUpEvent:
		return fmt.Sprintf("Face-up removed cards: %s.", joinCards(e.Cards))
	case DrawEvent:
		if e.Reason == ReasonPrince {
			return fmt.Sprintf("%s draws a replacement card.", f.name(e.PlayerID))
		}
		return fmt.Sprintf("%s draws a card.", f.name(e.PlayerID))
	case PlayEvent:
		return fmt.Sprintf("%s plays %s.", f.name(e.PlayerID), e.Card)
	case GuardGuessEvent:
		return fmt.Sprintf("%s guesses %s on %s.", f.name(e.PlayerID), e.Guess, f.name(e.TargetID))
	case RevealEvent:
		if f.opts.HideHidden {
			return fmt.Sprintf("%s looked at %s's hand.", f.name(e.ViewerID), f.name(e.TargetID))
		}
		return fmt.Sprintf("%s sees %s's hand: %s.", f.name(e.ViewerID), f.name(e.TargetID), e.Card)
	case BaronCompareEvent:
		if f.opts.HideHidden {
			return fmt.Sprintf("%s compares hand with %s.", f.name(e.PlayerID), f.name(e.TargetID))
		}
		return fmt.Sprintf("Baron compare: %s (%s) vs %s (%s).",
			f.name(e.PlayerID), e.PlayerCard, f.name(e.TargetID), e.TargetCard)
	case ProtectedEvent:
		return fmt.Sprintf("%s is protected until their next turn.", f.name(e.PlayerID))
	case ProtectionEndedEvent:
		return fmt.Sprintf("%s's protection ends.", f.name(e.PlayerID))
	case DiscardEvent:
		return fmt.Sprintf("%s discards %s.", f.name(e.PlayerID), e.Card)
	case EliminatedEvent:
		return fmt.Sprintf("%s is eliminated.", f.name(e.PlayerID))
	case SwapEvent:
		return fmt.Sprintf("%s swaps hands with %s.", f.name(e.PlayerID), f.name(e.TargetID))
	case CountessNoEffectEvent:
		return fmt.Sprintf("%s's Countess has no effect.", f.name(e.PlayerID))
	case RoundEndEvent:
		return fmt.Sprintf("Round ends. Winner(s): %s.", f.winnerNames(e.Winners))
	case TokenAwardedEvent:
		return fmt.Sprintf("%s gains a token (total: %d).", f.name(e.PlayerID), e.Tokens)
	case DeckEmptyEvent:
		return "Deck is empty. Round ends now."
	default:
		return fmt.Sprintf("%s", ev.Kind())
	}
}

// FormatPrivate renders the confidential detail of an event for one viewer:
// the Priest reveal for the peeking player, and the Baron compare cards for
// the two duelists. It reports false when the event carries nothing private
// for that viewer.
func (f *EventFormatter) FormatPrivate(ev Event, viewerID int) (string, bool) {
	switch e := ev.(type) {
	case RevealEvent:
		if e.ViewerID != viewerID {
			return "", false
		}
		return fmt.Sprintf("You looked at %s's hand: %s.", f.name(e.TargetID), e.Card), true
	case BaronCompareEvent:
		if e.PlayerID != viewerID && e.TargetID != viewerID {
			return "", false
		}
		return fmt.Sprintf("Baron compare details: %s (%s) vs %s (%s).",
			f.name(e.PlayerID), e.PlayerCard, f.name(e.TargetID), e.TargetCard), true
	default:
		return "", false
	}
}

func (f *EventFormatter) name(id int) string {
	if name, ok := f.names[id]; ok {
		return name
	}
	return "Unknown"
}

func (f *EventFormatter) winnerNames(ids []int) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = f.name(id)
	}
	return strings.Join(names, ", ")
}

func joinCards(list []cards.Type) string {
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name()
	}
	return strings.Join(names, ", ")
}
