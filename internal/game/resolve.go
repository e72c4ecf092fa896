package game

import (
	"github.com/RetiredDemiurge/love-letter/cards"
)

// Effect resolvers run only after a validated ApplyAction has moved the
// played card to the discard pile. A nil target means no valid target
// existed when the card was played; the effect then fizzles silently rather
// than erroring.

func (r *Round) resolveGuard(player, target *Player, guess *cards.Type) {
	if target == nil || guess == nil {
		return
	}
	r.emit(GuardGuessEvent{PlayerID: player.ID, TargetID: target.ID, Guess: *guess})
	if len(target.Hand) > 0 && target.Hand[0] == *guess {
		r.eliminate(target, EliminatedByGuardGuess)
	}
}

func (r *Round) resolvePriest(player, target *Player) {
	if target == nil {
		return
	}
	if len(target.Hand) > 0 {
		r.emit(RevealEvent{ViewerID: player.ID, TargetID: target.ID, Card: target.Hand[0]})
	}
}

// resolveBaron compares the two remaining cards; the lower one is
// eliminated, an exact tie eliminates neither.
func (r *Round) resolveBaron(player, target *Player) {
	if target == nil || len(player.Hand) == 0 || len(target.Hand) == 0 {
		return
	}
	playerCard := player.Hand[0]
	targetCard := target.Hand[0]
	r.emit(BaronCompareEvent{
		PlayerID:   player.ID,
		TargetID:   target.ID,
		PlayerCard: playerCard,
		TargetCard: targetCard,
	})
	switch {
	case playerCard > targetCard:
		r.eliminate(target, EliminatedByBaron)
	case targetCard > playerCard:
		r.eliminate(player, EliminatedByBaron)
	}
}

// resolvePrince force-discards the target's card. Discarding the Princess
// eliminates the target with no replacement; otherwise the target draws from
// the deck, falling back to the face-down burn pile when the deck is empty.
// With both empty the target plays on with an empty hand.
func (r *Round) resolvePrince(target *Player) {
	if target == nil {
		return
	}
	if len(target.Hand) > 0 {
		discarded := target.popHand()
		target.Discard = append(target.Discard, discarded)
		r.emit(DiscardEvent{PlayerID: target.ID, Card: discarded, Reason: ReasonPrince})
		if discarded == cards.Princess {
			r.eliminate(target, EliminatedByPrincePrincess)
			return
		}
	}

	if !target.Eliminated {
		if replacement, ok := r.drawReplacement(); ok {
			target.Hand = append(target.Hand, replacement)
			r.emit(DrawEvent{PlayerID: target.ID, Card: replacement, Reason: ReasonPrince})
		}
	}
}

func (r *Round) resolveKing(player, target *Player) {
	if target == nil || len(player.Hand) == 0 || len(target.Hand) == 0 {
		return
	}
	player.Hand, target.Hand = target.Hand, player.Hand
	r.emit(SwapEvent{PlayerID: player.ID, TargetID: target.ID})
}

// eliminate removes a player from the round. Idempotent. Protection is
// cleared and any remaining hand card goes to the discard pile, where it
// still counts toward the tiebreak sum.
func (r *Round) eliminate(player *Player, reason string) {
	if player.Eliminated {
		return
	}
	player.Eliminated = true
	player.Protected = false
	if len(player.Hand) > 0 {
		discarded := player.popHand()
		player.Discard = append(player.Discard, discarded)
		r.emit(DiscardEvent{PlayerID: player.ID, Card: discarded, Reason: ReasonElimination})
	}
	r.emit(EliminatedEvent{PlayerID: player.ID, Reason: reason})
}

// drawReplacement serves the Prince effect only: deck first, then the
// face-down burn pile. Face-up cards are never drawn.
func (r *Round) drawReplacement() (cards.Type, bool) {
	if len(r.Deck) > 0 {
		return r.drawCard(), true
	}
	if len(r.Burned) > 0 {
		c := r.Burned[len(r.Burned)-1]
		r.Burned = r.Burned[:len(r.Burned)-1]
		return c, true
	}
	return 0, false
}
