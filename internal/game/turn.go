package game

import (
	rand "math/rand/v2"

	"github.com/RetiredDemiurge/love-letter/cards"
)

// targetedCards are the cards that target another player. The Prince is
// handled separately because it may, and sometimes must, target the actor.
var targetedCards = map[cards.Type]bool{
	cards.Guard:  true,
	cards.Priest: true,
	cards.Baron:  true,
	cards.King:   true,
}

// StartTurn begins the current phase of a player's turn: protection from a
// previous Handmaid expires, then one card is drawn. It returns false
// without drawing when the deck is empty; checking for round end is then the
// caller's responsibility. The rng parameter mirrors the other mutating
// entry points; no randomness is consumed here.
func (r *Round) StartTurn(playerID int, _ *rand.Rand) (bool, error) {
	player, err := r.Player(playerID)
	if err != nil {
		return false, err
	}
	if player.Eliminated {
		return false, rulesErrorf("Eliminated players cannot take turns.")
	}

	if player.Protected {
		player.Protected = false
		r.emit(ProtectionEndedEvent{PlayerID: playerID})
	}

	if len(r.Deck) == 0 {
		r.emit(DeckEmptyEvent{})
		return false, nil
	}

	drawn := r.drawCard()
	player.Hand = append(player.Hand, drawn)
	r.emit(DrawEvent{PlayerID: playerID, Card: drawn})
	return true, nil
}

// LegalPlayCards returns the playable subset of a hand. The Countess must be
// played whenever held together with the King or Prince; otherwise the whole
// hand is legal.
func LegalPlayCards(hand []cards.Type) []cards.Type {
	holdsCountess := false
	holdsRoyal := false
	for _, c := range hand {
		switch c {
		case cards.Countess:
			holdsCountess = true
		case cards.King, cards.Prince:
			holdsRoyal = true
		}
	}
	if holdsCountess && holdsRoyal {
		return []cards.Type{cards.Countess}
	}
	return append([]cards.Type(nil), hand...)
}

// ValidateAction checks an action without mutating any state, so a
// subsequent ApplyAction is atomic. A nil return means the action is legal.
func (r *Round) ValidateAction(action Action) error {
	player, err := r.Player(action.PlayerID)
	if err != nil {
		return err
	}
	if player.Eliminated {
		return rulesErrorf("You are eliminated.")
	}
	if !player.Holds(action.Card) {
		return rulesErrorf("You must play a card from your hand.")
	}

	legal := LegalPlayCards(player.Hand)
	if !containsCard(legal, action.Card) {
		return rulesErrorf("You must play the Countess when holding it with King or Prince.")
	}

	if targetedCards[action.Card] {
		valid := r.validTargets(player, action.Card)
		if len(valid) == 0 {
			if action.TargetID != nil {
				return rulesErrorf("No valid targets.")
			}
		} else {
			if action.TargetID == nil {
				return rulesErrorf("This card requires a target.")
			}
			if !containsPlayer(valid, *action.TargetID) {
				return rulesErrorf("Target is not valid.")
			}
		}

		if action.Card == cards.Guard && len(valid) > 0 {
			if action.Guess == nil {
				return rulesErrorf("Guard requires a guess.")
			}
			if *action.Guess == cards.Guard {
				return rulesErrorf("Guard cannot guess Guard.")
			}
		}
	}

	if action.Card == cards.Prince {
		valid := r.validTargets(player, action.Card)
		if action.TargetID == nil {
			return rulesErrorf("Prince requires a target.")
		}
		if !containsPlayer(valid, *action.TargetID) {
			return rulesErrorf("Target is not valid.")
		}
	}

	if targetedCards[action.Card] && action.TargetID != nil && *action.TargetID == action.PlayerID {
		return rulesErrorf("You must target another player.")
	}

	return nil
}

// ApplyAction validates the action, moves the played card from hand to
// discard, and dispatches to the card's effect resolver. On error no state
// is modified. It returns the full event log reference.
func (r *Round) ApplyAction(action Action, rng *rand.Rand) ([]Event, error) {
	if err := r.ValidateAction(action); err != nil {
		return nil, err
	}

	player, err := r.Player(action.PlayerID)
	if err != nil {
		return nil, err
	}
	var target *Player
	if action.TargetID != nil {
		target, err = r.Player(*action.TargetID)
		if err != nil {
			return nil, err
		}
	}

	player.removeFromHand(action.Card)
	player.Discard = append(player.Discard, action.Card)
	r.emit(PlayEvent{PlayerID: player.ID, Card: action.Card})

	switch action.Card {
	case cards.Guard:
		r.resolveGuard(player, target, action.Guess)
	case cards.Priest:
		r.resolvePriest(player, target)
	case cards.Baron:
		r.resolveBaron(player, target)
	case cards.Handmaid:
		player.Protected = true
		r.emit(ProtectedEvent{PlayerID: player.ID})
	case cards.Prince:
		r.resolvePrince(target)
	case cards.King:
		r.resolveKing(player, target)
	case cards.Countess:
		r.emit(CountessNoEffectEvent{PlayerID: player.ID})
	case cards.Princess:
		r.eliminate(player, EliminatedByPlayedPrincess)
	}

	return r.Events, nil
}

// AdvanceTurn moves play to the next non-eliminated seat, wrapping. No-op
// once the round is over.
func (r *Round) AdvanceTurn() {
	if r.RoundOver {
		return
	}
	numPlayers := len(r.Players)
	idx := r.CurrentPlayerIdx
	for i := 0; i < numPlayers; i++ {
		idx = (idx + 1) % numPlayers
		if !r.Players[idx].Eliminated {
			r.CurrentPlayerIdx = idx
			return
		}
	}
}

// CheckRoundEnd detects the terminal conditions: one or zero active players
// left, or an exhausted deck. It awards tokens, emits round_end and
// token_awarded, and picks the next round's start player from the winners
// with the injected rng. No-op if the round already ended.
func (g *Game) CheckRoundEnd(r *Round, rng *rand.Rand) []Event {
	if r.RoundOver {
		return r.Events
	}

	active := r.ActivePlayers()
	var winners []*Player
	switch {
	case len(active) <= 1:
		winners = active
	case len(r.Deck) == 0:
		winners = highestHand(active)
	default:
		return r.Events
	}

	r.RoundOver = true
	ids := make([]int, len(winners))
	for i, p := range winners {
		ids[i] = p.ID
	}
	r.emit(RoundEndEvent{Winners: ids})
	for _, winner := range winners {
		winner.Tokens++
		r.emit(TokenAwardedEvent{PlayerID: winner.ID, Tokens: winner.Tokens})
	}

	if len(winners) > 0 {
		next := winners[rng.IntN(len(winners))].ID
		g.NextStartPlayerID = &next
	}
	return r.Events
}

// Over reports whether any player has reached the token target.
func (g *Game) Over() bool {
	for _, p := range g.Players {
		if p.Tokens >= g.TargetTokens {
			return true
		}
	}
	return false
}

// ValidTargets returns the players the given card may target. For
// Guard/Priest/Baron/King that is every other unprotected active player; the
// Prince additionally always includes the actor, so a self-target is the
// forced choice when everyone else is protected.
func (r *Round) ValidTargets(playerID int, card cards.Type) ([]*Player, error) {
	player, err := r.Player(playerID)
	if err != nil {
		return nil, err
	}
	return r.validTargets(player, card), nil
}

func (r *Round) validTargets(player *Player, card cards.Type) []*Player {
	var targets []*Player
	for _, candidate := range r.Players {
		if candidate.Eliminated {
			continue
		}
		switch {
		case targetedCards[card]:
			if candidate.ID == player.ID || candidate.Protected {
				continue
			}
			targets = append(targets, candidate)
		case card == cards.Prince:
			if candidate.ID == player.ID {
				targets = append(targets, candidate)
				continue
			}
			if candidate.Protected {
				continue
			}
			targets = append(targets, candidate)
		}
	}
	return targets
}

// highestHand returns the players with the highest single-card hand value,
// ties broken by highest discard sum. Players tied on both dimensions all
// win.
func highestHand(players []*Player) []*Player {
	bestValue := 0
	for _, p := range players {
		if len(p.Hand) > 0 && p.Hand[0].Value() > bestValue {
			bestValue = p.Hand[0].Value()
		}
	}
	var candidates []*Player
	for _, p := range players {
		if len(p.Hand) > 0 && p.Hand[0].Value() == bestValue {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) <= 1 {
		return candidates
	}

	bestDiscard := 0
	for _, p := range candidates {
		if sum := p.DiscardSum(); sum > bestDiscard {
			bestDiscard = sum
		}
	}
	var winners []*Player
	for _, p := range candidates {
		if p.DiscardSum() == bestDiscard {
			winners = append(winners, p)
		}
	}
	return winners
}

func containsCard(list []cards.Type, c cards.Type) bool {
	for _, held := range list {
		if held == c {
			return true
		}
	}
	return false
}

func containsPlayer(list []*Player, id int) bool {
	for _, p := range list {
		if p.ID == id {
			return true
		}
	}
	return false
}
