package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RetiredDemiurge/love-letter/cards"
	"github.com/RetiredDemiurge/love-letter/internal/randutil"
)

// roundWith builds a bare round around pre-set players, with an empty deck
// unless the test stocks one.
func roundWith(players ...*Player) *Round {
	return &Round{Players: players}
}

func target(id int) *int { return &id }

func guess(c cards.Type) *cards.Type { return &c }

func TestCountessForcedPlay(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Countess, cards.Prince}}
	other := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Guard}}
	round := roundWith(player, other)

	require.Equal(t, []cards.Type{cards.Countess}, LegalPlayCards(player.Hand))

	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.Prince, TargetID: target(1)}, randutil.New(0))
	require.Error(t, err)
	assert.True(t, IsRulesError(err))
	assert.Equal(t, []cards.Type{cards.Countess, cards.Prince}, player.Hand, "failed apply must not mutate")
}

func TestLegalPlayCardsFullHandOtherwise(t *testing.T) {
	hand := []cards.Type{cards.Countess, cards.Guard}
	assert.Equal(t, hand, LegalPlayCards(hand))

	hand = []cards.Type{cards.King, cards.Prince}
	assert.Equal(t, hand, LegalPlayCards(hand))
}

func TestGuardGuessEliminatesOnMatch(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Guard}}
	victim := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Priest}}
	round := roundWith(player, victim)

	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.Guard, TargetID: target(1), Guess: guess(cards.Priest)}, randutil.New(0))
	require.NoError(t, err)

	assert.True(t, victim.Eliminated)
	assert.Empty(t, victim.Hand)
	assert.Equal(t, []cards.Type{cards.Priest}, victim.Discard)
}

func TestGuardGuessMissesNoElimination(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Guard}}
	victim := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Priest}}
	round := roundWith(player, victim)

	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.Guard, TargetID: target(1), Guess: guess(cards.Baron)}, randutil.New(0))
	require.NoError(t, err)

	assert.False(t, victim.Eliminated)
}

func TestGuardCannotGuessGuard(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Guard}}
	victim := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Priest}}
	round := roundWith(player, victim)

	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.Guard, TargetID: target(1), Guess: guess(cards.Guard)}, randutil.New(0))
	require.Error(t, err)
	assert.True(t, IsRulesError(err))
}

func TestGuardNoTargetsWhenAllProtected(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Guard}}
	shielded := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Priest}, Protected: true}
	round := roundWith(player, shielded)

	// With no valid targets the Guard is played untargeted and fizzles.
	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.Guard}, randutil.New(0))
	require.NoError(t, err)
	assert.False(t, shielded.Eliminated)

	// Supplying a target anyway is rejected.
	round2 := roundWith(
		&Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Guard}},
		&Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Priest}, Protected: true},
	)
	_, err = round2.ApplyAction(Action{PlayerID: 0, Card: cards.Guard, TargetID: target(1), Guess: guess(cards.Priest)}, randutil.New(0))
	require.Error(t, err)
}

func TestPriestRevealNoStateChange(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Priest}}
	other := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Guard}}
	round := roundWith(player, other)

	events, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.Priest, TargetID: target(1)}, randutil.New(0))
	require.NoError(t, err)

	assert.Equal(t, []cards.Type{cards.Guard}, other.Hand)
	assert.False(t, other.Eliminated)
	require.Len(t, events, 2)
	reveal, ok := events[1].(RevealEvent)
	require.True(t, ok)
	assert.Equal(t, cards.Guard, reveal.Card)
	assert.Equal(t, 0, reveal.ViewerID)
}

func TestBaronEliminatesLowerCard(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Baron, cards.Princess}}
	other := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Guard}}
	round := roundWith(player, other)

	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.Baron, TargetID: target(1)}, randutil.New(0))
	require.NoError(t, err)

	assert.True(t, other.Eliminated)
	assert.False(t, player.Eliminated)
}

func TestBaronTieEliminatesNeither(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Baron, cards.Priest}}
	other := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Priest}}
	round := roundWith(player, other)

	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.Baron, TargetID: target(1)}, randutil.New(0))
	require.NoError(t, err)

	assert.False(t, player.Eliminated)
	assert.False(t, other.Eliminated)
}

func TestHandmaidProtectsAndExpiresOnTurnStart(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Handmaid, cards.Guard}}
	other := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Priest}}
	round := roundWith(player, other)

	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.Handmaid}, randutil.New(0))
	require.NoError(t, err)
	assert.True(t, player.Protected)

	round.Deck = []cards.Type{cards.Baron}
	canPlay, err := round.StartTurn(0, randutil.New(0))
	require.NoError(t, err)
	assert.True(t, canPlay)
	assert.False(t, player.Protected, "protection lasts until the owner's next turn starts")
	assert.Len(t, player.Hand, 2)
}

func TestPrinceDiscardsAndReplaces(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Prince}}
	other := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Guard}}
	round := roundWith(player, other)
	round.Deck = []cards.Type{cards.Handmaid}

	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.Prince, TargetID: target(1)}, randutil.New(0))
	require.NoError(t, err)

	assert.Equal(t, []cards.Type{cards.Handmaid}, other.Hand)
	assert.Equal(t, []cards.Type{cards.Guard}, other.Discard)
	assert.Empty(t, round.Deck)
}

func TestPrinceDrawsBurnedWhenDeckEmpty(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Prince}}
	other := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Guard}}
	round := roundWith(player, other)
	round.Burned = []cards.Type{cards.Priest}
	round.FaceUp = []cards.Type{cards.Baron}

	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.Prince, TargetID: target(1)}, randutil.New(0))
	require.NoError(t, err)

	assert.Equal(t, []cards.Type{cards.Priest}, other.Hand)
	assert.Empty(t, round.Burned)
	assert.Equal(t, []cards.Type{cards.Baron}, round.FaceUp, "face-up cards are never drawn")
}

func TestPrinceEmptyDeckAndBurnLeavesEmptyHand(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Prince}}
	other := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Guard}}
	round := roundWith(player, other)

	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.Prince, TargetID: target(1)}, randutil.New(0))
	require.NoError(t, err)

	assert.Empty(t, other.Hand)
	assert.False(t, other.Eliminated)
}

func TestPrinceDiscardsPrincessEliminatesTarget(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Prince}}
	other := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Princess}}
	round := roundWith(player, other)
	round.Deck = []cards.Type{cards.Guard}

	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.Prince, TargetID: target(1)}, randutil.New(0))
	require.NoError(t, err)

	assert.True(t, other.Eliminated)
	assert.Empty(t, other.Hand)
	assert.Equal(t, cards.Princess, other.Discard[len(other.Discard)-1])
	assert.Len(t, round.Deck, 1, "no replacement draw after a Princess discard")
}

func TestPrinceForcesSelfTargetWhenOthersProtected(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Prince}}
	shielded := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Guard}, Protected: true}
	round := roundWith(player, shielded)

	targets, err := round.ValidTargets(0, cards.Prince)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, 0, targets[0].ID)

	_, err = round.ApplyAction(Action{PlayerID: 0, Card: cards.Prince, TargetID: target(1)}, randutil.New(0))
	require.Error(t, err)
}

func TestPrinceSelfTargetDiscardsOwnCard(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Prince, cards.Guard}}
	other := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Priest}}
	round := roundWith(player, other)
	round.Deck = []cards.Type{cards.Handmaid}

	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.Prince, TargetID: target(0)}, randutil.New(0))
	require.NoError(t, err)

	assert.Equal(t, []cards.Type{cards.Handmaid}, player.Hand)
	assert.Equal(t, []cards.Type{cards.Prince, cards.Guard}, player.Discard)
}

func TestKingSwapsHands(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.King, cards.Guard}}
	other := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Princess}}
	round := roundWith(player, other)

	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.King, TargetID: target(1)}, randutil.New(0))
	require.NoError(t, err)

	assert.Equal(t, []cards.Type{cards.Princess}, player.Hand)
	assert.Equal(t, []cards.Type{cards.Guard}, other.Hand)
}

func TestKingNoTargetsWhenAllProtected(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.King}}
	shielded := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Prince}, Protected: true}
	round := roundWith(player, shielded)

	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.King}, randutil.New(0))
	require.NoError(t, err)

	assert.Empty(t, player.Hand)
	assert.Equal(t, []cards.Type{cards.Prince}, shielded.Hand)
}

func TestPrincessPlayedEliminatesSelf(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Princess}}
	other := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Guard}}
	round := roundWith(player, other)

	_, err := round.ApplyAction(Action{PlayerID: 0, Card: cards.Princess}, randutil.New(0))
	require.NoError(t, err)

	assert.True(t, player.Eliminated)
	assert.Empty(t, player.Hand)
	assert.Equal(t, []cards.Type{cards.Princess}, player.Discard)
}

func TestEliminatedPlayerCannotAct(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Guard}, Eliminated: true}
	other := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Priest}}
	round := roundWith(player, other)

	_, err := round.StartTurn(0, randutil.New(0))
	require.Error(t, err)

	err = round.ValidateAction(Action{PlayerID: 0, Card: cards.Guard, TargetID: target(1), Guess: guess(cards.Priest)})
	require.Error(t, err)
}

func TestValidateUnknownPlayer(t *testing.T) {
	round := roundWith(&Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Guard}})
	err := round.ValidateAction(Action{PlayerID: 9, Card: cards.Guard})
	require.Error(t, err)
	assert.True(t, IsRulesError(err))
}

func TestValidateCardNotHeld(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Guard}}
	other := &Player{ID: 1, Name: "B", Hand: []cards.Type{cards.Priest}}
	round := roundWith(player, other)

	err := round.ValidateAction(Action{PlayerID: 0, Card: cards.Baron, TargetID: target(1)})
	require.Error(t, err)
}

func TestAdvanceTurnSkipsEliminated(t *testing.T) {
	a := &Player{ID: 0, Name: "A"}
	b := &Player{ID: 1, Name: "B", Eliminated: true}
	c := &Player{ID: 2, Name: "C"}
	round := roundWith(a, b, c)

	round.AdvanceTurn()
	assert.Equal(t, 2, round.CurrentPlayerIdx)

	round.AdvanceTurn()
	assert.Equal(t, 0, round.CurrentPlayerIdx)
}

func TestAdvanceTurnNoopWhenRoundOver(t *testing.T) {
	a := &Player{ID: 0, Name: "A"}
	b := &Player{ID: 1, Name: "B"}
	round := roundWith(a, b)
	round.RoundOver = true

	round.AdvanceTurn()
	assert.Equal(t, 0, round.CurrentPlayerIdx)
}

func TestStartTurnEmptyDeckEmitsDeckEmpty(t *testing.T) {
	player := &Player{ID: 0, Name: "A", Hand: []cards.Type{cards.Guard}}
	round := roundWith(player)

	canPlay, err := round.StartTurn(0, randutil.New(0))
	require.NoError(t, err)
	assert.False(t, canPlay)
	require.Len(t, round.Events, 1)
	assert.Equal(t, KindDeckEmpty, round.Events[0].Kind())
	assert.Len(t, player.Hand, 1, "no card drawn on an empty deck")
}
