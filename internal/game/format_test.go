package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RetiredDemiurge/love-letter/cards"
)

func testPlayers() []*Player {
	return []*Player{
		{ID: 0, Name: "Ada"},
		{ID: 1, Name: "Basil"},
	}
}

func TestFormatterFullView(t *testing.T) {
	f := NewEventFormatter(testPlayers(), FormatOptions{})

	assert.Equal(t, "Round 2 begins. Start player: Basil.",
		f.Format(RoundStartEvent{Round: 2, StartPlayerID: 1}))
	assert.Equal(t, "Ada draws a card.",
		f.Format(DrawEvent{PlayerID: 0, Card: cards.Guard}))
	assert.Equal(t, "Basil draws a replacement card.",
		f.Format(DrawEvent{PlayerID: 1, Card: cards.Priest, Reason: ReasonPrince}))
	assert.Equal(t, "Ada sees Basil's hand: Princess.",
		f.Format(RevealEvent{ViewerID: 0, TargetID: 1, Card: cards.Princess}))
	assert.Equal(t, "Baron compare: Ada (King) vs Basil (Guard).",
		f.Format(BaronCompareEvent{PlayerID: 0, TargetID: 1, PlayerCard: cards.King, TargetCard: cards.Guard}))
	assert.Equal(t, "Ada guesses Priest on Basil.",
		f.Format(GuardGuessEvent{PlayerID: 0, TargetID: 1, Guess: cards.Priest}))
	assert.Equal(t, "Round ends. Winner(s): Ada, Basil.",
		f.Format(RoundEndEvent{Winners: []int{0, 1}}))
	assert.Equal(t, "Deck is empty. Round ends now.",
		f.Format(DeckEmptyEvent{}))
}

func TestFormatterPublicViewRedacts(t *testing.T) {
	f := NewEventFormatter(testPlayers(), FormatOptions{HideHidden: true})

	assert.Equal(t, "Ada looked at Basil's hand.",
		f.Format(RevealEvent{ViewerID: 0, TargetID: 1, Card: cards.Princess}))
	assert.Equal(t, "Ada compares hand with Basil.",
		f.Format(BaronCompareEvent{PlayerID: 0, TargetID: 1, PlayerCard: cards.King, TargetCard: cards.Guard}))
	// Plays are public knowledge either way.
	assert.Equal(t, "Ada plays Guard.",
		f.Format(PlayEvent{PlayerID: 0, Card: cards.Guard}))
}

func TestFormatterPrivateView(t *testing.T) {
	f := NewEventFormatter(testPlayers(), FormatOptions{HideHidden: true})
	reveal := RevealEvent{ViewerID: 0, TargetID: 1, Card: cards.Princess}

	line, ok := f.FormatPrivate(reveal, 0)
	require.True(t, ok)
	assert.Equal(t, "You looked at Basil's hand: Princess.", line)

	_, ok = f.FormatPrivate(reveal, 1)
	assert.False(t, ok, "the peeked-at player learns nothing new")

	duel := BaronCompareEvent{PlayerID: 0, TargetID: 1, PlayerCard: cards.King, TargetCard: cards.Guard}
	for _, viewer := range []int{0, 1} {
		line, ok := f.FormatPrivate(duel, viewer)
		require.True(t, ok)
		assert.Equal(t, "Baron compare details: Ada (King) vs Basil (Guard).", line)
	}

	_, ok = f.FormatPrivate(PlayEvent{PlayerID: 0, Card: cards.Guard}, 0)
	assert.False(t, ok)
}

func TestFormatterUnknownPlayer(t *testing.T) {
	f := NewEventFormatter(testPlayers(), FormatOptions{})
	assert.Equal(t, "Unknown draws a card.", f.Format(DrawEvent{PlayerID: 7, Card: cards.Guard}))
}
